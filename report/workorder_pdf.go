// Package report renders work orders into downloadable documents.
package report

import (
	"bytes"
	"fmt"
	"iwadcs/workorder"
	"strconv"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"
)

const (
	lineHeight      = 7.0
	textLineHeight  = lineHeight - 2
	contentWidth    = 190.0
	labelWidth      = 40.0
	valueWidth      = 55.0
	notAvailable    = "N/A"
	timestampLayout = "2006-01-02 15:04:05"
)

// documentDate is stamped as creation and modification date so equal input renders equal bytes.
var documentDate = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

var checklistLayout = RowLayout{
	Widths:     []float64{110, 25, 55},
	Aligns:     []string{"L", "C", "L"},
	LineHeight: textLineHeight,
}

// FileName is the download name of the report of w.
func FileName(w *workorder.WorkOrder) string {
	return fmt.Sprintf("%s_%s.pdf", w.WorkOrderNumber, w.WorkCenter)
}

// RenderWorkOrderPDF renders the maintenance report of w. The only varying input besides w is
// generatedAt, printed in the footer of every page.
func RenderWorkOrderPDF(w *workorder.WorkOrder, generatedAt time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(documentDate)
	pdf.SetModificationDate(documentDate)
	pdf.SetCatalogSort(true)
	pdf.AliasNbPages("")

	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, "Work Order Maintenance Report", "", 1, "C", false, 0, "")
		pdf.Ln(5)
	})
	generated := "Report Generated: " + generatedAt.Format(timestampLayout)
	pdf.SetFooterFunc(func() {
		left, _, _, _ := pdf.GetMargins()
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "L", false, 0, "")
		pdf.SetX(left)
		pdf.CellFormat(0, 10, encodeText(generated), "", 0, "R", false, 0, "")
	})
	pdf.AddPage()

	renderDetails(pdf, w)
	renderFindings(pdf, w)
	renderSafetyChecks(pdf, w)
	renderChecklist(pdf, w)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func section(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
}

func labeledCell(pdf *fpdf.Fpdf, label, value string, width float64, ln int) {
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(labelWidth, lineHeight, encodeText(label), "1", 0, "", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(width, lineHeight, encodeText(orNotAvailable(value)), "1", ln, "", false, 0, "")
}

func dualRow(pdf *fpdf.Fpdf, l1, v1, l2, v2 string) {
	labeledCell(pdf, l1, v1, valueWidth, 0)
	labeledCell(pdf, l2, v2, valueWidth, 1)
}

func renderDetails(pdf *fpdf.Fpdf, w *workorder.WorkOrder) {
	section(pdf, "1. Work Order Details")
	dualRow(pdf, "Work Order #:", w.WorkOrderNumber, "Status:", titleCase(w.Status))
	dualRow(pdf, "Submitted By:", w.SubmittedByName, "Submission Date:", formatDate(w.SubmissionDate))
	dualRow(pdf, "Work Center:", w.WorkCenter, "Priority:", w.Priority)
	dualRow(pdf, "Location Type:", w.LocationType, "Location:", w.SpecificLocation)
	dualRow(pdf, "Area/Unit:", w.Area, "Est. Duration (h):", strconv.Itoa(w.EstimatedDuration))
	dualRow(pdf, "Equipment Tag:", w.EquipmentName, "Equipment Type:", w.EquipmentType)
	labeledCell(pdf, "Work Type:", w.WorkType, contentWidth-labelWidth, 1)
}

func renderFindings(pdf *fpdf.Fpdf, w *workorder.WorkOrder) {
	pdf.Ln(5)
	section(pdf, "2. Overall Findings / Summary")
	pdf.SetFont("Arial", "", 10)
	pdf.MultiCell(contentWidth, textLineHeight, encodeText(orNotAvailable(w.OverallFindings)), "1", "L", false)
}

func renderSafetyChecks(pdf *fpdf.Fpdf, w *workorder.WorkOrder) {
	pdf.Ln(5)
	section(pdf, "3. Safety Checks Performed")
	pdf.SetFont("Arial", "", 10)
	if len(w.SafetyChecks) == 0 {
		pdf.CellFormat(contentWidth, lineHeight, "No safety checks recorded.", "1", 1, "", false, 0, "")
		return
	}
	var b strings.Builder
	for _, check := range w.SafetyChecks {
		b.WriteString("- " + check + "\n")
	}
	pdf.MultiCell(contentWidth, textLineHeight, encodeText(b.String()), "1", "L", false)
}

func renderChecklist(pdf *fpdf.Fpdf, w *workorder.WorkOrder) {
	pdf.Ln(5)
	section(pdf, "4. PPM Checklist Results")

	pdf.SetFont("Arial", "B", 10)
	headers := []string{"Task Description", "Status", "Remarks"}
	for i, h := range headers {
		ln := 0
		if i == len(headers)-1 {
			ln = 1
		}
		pdf.CellFormat(checklistLayout.Widths[i], lineHeight, h, "1", ln, "C", false, 0, "")
	}

	pdf.SetFont("Arial", "", 9)
	if len(w.ChecklistData) == 0 {
		pdf.CellFormat(contentWidth, lineHeight, "No checklist data found.", "1", 1, "C", false, 0, "")
		return
	}
	for _, item := range w.ChecklistData {
		checklistLayout.Row(pdf, []string{
			encodeText(orNotAvailable(item.Task)),
			encodeText(orNotAvailable(item.Status)),
			encodeText(orNotAvailable(item.Remarks)),
		})
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func orNotAvailable(s string) string {
	if strings.TrimSpace(s) == "" {
		return notAvailable
	}
	return s
}

// encodeText converts s to windows-1252, the encoding of the core fonts. Runes without a
// windows-1252 form become '?'.
func encodeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if c, ok := charmap.Windows1252.EncodeRune(r); ok {
			b.WriteByte(c)
		} else {
			b.WriteByte('?')
		}
	}
	return b.String()
}
