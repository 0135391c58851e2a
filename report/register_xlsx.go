package report

import (
	"iwadcs/workorder"
	"strings"

	"github.com/xuri/excelize/v2"
)

const registerSheet = "Work Orders"

var registerColumns = []struct {
	title string
	width float64
	value func(w *workorder.WorkOrder) interface{}
}{
	{"Work Order #", 14, func(w *workorder.WorkOrder) interface{} { return w.WorkOrderNumber }},
	{"Status", 11, func(w *workorder.WorkOrder) interface{} { return titleCase(w.Status) }},
	{"Work Center", 13, func(w *workorder.WorkOrder) interface{} { return w.WorkCenter }},
	{"Location Type", 13, func(w *workorder.WorkOrder) interface{} { return w.LocationType }},
	{"Location", 11, func(w *workorder.WorkOrder) interface{} { return w.SpecificLocation }},
	{"Area/Unit", 18, func(w *workorder.WorkOrder) interface{} { return w.Area }},
	{"Equipment Tag", 18, func(w *workorder.WorkOrder) interface{} { return w.EquipmentName }},
	{"Equipment Type", 16, func(w *workorder.WorkOrder) interface{} { return w.EquipmentType }},
	{"Work Type", 22, func(w *workorder.WorkOrder) interface{} { return w.WorkType }},
	{"Priority", 9, func(w *workorder.WorkOrder) interface{} { return w.Priority }},
	{"Est. Duration (h)", 10, func(w *workorder.WorkOrder) interface{} { return w.EstimatedDuration }},
	{"Submitted By", 18, func(w *workorder.WorkOrder) interface{} { return w.SubmittedByName }},
	{"Submission Date", 17, func(w *workorder.WorkOrder) interface{} { return w.SubmissionDate.Format(timestampLayout) }},
	{"Reviewed By", 18, func(w *workorder.WorkOrder) interface{} { return w.ReviewedBy }},
	{"Review Date", 17, func(w *workorder.WorkOrder) interface{} {
		if w.ReviewDate == nil {
			return ""
		}
		return w.ReviewDate.Format(timestampLayout)
	}},
	{"Feedback", 40, func(w *workorder.WorkOrder) interface{} { return w.Feedback }},
	{"Safety Checks", 40, func(w *workorder.WorkOrder) interface{} { return strings.Join(w.SafetyChecks, "; ") }},
	{"Overall Findings", 50, func(w *workorder.WorkOrder) interface{} { return w.OverallFindings }},
}

// RenderRegisterXLSX lists work orders one per row under a frozen, filterable header.
func RenderRegisterXLSX(works []workorder.WorkOrder) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), registerSheet); err != nil {
		return nil, err
	}

	header := make([]interface{}, len(registerColumns))
	for i, c := range registerColumns {
		header[i] = c.title
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(registerSheet, name, name, c.width); err != nil {
			return nil, err
		}
	}
	if err := f.SetSheetRow(registerSheet, "A1", &header); err != nil {
		return nil, err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDEBF7"}},
	})
	if err != nil {
		return nil, err
	}
	if err := f.SetRowStyle(registerSheet, 1, 1, headerStyle); err != nil {
		return nil, err
	}

	for r := range works {
		row := make([]interface{}, len(registerColumns))
		for i, c := range registerColumns {
			row[i] = c.value(&works[r])
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(registerSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	lastCell, err := excelize.CoordinatesToCellName(len(registerColumns), len(works)+1)
	if err != nil {
		return nil, err
	}
	if err := f.AutoFilter(registerSheet, "A1:"+lastCell, nil); err != nil {
		return nil, err
	}
	if err := f.SetPanes(registerSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
