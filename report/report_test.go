package report

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/ioutil"
	"iwadcs/client/s3"
	"iwadcs/event"
	"iwadcs/session"
	"iwadcs/workorder"
	"strings"
	"testing"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/fundwit/go-commons/types"
	"github.com/go-pdf/fpdf"
	. "github.com/onsi/gomega"
)

func reviewedWorkOrder() *workorder.WorkOrder {
	reviewed := time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)
	return &workorder.WorkOrder{
		ID: 42, WorkOrderNumber: "WO-00042", WorkCenter: "Electrical", LocationType: "Offshore",
		SpecificLocation: "Tiong", Area: "Generator Room", EquipmentName: "MTR-101A", EquipmentType: "Motor",
		WorkType: "Corrective Maintenance", Priority: "High", EstimatedDuration: 8,
		ChecklistData: workorder.ChecklistItems{
			{Task: "Inspect enclosure for damage or water ingress", Status: "PASS"},
			{Task: "Check bearing condition (noise/vibration)", Status: "FAIL",
				Remarks: "Drive end bearing noisy at full load, replacement scheduled for next shutdown window"},
		},
		OverallFindings: "Bearing noise on drive end, température élevée ✓",
		SafetyChecks:    workorder.StringList{"Area Barricaded", "Gas Test Conducted"},
		Status:          workorder.StatusApproved, SubmittedBy: "electrical_user", SubmittedByName: "Electrical User",
		SubmissionDate: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
		ReviewedBy:     "Supervisor", ReviewDate: &reviewed, Feedback: "Task approved as per standards",
	}
}

func TestRowLayout(t *testing.T) {
	RegisterTestingT(t)

	layout := RowLayout{Widths: []float64{110, 25, 55}, LineHeight: 5}

	t.Run("should size row by tallest cell", func(t *testing.T) {
		Expect(layout.Height([]int{1, 3, 2})).To(Equal(15.0))
		Expect(layout.Height([]int{0, 0, 0})).To(Equal(5.0))
		Expect(layout.Height(nil)).To(Equal(5.0))
	})

	t.Run("should advance below the row", func(t *testing.T) {
		pdf := fpdf.New("P", "mm", "A4", "")
		pdf.AddPage()
		pdf.SetFont("Arial", "", 9)
		left, top := pdf.GetXY()

		cells := []string{"short", "PASS", strings.Repeat("long remark ", 20)}
		counts := layout.LineCounts(pdf, cells)
		Expect(counts[0]).To(Equal(1))
		Expect(counts[2]).To(BeNumerically(">", 1))

		layout.Row(pdf, cells)
		x, y := pdf.GetXY()
		Expect(x).To(Equal(left))
		Expect(y).To(BeNumerically("~", top+layout.Height(counts), 1e-9))
		Expect(pdf.Error()).To(BeNil())
	})

	t.Run("should start new page for row not fitting", func(t *testing.T) {
		pdf := fpdf.New("P", "mm", "A4", "")
		pdf.AddPage()
		pdf.SetFont("Arial", "", 9)
		pdf.SetY(280)
		layout.Row(pdf, []string{"a", "b", strings.Repeat("wrapped text ", 30)})
		Expect(pdf.PageNo()).To(Equal(2))
	})

	t.Run("should continue rows taller than a page on following pages", func(t *testing.T) {
		pdf := fpdf.New("P", "mm", "A4", "")
		pdf.AddPage()
		pdf.SetFont("Arial", "", 9)
		_, top := pdf.GetXY()
		_, pageHeight := pdf.GetPageSize()
		_, bottomMargin := pdf.GetAutoPageBreak()

		// 53 lines fit between the margins of a page, the remarks need 130
		layout.Row(pdf, []string{"task", "FAIL", strings.Repeat("line\n", 130)})
		Expect(pdf.Error()).To(BeNil())
		Expect(pdf.PageNo()).To(Equal(3))
		_, y := pdf.GetXY()
		Expect(y).To(BeNumerically("~", top+24*layout.LineHeight, 1e-6))
		Expect(y).To(BeNumerically("<=", pageHeight-bottomMargin))
	})
}

func TestRenderWorkOrderPDF(t *testing.T) {
	RegisterTestingT(t)

	generatedAt := time.Date(2024, 3, 3, 9, 30, 0, 0, time.UTC)

	t.Run("should render byte identical output for equal input", func(t *testing.T) {
		first, err := RenderWorkOrderPDF(reviewedWorkOrder(), generatedAt)
		Expect(err).To(BeNil())
		second, err := RenderWorkOrderPDF(reviewedWorkOrder(), generatedAt)
		Expect(err).To(BeNil())
		Expect(bytes.HasPrefix(first, []byte("%PDF-"))).To(BeTrue())
		Expect(bytes.Equal(first, second)).To(BeTrue())

		later, err := RenderWorkOrderPDF(reviewedWorkOrder(), generatedAt.Add(time.Second))
		Expect(err).To(BeNil())
		Expect(bytes.Equal(first, later)).To(BeFalse())
	})

	t.Run("should render empty sections and long checklists", func(t *testing.T) {
		w := reviewedWorkOrder()
		w.SafetyChecks = nil
		w.OverallFindings = ""
		w.ChecklistData = nil
		_, err := RenderWorkOrderPDF(w, generatedAt)
		Expect(err).To(BeNil())

		for i := 0; i < 80; i++ {
			w.ChecklistData = append(w.ChecklistData, workorder.ChecklistItem{Task: "Verify connection", Status: "NA"})
		}
		_, err = RenderWorkOrderPDF(w, generatedAt)
		Expect(err).To(BeNil())
	})

	t.Run("should name file after number and work center", func(t *testing.T) {
		Expect(FileName(reviewedWorkOrder())).To(Equal("WO-00042_Electrical.pdf"))
	})
}

func TestEncodeText(t *testing.T) {
	RegisterTestingT(t)

	Expect(encodeText("plain")).To(Equal("plain"))
	Expect(encodeText("café €5")).To(Equal("caf\xe9 \x805"))
	Expect(encodeText("温度 ✓")).To(Equal("?? ?"))
}

func TestArchiveEventHandle(t *testing.T) {
	RegisterTestingT(t)

	reviewed := &event.EventRecord{Event: event.Event{SourceType: workorder.SourceType, SourceId: 42,
		SourceDesc: "WO-00042", EventCategory: event.EventCategoryReviewed}}

	originalDetail, originalPut := detailWorkOrder, s3.PutObjectFunc
	defer func() {
		detailWorkOrder, s3.PutObjectFunc = originalDetail, originalPut
		s3.ReportBucket = nil
	}()
	detailWorkOrder = func(id types.ID, sec *session.Session) (*workorder.WorkOrder, error) {
		if id != 42 {
			return nil, errors.New("record not found")
		}
		return reviewedWorkOrder(), nil
	}
	var uploaded map[string][]byte
	s3.PutObjectFunc = func(ctx context.Context, key string, r io.Reader, opts ...oss.Option) error {
		data, err := ioutil.ReadAll(r)
		Expect(err).To(BeNil())
		uploaded[key] = data
		return nil
	}

	t.Run("should skip without bucket or for other events", func(t *testing.T) {
		uploaded = map[string][]byte{}
		Expect(ArchiveEventHandle(reviewed)).To(BeNil())

		s3.ReportBucket = &oss.Bucket{BucketName: "reports"}
		created := &event.EventRecord{Event: event.Event{SourceType: workorder.SourceType, SourceId: 42,
			EventCategory: event.EventCategoryCreated}}
		Expect(ArchiveEventHandle(created)).To(BeNil())
		Expect(uploaded).To(BeEmpty())
	})

	t.Run("should upload report of reviewed work order", func(t *testing.T) {
		uploaded = map[string][]byte{}
		s3.ReportBucket = &oss.Bucket{BucketName: "reports"}

		r := ArchiveEventHandle(reviewed)
		Expect(r).To(Equal(&event.EventHandleResult{Success: true, HandlerIdentifier: ArchiveEventHandlerName}))
		Expect(uploaded).To(HaveKey("reports/WO-00042_Electrical.pdf"))
		Expect(bytes.HasPrefix(uploaded["reports/WO-00042_Electrical.pdf"], []byte("%PDF-"))).To(BeTrue())

		missing := &event.EventRecord{Event: event.Event{SourceType: workorder.SourceType, SourceId: 7,
			SourceDesc: "WO-00007", EventCategory: event.EventCategoryReviewed}}
		r = ArchiveEventHandle(missing)
		Expect(r.Success).To(BeFalse())
		Expect(r.Message).To(Equal("archive report of WO-00007, record not found"))
	})
}
