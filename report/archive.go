package report

import (
	"bytes"
	"context"
	"fmt"
	"iwadcs/authority"
	"iwadcs/catalog"
	"iwadcs/client/s3"
	"iwadcs/event"
	"iwadcs/misc"
	"iwadcs/session"
	"iwadcs/workorder"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

const (
	ArchiveEventHandlerName = "reportArchiver"
	archivePrefix           = "reports/"
)

var (
	archiveRobot = &session.Session{
		Identity: session.Identity{Username: "report-robot", Name: "Report Robot",
			Role: authority.RoleAdmin, WorkCenter: catalog.WorkCenterAll},
		Context: context.Background(),
	}
	detailWorkOrder = workorder.DetailWorkOrder
)

func ArchiveKey(w *workorder.WorkOrder) string {
	return archivePrefix + FileName(w)
}

// ArchiveEventHandle uploads the report of a reviewed work order when a bucket is configured.
func ArchiveEventHandle(e *event.EventRecord) *event.EventHandleResult {
	if e.SourceType != workorder.SourceType || e.EventCategory != event.EventCategoryReviewed || !s3.Enabled() {
		return nil
	}
	w, err := detailWorkOrder(e.SourceId, archiveRobot)
	if err != nil {
		return archiveFailure(e, err)
	}
	data, err := RenderWorkOrderPDF(w, misc.Now())
	if err != nil {
		return archiveFailure(e, err)
	}
	if err := s3.PutObjectFunc(archiveRobot.Ctx(), ArchiveKey(w), bytes.NewReader(data),
		oss.ContentType(pdfContentType)); err != nil {
		return archiveFailure(e, err)
	}
	return &event.EventHandleResult{Success: true, HandlerIdentifier: ArchiveEventHandlerName}
}

func archiveFailure(e *event.EventRecord, err error) *event.EventHandleResult {
	return &event.EventHandleResult{
		Message:           fmt.Sprintf("archive report of %s, %v", e.SourceDesc, err),
		HandlerIdentifier: ArchiveEventHandlerName,
	}
}
