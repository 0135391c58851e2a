package findings

import (
	"context"
	"fmt"
	"iwadcs/authority"
	"iwadcs/bizerror"
	"iwadcs/catalog"
	"iwadcs/client/es"
	"iwadcs/event"
	"iwadcs/session"
	"iwadcs/workorder"
	"sync"

	"github.com/sirupsen/logrus"
)

const (
	IndexName             = "work_order_findings"
	IndexEventHandlerName = "findingsIndexer"
)

var (
	indexRobot = &session.Session{
		Identity: session.Identity{Username: "index-robot", Name: "Index Robot",
			Role: authority.RoleAdmin, WorkCenter: catalog.WorkCenterAll},
		Context: context.Background(),
	}

	lock    sync.Mutex
	running bool

	IndicesFullSyncFunc    = IndicesFullSync
	ScheduleNewSyncRunFunc = ScheduleNewSyncRun
	detailWorkOrder        = workorder.DetailWorkOrder
)

type BatchActionError map[string]error

func (e BatchActionError) Error() string {
	return fmt.Sprintf("%v", map[string]error(e))
}

// IndexWorkOrders stores the work orders carrying findings. Failures are collected per id.
func IndexWorkOrders(ctx context.Context, works []workorder.WorkOrder) error {
	errs := BatchActionError{}
	for i := range works {
		if !hasFindings(&works[i]) {
			continue
		}
		doc := recordOf(&works[i])
		if err := es.IndexFunc(ctx, IndexName, doc.ID, doc); err != nil {
			errs[doc.ID] = err
			logrus.Warnf("index work order %s %s: %v", doc.ID, doc.WorkOrderNumber, err)
		} else {
			logrus.Debugf("index work order %s %s successfully", doc.ID, doc.WorkOrderNumber)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// IndexWorkOrderEventHandle refreshes the document of a created or reviewed work order.
func IndexWorkOrderEventHandle(e *event.EventRecord) *event.EventHandleResult {
	if e.SourceType != workorder.SourceType || !es.Enabled() {
		return nil
	}
	w, err := detailWorkOrder(e.SourceId, indexRobot)
	if err != nil {
		return &event.EventHandleResult{
			Message:           fmt.Sprintf("detail work order when index %s, %v", e.SourceDesc, err),
			HandlerIdentifier: IndexEventHandlerName,
		}
	}
	if err := IndexWorkOrders(indexRobot.Ctx(), []workorder.WorkOrder{*w}); err != nil {
		return &event.EventHandleResult{
			Message:           fmt.Sprintf("index work order %s, %v", e.SourceDesc, err),
			HandlerIdentifier: IndexEventHandlerName,
		}
	}
	return &event.EventHandleResult{Success: true, HandlerIdentifier: IndexEventHandlerName}
}

// ScheduleNewSyncRun starts a full rebuild in the background unless one is running.
func ScheduleNewSyncRun(sec *session.Session) (bool, error) {
	if sec.Identity.Role != authority.RoleAdmin {
		return false, bizerror.ErrForbidden
	}
	if !es.Enabled() {
		return false, bizerror.ErrBackendUnavailable
	}

	if !beginRun() {
		return false, nil
	}
	go func() {
		defer endRun()
		if err := IndicesFullSyncFunc(); err != nil {
			logrus.Errorf("findings index full sync: %v", err)
		}
	}()
	return true, nil
}

func beginRun() bool {
	lock.Lock()
	defer lock.Unlock()
	if running {
		return false
	}
	running = true
	return true
}

func endRun() {
	lock.Lock()
	running = false
	lock.Unlock()
}

// IndicesFullSync drops the findings index and indexes every work order again.
func IndicesFullSync() (err error) {
	defer func() {
		if ret := recover(); ret != nil {
			if e, ok := ret.(error); ok {
				err = e
			} else {
				err = fmt.Errorf("error on findings index full sync: %v", ret)
			}
		}
	}()

	works, err := listAllWorkOrders(indexRobot)
	if err != nil {
		return err
	}
	if err := es.DropIndexFunc(indexRobot.Ctx(), IndexName); err != nil {
		return err
	}
	if err := IndexWorkOrders(indexRobot.Ctx(), works); err != nil {
		return err
	}
	logrus.Infof("findings index full sync: %d work orders processed", len(works))
	return nil
}
