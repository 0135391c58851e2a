package workorder

import (
	"errors"
	"iwadcs/bizerror"
	"iwadcs/catalog"
	"iwadcs/event"
	"iwadcs/idgen"
	"iwadcs/misc"
	"iwadcs/notification"
	"iwadcs/persistence"
	"iwadcs/sequence"
	"iwadcs/session"
	"strings"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"
)

var idWorker = idgen.NewWorker()

// CreateWorkOrder validates the submission, derives location type and estimated duration
// and stores the work order under a freshly allocated number. Number allocation, insert and
// event are one transaction, a failed allocation leaves nothing behind.
func CreateWorkOrder(c *WorkOrderCreation, sec *session.Session) (*WorkOrder, error) {
	n, err := c.normalize(sec)
	if err != nil {
		return nil, err
	}
	db, err := persistence.ActiveDB(sec.Ctx())
	if err != nil {
		return nil, err
	}

	locationType, _ := catalog.LocationType(n.SpecificLocation)
	w := WorkOrder{
		ID:                idgen.NextID(idWorker),
		WorkCenter:        n.WorkCenter,
		LocationType:      locationType,
		SpecificLocation:  n.SpecificLocation,
		Area:              n.Area,
		EquipmentName:     n.EquipmentName,
		EquipmentType:     n.EquipmentType,
		WorkType:          n.WorkType,
		Priority:          n.Priority,
		EstimatedDuration: catalog.EstimatedDuration(n.WorkCenter, n.WorkType),
		ChecklistData:     n.ChecklistData,
		OverallFindings:   n.OverallFindings,
		SafetyChecks:      n.SafetyChecks,
		Status:            StatusPending,
		SubmittedBy:       sec.Identity.Username,
		SubmittedByName:   sec.Identity.Name,
		SubmissionDate:    misc.Now(),
	}

	var ev *event.EventRecord
	err = persistence.RetryableTransaction(db, func(tx *gorm.DB) error {
		number, err := sequence.NextWorkOrderNumber(tx)
		if err != nil {
			if errors.Is(err, bizerror.ErrConcurrentModification) {
				return err
			}
			return &bizerror.ErrSequence{Cause: err}
		}
		w.WorkOrderNumber = number
		if err := Store.Insert(tx, &w); err != nil {
			return err
		}
		ev, err = event.CreateEvent(SourceType, w.ID, w.WorkOrderNumber, event.EventCategoryCreated, nil,
			&sec.Identity, w.SubmissionDate, tx)
		return err
	})
	if err != nil {
		if errors.Is(err, bizerror.ErrConcurrentModification) {
			return nil, &bizerror.ErrSequence{Cause: err}
		}
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"workOrder": w.WorkOrderNumber, "workCenter": w.WorkCenter,
		"submittedBy": w.SubmittedBy}).Info("work order created")
	event.InvokeHandlersFunc(ev)
	return &w, nil
}

// QueryWorkOrders evaluates q for the session. Users are confined to their work center
// unless assigned to All.
func QueryWorkOrders(q *Query, sec *session.Session) ([]WorkOrder, error) {
	scoped := *q
	if scoped.WorkCenter == "" || scoped.WorkCenter == catalog.WorkCenterAll {
		scoped.WorkCenter = ""
		if sec.Identity.WorkCenter != catalog.WorkCenterAll {
			scoped.WorkCenter = sec.Identity.WorkCenter
		}
	}
	if scoped.WorkCenter != "" && !sec.CanAccessWorkCenter(scoped.WorkCenter) {
		return nil, bizerror.ErrForbidden
	}
	return query(&scoped, sec)
}

// MyWorkOrders lists the work orders submitted by the session user, optionally narrowed by status.
func MyWorkOrders(statuses []string, sec *session.Session) ([]WorkOrder, error) {
	return query(&Query{Statuses: statuses, SubmittedBy: sec.Identity.Username}, sec)
}

// PendingForReview lists the pending work orders matching the other criteria of q.
func PendingForReview(q *Query, sec *session.Session) ([]WorkOrder, error) {
	if !sec.IsReviewer() {
		return nil, bizerror.ErrForbidden
	}
	scoped := *q
	scoped.Statuses = []string{StatusPending}
	return query(&scoped, sec)
}

// ListAll returns every work order, newest first.
func ListAll(sec *session.Session) ([]WorkOrder, error) {
	return query(&Query{}, sec)
}

func query(q *Query, sec *session.Session) ([]WorkOrder, error) {
	db, err := persistence.ActiveDB(sec.Ctx())
	if err != nil {
		return nil, err
	}
	records, err := Store.Find(db, q.storeFilter())
	if err != nil {
		return nil, err
	}
	results := make([]WorkOrder, 0, len(records))
	for i := range records {
		if q.Matches(&records[i]) {
			results = append(results, records[i])
		}
	}
	return results, nil
}

func DetailWorkOrder(id types.ID, sec *session.Session) (*WorkOrder, error) {
	db, err := persistence.ActiveDB(sec.Ctx())
	if err != nil {
		return nil, err
	}
	w, err := Store.FindByID(db, id)
	if err != nil {
		return nil, err
	}
	if !sec.IsReviewer() && !sec.CanAccessWorkCenter(w.WorkCenter) && w.SubmittedBy != sec.Identity.Username {
		return nil, bizerror.ErrForbidden
	}
	return w, nil
}

// ReviewWorkOrder approves or rejects a pending work order. Only supervisors review. A
// rejection needs feedback and notifies the submitter in the same transaction.
func ReviewWorkOrder(id types.ID, status, feedback string, sec *session.Session) (*WorkOrder, error) {
	if !sec.IsSupervisor() {
		return nil, bizerror.ErrForbidden
	}
	feedback = strings.TrimSpace(feedback)
	switch status {
	case StatusApproved:
		if feedback == "" {
			feedback = DefaultApprovalFeedback
		}
	case StatusRejected:
		if feedback == "" {
			return nil, badParam("feedback is required when rejecting a work order")
		}
	default:
		return nil, badParam("unknown review decision '" + status + "'")
	}
	db, err := persistence.ActiveDB(sec.Ctx())
	if err != nil {
		return nil, err
	}

	var reviewed *WorkOrder
	var ev *event.EventRecord
	err = db.Transaction(func(tx *gorm.DB) error {
		w, err := Store.FindByID(tx, id)
		if err != nil {
			return err
		}
		if w.Status != StatusPending {
			return bizerror.ErrStateInvalid
		}

		now := misc.Now()
		w.Status = status
		w.Feedback = feedback
		w.ReviewedBy = sec.Identity.Name
		w.ReviewDate = &now
		updated, err := Store.CompleteReview(tx, w)
		if err != nil {
			return err
		}
		if !updated {
			return bizerror.ErrStateInvalid
		}

		if status == StatusRejected && w.SubmittedBy != "" {
			if _, err := notification.CreateRejectionNotification(tx, w.SubmittedBy, w.ID, w.WorkOrderNumber,
				feedback, now); err != nil {
				return err
			}
		}

		ev, err = event.CreateEvent(SourceType, w.ID, w.WorkOrderNumber, event.EventCategoryReviewed,
			event.UpdatedProperties{
				{PropertyName: "status", PropertyDesc: "Status", OldValue: StatusPending, NewValue: status},
				{PropertyName: "feedback", PropertyDesc: "Feedback", NewValue: feedback},
			}, &sec.Identity, now, tx)
		if err != nil {
			return err
		}
		reviewed = w
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"workOrder": reviewed.WorkOrderNumber, "status": status,
		"reviewedBy": sec.Identity.Username}).Info("work order reviewed")
	event.InvokeHandlersFunc(ev)
	return reviewed, nil
}
