package findings

import (
	"iwadcs/bizerror"
	"iwadcs/session"
	"iwadcs/workorder"

	"github.com/fundwit/go-commons/types"
)

// StubWorkOrders replaces the work order sources and returns a restore func.
func StubWorkOrders(all []workorder.WorkOrder) func() {
	origList, origDetail := listAllWorkOrders, detailWorkOrder
	listAllWorkOrders = func(*session.Session) ([]workorder.WorkOrder, error) { return all, nil }
	detailWorkOrder = func(id types.ID, sec *session.Session) (*workorder.WorkOrder, error) {
		for i := range all {
			if all[i].ID == id {
				return &all[i], nil
			}
		}
		return nil, bizerror.ErrNotFound
	}
	return func() {
		listAllWorkOrders, detailWorkOrder = origList, origDetail
	}
}
