package analytics

import (
	"iwadcs/notification"
	"iwadcs/session"
	"iwadcs/workorder"
)

// StubSources replaces the work order and notification sources and returns a restore func.
func StubSources(all, mine []workorder.WorkOrder, unread []notification.Notification) func() {
	origAll, origMine, origUnread := listAllWorkOrders, myWorkOrders, listUnread
	listAllWorkOrders = func(*session.Session) ([]workorder.WorkOrder, error) { return all, nil }
	myWorkOrders = func([]string, *session.Session) ([]workorder.WorkOrder, error) { return mine, nil }
	listUnread = func(*session.Session) ([]notification.Notification, error) { return unread, nil }
	return func() {
		listAllWorkOrders, myWorkOrders, listUnread = origAll, origMine, origUnread
	}
}
