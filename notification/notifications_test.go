package notification_test

import (
	"context"
	"iwadcs/bizerror"
	"iwadcs/notification"
	"iwadcs/testinfra"
	"testing"
	"time"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	. "github.com/onsi/gomega"
)

func TestRejectionNotifications(t *testing.T) {
	RegisterTestingT(t)

	ann := testinfra.BuildSession("ann", "user", "Electrical")
	bob := testinfra.BuildSession("bob", "user", "Electrical")

	t.Run("should list unread notifications newest first", func(t *testing.T) {
		testDatabase := testinfra.StartSqliteTestDatabase(&notification.Notification{})
		defer testinfra.StopSqliteTestDatabase(testDatabase)
		db := testDatabase.DS.GormDB(context.Background())

		day := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
		var first, second *notification.Notification
		Expect(db.Transaction(func(tx *gorm.DB) error {
			var err error
			first, err = notification.CreateRejectionNotification(tx, "ann", 10, "WO-00001", "missing photos", day)
			Expect(err).To(BeNil())
			second, err = notification.CreateRejectionNotification(tx, "ann", 11, "WO-00002", "wrong tag", day.Add(time.Hour))
			Expect(err).To(BeNil())
			_, err = notification.CreateRejectionNotification(tx, "bob", 12, "WO-00003", "no permit", day)
			return err
		})).To(Succeed())
		Expect(first.Message).To(Equal("Work Order 'WO-00001' was rejected. Reason: missing photos"))
		Expect(first.Read).To(BeFalse())

		records, err := notification.ListUnread(ann)
		Expect(err).To(BeNil())
		Expect(len(records)).To(Equal(2))
		Expect(records[0].ID).To(Equal(second.ID))
		Expect(records[1].ID).To(Equal(first.ID))
		Expect(records[1].TaskID).To(BeEquivalentTo(10))
	})

	t.Run("should dismiss own notification only", func(t *testing.T) {
		testDatabase := testinfra.StartSqliteTestDatabase(&notification.Notification{})
		defer testinfra.StopSqliteTestDatabase(testDatabase)
		db := testDatabase.DS.GormDB(context.Background())

		n, err := notification.CreateRejectionNotification(db, "ann", 10, "WO-00001", "missing photos", time.Now())
		Expect(err).To(BeNil())

		Expect(notification.Dismiss(n.ID, bob)).To(Equal(bizerror.ErrForbidden))
		Expect(notification.Dismiss(types.ID(12345), ann)).To(Equal(bizerror.ErrNotFound))
		Expect(notification.Dismiss(n.ID, ann)).To(Succeed())

		records, err := notification.ListUnread(ann)
		Expect(err).To(BeNil())
		Expect(records).To(BeEmpty())
	})

	t.Run("should fail when database is not available", func(t *testing.T) {
		_, err := notification.ListUnread(ann)
		Expect(err).To(Equal(bizerror.ErrBackendUnavailable))
	})
}
