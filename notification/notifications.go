package notification

import (
	"errors"
	"fmt"
	"iwadcs/bizerror"
	"iwadcs/idgen"
	"iwadcs/persistence"
	"iwadcs/session"
	"time"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
)

var idWorker = idgen.NewWorker()

type Notification struct {
	ID        types.ID  `json:"id" gorm:"primary_key"`
	Username  string    `json:"username" gorm:"type:varchar(64);index"`
	Message   string    `json:"message" gorm:"type:text"`
	Read      bool      `json:"read" gorm:"column:is_read;not null"`
	Timestamp time.Time `json:"timestamp"`
	TaskID    types.ID  `json:"taskId"`
}

func (Notification) TableName() string {
	return "notifications"
}

func RejectionMessage(workOrderNumber, feedback string) string {
	return fmt.Sprintf("Work Order '%s' was rejected. Reason: %s", workOrderNumber, feedback)
}

// CreateRejectionNotification addresses the rejection of a work order to its submitter inside tx.
func CreateRejectionNotification(tx *gorm.DB, username string, taskID types.ID, workOrderNumber, feedback string,
	at time.Time) (*Notification, error) {
	n := Notification{
		ID:        idgen.NextID(idWorker),
		Username:  username,
		Message:   RejectionMessage(workOrderNumber, feedback),
		Read:      false,
		Timestamp: at,
		TaskID:    taskID,
	}
	if err := tx.Create(&n).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

// ListUnread returns the unread notifications of the session user, newest first.
func ListUnread(sec *session.Session) ([]Notification, error) {
	db, err := persistence.ActiveDB(sec.Ctx())
	if err != nil {
		return nil, err
	}
	records := []Notification{}
	if err := db.Where("username = ? AND is_read = ?", sec.Identity.Username, false).
		Order("timestamp DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Dismiss marks a notification of the session user as read.
func Dismiss(id types.ID, sec *session.Session) error {
	db, err := persistence.ActiveDB(sec.Ctx())
	if err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		n := Notification{}
		if err := tx.Where(&Notification{ID: id}).First(&n).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return bizerror.ErrNotFound
			}
			return err
		}
		if n.Username != sec.Identity.Username {
			return bizerror.ErrForbidden
		}
		return tx.Model(&Notification{}).Where("id = ?", id).Update("is_read", true).Error
	})
}
