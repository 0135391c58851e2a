// Package sequence allocates human readable, gap free work order numbers.
package sequence

import (
	"errors"
	"fmt"
	"iwadcs/bizerror"

	"github.com/jinzhu/gorm"
)

const WorkOrderCounter = "work_order_counter"

type Counter struct {
	Name          string `gorm:"primary_key;type:varchar(64)"`
	CurrentNumber int64  `gorm:"not null"`
}

func (Counter) TableName() string {
	return "counters"
}

// NextValue increments the named counter inside tx and returns the new value. A missing
// counter starts at 1. A lost race is reported as bizerror.ErrConcurrentModification so
// that the caller can replay the whole transaction.
func NextValue(tx *gorm.DB, name string) (int64, error) {
	query := tx
	if tx.Dialect().GetName() == "mysql" {
		query = tx.Set("gorm:query_option", "FOR UPDATE")
	}

	counter := Counter{}
	if err := query.Where(&Counter{Name: name}).First(&counter).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, err
		}
		if err := tx.Create(&Counter{Name: name, CurrentNumber: 1}).Error; err != nil {
			return 0, fmt.Errorf("%w: initialize counter %s: %v", bizerror.ErrConcurrentModification, name, err)
		}
		return 1, nil
	}

	db := tx.Model(&Counter{}).Where("name = ? AND current_number = ?", name, counter.CurrentNumber).
		Update("current_number", counter.CurrentNumber+1)
	if db.Error != nil {
		return 0, db.Error
	}
	if db.RowsAffected != 1 {
		return 0, fmt.Errorf("%w: counter %s", bizerror.ErrConcurrentModification, name)
	}
	return counter.CurrentNumber + 1, nil
}

// NextWorkOrderNumber allocates the next WO-00001 style identifier.
func NextWorkOrderNumber(tx *gorm.DB) (string, error) {
	n, err := NextValue(tx, WorkOrderCounter)
	if err != nil {
		return "", err
	}
	return FormatWorkOrderNumber(n), nil
}

func FormatWorkOrderNumber(n int64) string {
	return fmt.Sprintf("WO-%05d", n)
}
