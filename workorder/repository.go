package workorder

import (
	"errors"
	"iwadcs/bizerror"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
)

// MaxStatusFilterValues bounds the status IN predicate evaluated by the store.
const MaxStatusFilterValues = 10

// StoreFilter is the part of a query the database evaluates: equality on work center
// and a small IN predicate on status.
type StoreFilter struct {
	WorkCenter string
	// nil matches any status, an empty list matches nothing
	Statuses []string
}

// Repository is the storage of work orders. Every other query criterion is applied in
// memory by Query.Matches.
type Repository interface {
	Insert(tx *gorm.DB, w *WorkOrder) error
	FindByID(db *gorm.DB, id types.ID) (*WorkOrder, error)
	Find(db *gorm.DB, filter StoreFilter) ([]WorkOrder, error)
	// CompleteReview writes the review of a pending work order, false when it is no longer pending.
	CompleteReview(tx *gorm.DB, w *WorkOrder) (bool, error)
}

var Store Repository = gormRepository{}

type gormRepository struct{}

func (gormRepository) Insert(tx *gorm.DB, w *WorkOrder) error {
	return tx.Create(w).Error
}

func (gormRepository) FindByID(db *gorm.DB, id types.ID) (*WorkOrder, error) {
	w := WorkOrder{}
	if err := db.Where(&WorkOrder{ID: id}).First(&w).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, bizerror.ErrNotFound
		}
		return nil, err
	}
	return &w, nil
}

func (gormRepository) Find(db *gorm.DB, filter StoreFilter) ([]WorkOrder, error) {
	records := []WorkOrder{}
	if filter.Statuses != nil && len(filter.Statuses) == 0 {
		return records, nil
	}
	if len(filter.Statuses) > MaxStatusFilterValues {
		return nil, &bizerror.ErrBadParam{Cause: errors.New("too many status values")}
	}

	q := db.Model(&WorkOrder{})
	if filter.WorkCenter != "" {
		q = q.Where("work_center = ?", filter.WorkCenter)
	}
	if filter.Statuses != nil {
		q = q.Where("status IN (?)", filter.Statuses)
	}
	if err := q.Order("submission_date DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (gormRepository) CompleteReview(tx *gorm.DB, w *WorkOrder) (bool, error) {
	db := tx.Model(&WorkOrder{}).Where("id = ? AND status = ?", w.ID, StatusPending).
		Updates(map[string]interface{}{
			"status":      w.Status,
			"feedback":    w.Feedback,
			"reviewed_by": w.ReviewedBy,
			"review_date": w.ReviewDate,
		})
	if db.Error != nil {
		return false, db.Error
	}
	return db.RowsAffected == 1, nil
}
