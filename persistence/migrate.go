package persistence

import (
	"iwadcs/bizerror"

	"github.com/jinzhu/gorm"
)

// Migrate creates or widens the tables of the given models.
func Migrate(db *gorm.DB, models ...interface{}) error {
	if db == nil {
		return bizerror.ErrBackendUnavailable
	}
	return db.AutoMigrate(models...).Error
}
