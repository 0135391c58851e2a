package persistence

import (
	"errors"
	"iwadcs/bizerror"

	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"
)

// MaxTransactionAttempts bounds how often a transaction that lost a race is replayed.
const MaxTransactionAttempts = 5

// RetryableTransaction runs fn in a transaction and replays the whole transaction when fn
// reports bizerror.ErrConcurrentModification. Any other error rolls back and returns at once.
func RetryableTransaction(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	var err error
	for attempt := 1; attempt <= MaxTransactionAttempts; attempt++ {
		err = db.Transaction(fn)
		if err == nil || !errors.Is(err, bizerror.ErrConcurrentModification) {
			return err
		}
		logrus.WithField("attempt", attempt).Warn("transaction conflict, retrying")
	}
	return err
}
