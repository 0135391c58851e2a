package findings

import (
	"os"

	cron "github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// DefaultSyncSchedule rebuilds the findings index every night at 23:00.
const DefaultSyncSchedule = "0 0 23 * * ?"

// StartCron schedules the full index rebuild with the seconds-aware cron spec in
// FINDINGS_SYNC_CRON, or DefaultSyncSchedule when unset.
func StartCron() (*cron.Cron, error) {
	schedule := os.Getenv("FINDINGS_SYNC_CRON")
	if schedule == "" {
		schedule = DefaultSyncSchedule
	}
	crontab := cron.New(cron.WithSeconds())
	if _, err := crontab.AddFunc(schedule, nightlySync); err != nil {
		return nil, err
	}
	crontab.Start()
	logrus.Infof("findings index sync scheduled at '%s'", schedule)
	return crontab, nil
}

func nightlySync() {
	if !beginRun() {
		logrus.Info("findings index sync skipped, a run is in progress")
		return
	}
	defer endRun()
	if err := IndicesFullSyncFunc(); err != nil {
		logrus.Errorf("findings index full sync: %v", err)
	}
}
