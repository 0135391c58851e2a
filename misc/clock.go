package misc

import "time"

// NowFunc is the clock used for submission, review and report timestamps.
var NowFunc = time.Now

// Now returns the current time truncated to microseconds, the precision kept by DATETIME(6).
func Now() time.Time {
	return NowFunc().Round(time.Microsecond)
}
