package usecase

import "time"

// nowDateString returns today's date in the YYYY-MM-DD form used by
// admission, discharge and prescription dates on the wire.
func nowDateString() string {
	return time.Now().UTC().Format("2006-01-02")
}
