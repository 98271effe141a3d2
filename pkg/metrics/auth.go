package metrics

import (
	"time"
)

// AuthOutcome labels a bearer token check
type AuthOutcome string

const (
	AuthAccepted AuthOutcome = "success"
	AuthRejected AuthOutcome = "failure"
	// AuthSkipped is recorded when the HTTP transport runs without a token
	AuthSkipped AuthOutcome = "skipped"
)

// RecordAuth records the outcome of a token check. The duration is only
// observed for checks that actually compared a token.
func RecordAuth(outcome AuthOutcome, duration time.Duration) {
	m := Get()
	if m == nil {
		return
	}

	m.AuthRequestsTotal.WithLabelValues(string(outcome)).Inc()
	if outcome != AuthSkipped {
		m.AuthValidationDuration.Observe(duration.Seconds())
	}
}
