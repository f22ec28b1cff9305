package models

import "time"

// Status is the lifecycle phase of a competition or session.
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusLive      Status = "live"
	StatusCompleted Status = "completed"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusUpcoming, StatusLive, StatusCompleted:
		return true
	}
	return false
}

// DeriveDateStatus computes a status from an inclusive calendar date range.
// A valid override always wins.
func DeriveDateStatus(start, end, now time.Time, override *Status) Status {
	if override != nil && override.Valid() {
		return *override
	}
	today := dateOf(now)
	if today.Before(dateOf(start)) {
		return StatusUpcoming
	}
	if !end.IsZero() && today.After(dateOf(end)) {
		return StatusCompleted
	}
	return StatusLive
}

// DeriveWindowStatus computes a status from a time window. A zero end means
// the window stays open once started.
func DeriveWindowStatus(start, end, now time.Time, override *Status) Status {
	if override != nil && override.Valid() {
		return *override
	}
	if now.Before(start) {
		return StatusUpcoming
	}
	if !end.IsZero() && !now.Before(end) {
		return StatusCompleted
	}
	return StatusLive
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
