package order

import (
	"time"

	"dispatch/internal/pkg/errs"
)

// TimelineEntry is one record of the order's transition history: the status
// entered, when, and an optional note (cash override reason, dispatcher
// remark). Entries are immutable; the timeline is append-only.
type TimelineEntry struct {
	status    Status
	timestamp time.Time
	note      string
}

// NewTimelineEntry creates a validated timeline entry.
func NewTimelineEntry(status Status, timestamp time.Time, note string) (TimelineEntry, error) {
	if err := status.Validate(); err != nil {
		return TimelineEntry{}, err
	}
	if timestamp.IsZero() {
		return TimelineEntry{}, errs.NewValueIsRequiredError("timestamp")
	}
	return TimelineEntry{status: status, timestamp: timestamp, note: note}, nil
}

// Status returns the status recorded by the entry.
func (e TimelineEntry) Status() Status {
	return e.status
}

// Timestamp returns when the transition was recorded.
func (e TimelineEntry) Timestamp() time.Time {
	return e.timestamp
}

// Note returns the optional note, empty if none was recorded.
func (e TimelineEntry) Note() string {
	return e.note
}
