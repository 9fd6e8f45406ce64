package driver

import (
	"fmt"
	"time"

	"dispatch/internal/pkg/errs"
)

// Activity is the liveness classification of a driver, derived from the
// recency of the last location fix. It is a projection, never ground truth:
// clients cannot set it, they can only report locations and let the policy
// classify them.
type Activity int

const (
	// Unknown represents an invalid or undefined activity.
	Unknown Activity = iota

	// Active means the driver reported a fix within the freshness window.
	Active

	// Idle means the last fix is stale but not yet old enough to consider
	// the driver gone.
	Idle

	// Offline means the driver has not reported for the offline horizon, or
	// has never reported at all.
	Offline
)

func getActivityStrings() map[Activity]string {
	return map[Activity]string{
		Unknown: "unknown",
		Active:  "active",
		Idle:    "idle",
		Offline: "offline",
	}
}

// ActivityFromString parses the wire representation of an activity.
func ActivityFromString(s string) (Activity, error) {
	for activity, str := range getActivityStrings() {
		if str == s && activity != Unknown {
			return activity, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("activity",
		fmt.Errorf("%q is not a valid activity", s))
}

// String returns the wire representation of the activity.
func (a Activity) String() string {
	if s, ok := getActivityStrings()[a]; ok {
		return s
	}
	return "unknown"
}

// Validate checks that the Activity is a defined classification.
func (a Activity) Validate() error {
	if a != Active && a != Idle && a != Offline {
		return errs.NewValueIsInvalidErrorWithCause("activity",
			fmt.Errorf("%d is not a valid activity", a))
	}
	return nil
}

// Default freshness thresholds. Drivers report every 10-20 seconds while on
// the road, so a minute of silence already separates moving drivers from
// parked ones.
const (
	DefaultActiveWithin = time.Minute
	DefaultOfflineAfter = 5 * time.Minute
)

// FreshnessPolicy holds the recency thresholds that classify a driver's
// activity from the timestamp of the last fix.
type FreshnessPolicy struct {
	ActiveWithin time.Duration
	OfflineAfter time.Duration
}

// DefaultFreshnessPolicy returns the standard thresholds.
func DefaultFreshnessPolicy() FreshnessPolicy {
	return FreshnessPolicy{
		ActiveWithin: DefaultActiveWithin,
		OfflineAfter: DefaultOfflineAfter,
	}
}

// Validate checks that the thresholds are positive and ordered.
func (p FreshnessPolicy) Validate() error {
	if p.ActiveWithin <= 0 {
		return errs.NewValueIsRequiredError("activeWithin")
	}
	if p.OfflineAfter <= p.ActiveWithin {
		return errs.NewValueIsInvalidErrorWithCause("offlineAfter",
			fmt.Errorf("offline horizon %s must exceed freshness window %s", p.OfflineAfter, p.ActiveWithin))
	}
	return nil
}

// Classify derives the activity for a fix reported at fixedAt, observed at
// now. A zero fixedAt means the driver has never reported and is Offline.
func (p FreshnessPolicy) Classify(fixedAt, now time.Time) Activity {
	if fixedAt.IsZero() {
		return Offline
	}
	age := now.Sub(fixedAt)
	switch {
	case age <= p.ActiveWithin:
		return Active
	case age <= p.OfflineAfter:
		return Idle
	default:
		return Offline
	}
}
