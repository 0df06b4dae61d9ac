package kernel

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/pkg/guard"
)

const (
	// MinWindowDuration is the shortest allowed span between pickup and dropoff.
	MinWindowDuration = 15 * time.Minute
	// MaxWindowDuration is the longest allowed span between pickup and dropoff.
	MaxWindowDuration = 4 * time.Hour

	// DayKeyLayout formats a timestamp's local calendar date, used to key
	// shifts and capacity entries.
	DayKeyLayout = "2006-01-02"
)

var (
	// ErrWindowTooShort is returned when dropoff is less than MinWindowDuration after pickup.
	ErrWindowTooShort = errors.New("pickup must be at least 15 minutes before dropoff")
	// ErrWindowTooLong is returned when dropoff is more than MaxWindowDuration after pickup.
	ErrWindowTooLong = errors.New("dropoff must be at most 4 hours after pickup")
	// ErrWindowCrossesDayBoundary is returned when pickup and dropoff fall on different calendar days.
	ErrWindowCrossesDayBoundary = errors.New("pickup and dropoff must be on the same day")

	// ErrTimeWindowIsNotConstructed is returned when a zero-value TimeWindow is used.
	ErrTimeWindowIsNotConstructed = errors.New("TimeWindow must be created via NewTimeWindow constructor")
)

// DayKey returns the calendar-date key of a timestamp, using the timestamp's
// own location.
func DayKey(t time.Time) string {
	return t.Format(DayKeyLayout)
}

// TimeWindow is the pickup/dropoff interval of an order. It is an immutable
// value object; the constructor enforces the temporal rules, so every
// constructed window is valid. The same rules apply on creation and on any
// later change of pickup or dropoff.
//
// Rules, checked in order with the first failure winning:
//  1. dropoff - pickup >= 15 minutes
//  2. dropoff - pickup <= 4 hours
//  3. pickup and dropoff share a local calendar date
type TimeWindow struct { //nolint:recvcheck //using for validation
	pickup  time.Time
	dropoff time.Time
	guard   guard.ConstructorGuard
}

// NewTimeWindow creates a validated pickup/dropoff window.
func NewTimeWindow(pickup, dropoff time.Time) (TimeWindow, error) {
	span := dropoff.Sub(pickup)
	if span < MinWindowDuration {
		return TimeWindow{}, ErrWindowTooShort
	}
	if span > MaxWindowDuration {
		return TimeWindow{}, ErrWindowTooLong
	}
	if DayKey(pickup) != DayKey(dropoff) {
		return TimeWindow{}, ErrWindowCrossesDayBoundary
	}

	return TimeWindow{
		pickup:  pickup,
		dropoff: dropoff,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the window was created through NewTimeWindow.
func (w TimeWindow) Validate() error {
	return w.guard.Validate(ErrTimeWindowIsNotConstructed)
}

// Pickup returns the window's pickup timestamp.
func (w TimeWindow) Pickup() time.Time {
	return w.pickup
}

// Dropoff returns the window's dropoff timestamp.
func (w TimeWindow) Dropoff() time.Time {
	return w.dropoff
}

// Day returns the calendar-date key of the pickup timestamp.
func (w TimeWindow) Day() string {
	return DayKey(w.pickup)
}

// IsEqual reports whether two windows cover the same instant pair.
func (w TimeWindow) IsEqual(other TimeWindow) bool {
	return w.pickup.Equal(other.pickup) && w.dropoff.Equal(other.dropoff)
}

// String returns a human-readable representation for logs and errors.
func (w TimeWindow) String() string {
	return fmt.Sprintf("TimeWindow(%s..%s)", w.pickup.Format(time.RFC3339), w.dropoff.Format(time.RFC3339))
}
