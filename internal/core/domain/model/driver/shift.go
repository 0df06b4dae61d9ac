package driver

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrShiftEndsBeforeStart is returned when a shift's end is not after its start.
	ErrShiftEndsBeforeStart = errors.New("shift must end after it starts")
	// ErrShiftCrossesDayBoundary is returned when a shift's start and end fall on
	// different calendar days.
	ErrShiftCrossesDayBoundary = errors.New("shift must start and end on the same calendar day")
	// ErrShiftIsNotConstructed is returned when using an improperly initialized Shift.
	ErrShiftIsNotConstructed = errors.New("Shift must be created via NewShift constructor")
)

// Shift is a working interval of a driver on a single calendar day. A driver
// only receives orders whose pickup time falls inside one of its shifts.
type Shift struct {
	id    kernel.UUID
	start time.Time
	end   time.Time
	guard guard.ConstructorGuard
}

// NewShift creates a new Shift. The interval must be non-empty and must not
// cross a calendar day boundary.
func NewShift(id kernel.UUID, start, end time.Time) (*Shift, error) {
	s := &Shift{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setInterval(start, end),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreShift reconstructs a Shift from persistent storage.
func RestoreShift(id kernel.UUID, start, end time.Time) (*Shift, error) {
	return NewShift(id, start, end)
}

// Validate ensures the Shift instance was properly constructed.
func (s *Shift) Validate() error {
	if s == nil {
		return ErrShiftIsNotConstructed
	}
	return s.guard.Validate(ErrShiftIsNotConstructed)
}

// ID returns the shift's unique identifier.
func (s *Shift) ID() kernel.UUID {
	return s.id
}

// Start returns the moment the shift begins.
func (s *Shift) Start() time.Time {
	return s.start
}

// End returns the moment the shift ends. The end itself is not covered.
func (s *Shift) End() time.Time {
	return s.end
}

// Day returns the calendar day key of the shift.
func (s *Shift) Day() string {
	return kernel.DayKey(s.start)
}

// Covers reports whether the given moment falls within the shift. The start
// is inclusive, the end exclusive.
func (s *Shift) Covers(ts time.Time) bool {
	if kernel.DayKey(ts) != s.Day() {
		return false
	}
	return !ts.Before(s.start) && ts.Before(s.end)
}

func (s *Shift) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shift) setInterval(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return errs.NewValueIsRequiredError("shift interval")
	}
	if !end.After(start) {
		return ErrShiftEndsBeforeStart
	}
	if kernel.DayKey(start) != kernel.DayKey(end) {
		return ErrShiftCrossesDayBoundary
	}

	s.start = start
	s.end = end
	return nil
}
