package booking

import (
	"errors"
	"fmt"
	"strings"
)

// Admission and decision failures are expected, recoverable outcomes
// returned to the caller as first-class values. Only persistence-layer
// failures propagate as wrapped infrastructure errors outside this
// taxonomy.
var (
	ErrInvalidInterval     = errors.New("invalid interval")
	ErrMisaligned          = errors.New("interval not aligned to slot grid")
	ErrOutOfBounds         = errors.New("interval outside operating hours")
	ErrResourceUnavailable = errors.New("resource unavailable")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrForbidden           = errors.New("actor may not decide reservations")
	ErrNotFound            = errors.New("reservation not found")
)

// SlotConflictError reports an admission failure, carrying the ids of
// the committed reservations that block the candidate interval so the
// caller can highlight the exact overlaps.
type SlotConflictError struct {
	ResourceID  string
	Date        string
	Interval    Interval
	ConflictIDs []string
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("slot conflict on %s %s [%d,%d): overlaps %s",
		e.ResourceID, e.Date, e.Interval.Start, e.Interval.End, strings.Join(e.ConflictIDs, ", "))
}

// LateConflictError reports an approval failure: another reservation
// was approved after this one passed admission. The reservation stays
// Pending for manual resolution.
type LateConflictError struct {
	ReservationID string
	ConflictIDs   []string
}

func (e *LateConflictError) Error() string {
	return fmt.Sprintf("late conflict approving %s: now overlaps approved %s",
		e.ReservationID, strings.Join(e.ConflictIDs, ", "))
}
