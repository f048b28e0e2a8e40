package booking

import (
	"context"
	"time"
)

// Details are the mutable reservation fields. The interval is not
// among them: time-shifting requires cancel plus a fresh request.
type Details struct {
	Title     string
	GroupName string
	Attendees int
}

// Store is the persistence contract the engine runs against. Partition
// listings return non-rejected reservations ordered by (start, end).
// Implementations must make UpdateStatus conditional on the row still
// being Pending, and should enforce the no-overlap exclusion on Insert
// as a second line of defense behind the engine's partition locks.
type Store interface {
	Insert(ctx context.Context, res *Reservation) error
	Get(ctx context.Context, id string) (*Reservation, error)
	ListPartition(ctx context.Context, resourceID, date string) ([]*Reservation, error)
	ListByRequester(ctx context.Context, requesterID string) ([]*Reservation, error)
	UpdateStatus(ctx context.Context, id string, to Status, decidedBy string, decidedAt time.Time, reason string) (*Reservation, error)
	UpdateDetails(ctx context.Context, id string, details Details) (*Reservation, error)
	Delete(ctx context.Context, id string) (bool, error)
	CountApproved(ctx context.Context, requesterID string) (int, error)
}
