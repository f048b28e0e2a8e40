package booking

import (
	"context"
	"time"
)

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// Terminal reports whether no further decision can be applied.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

type ResourceStatus string

const (
	ResourceAvailable   ResourceStatus = "Available"
	ResourceInUse       ResourceStatus = "InUse"
	ResourceMaintenance ResourceStatus = "Maintenance"
	ResourceOffline     ResourceStatus = "Offline"
)

// Bookable reports whether new reservations may be admitted for a
// resource in this status. A resource that is currently in use can
// still be booked for a later slot.
func (s ResourceStatus) Bookable() bool {
	return s == ResourceAvailable || s == ResourceInUse
}

// Resource is a bookable unit. Resources are administered outside the
// engine; only the identifier and status are read here.
type Resource struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Status ResourceStatus `json:"status"`
}

// Interval is a half-open [Start,End) span in minutes from midnight.
type Interval struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (iv Interval) Duration() int {
	return iv.End - iv.Start
}

// Overlaps uses half-open semantics: touching endpoints do not conflict.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End && other.Start < iv.End
}

// Reservation is the central entity. Resource and date together form
// the scheduling partition; the interval is immutable after creation.
type Reservation struct {
	ID              string     `json:"id"`
	ResourceID      string     `json:"resource_id"`
	Date            string     `json:"date"`
	SlotStart       int        `json:"slot_start"`
	SlotEnd         int        `json:"slot_end"`
	Title           string     `json:"title"`
	GroupName       string     `json:"group_name,omitempty"`
	Attendees       int        `json:"attendees,omitempty"`
	RequesterID     string     `json:"requester_id"`
	RequesterName   string     `json:"requester_name"`
	Status          Status     `json:"status"`
	DecidedBy       string     `json:"decided_by,omitempty"`
	DecidedAt       *time.Time `json:"decided_at,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

func (r *Reservation) Interval() Interval {
	return Interval{Start: r.SlotStart, End: r.SlotEnd}
}

// ConflictGroup is a maximal run of mutually overlapping non-rejected
// reservations on one resource and date. Groups are derived on demand
// and never persisted.
type ConflictGroup struct {
	Start   int            `json:"start"`
	End     int            `json:"end"`
	Members []*Reservation `json:"members"`
}

func (g ConflictGroup) IDs() []string {
	ids := make([]string, len(g.Members))
	for i, m := range g.Members {
		ids[i] = m.ID
	}
	return ids
}

// Clock abstracts time for tests.
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// Authorizer is the external capability check consumed by Decide.
type Authorizer interface {
	CanDecide(actorID, resourceID string) bool
}

// Notifier receives a reservation after it reaches a terminal status.
// Failures are logged by the engine and never fail the decision.
type Notifier interface {
	ReservationDecided(ctx context.Context, res *Reservation) error
}
