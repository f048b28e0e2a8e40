package booking

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
)

// ResourceRegistry resolves resource ids to their current status.
// Resources are administered externally; the engine only reads them.
type ResourceRegistry interface {
	Lookup(id string) (Resource, bool)
}

// Service is the scheduling and conflict-resolution engine: admission,
// approval lifecycle, conflict detection and the fairness advisory,
// all serialized per (resource, date) partition.
type Service struct {
	store             Store
	registry          ResourceRegistry
	grid              Grid
	authz             Authorizer
	notifier          Notifier
	clock             Clock
	locks             *partitionLocks
	fairnessThreshold int
}

type ServiceConfig struct {
	Store      Store
	Registry   ResourceRegistry
	Grid       Grid
	Authorizer Authorizer
	// Notifier is optional; decisions are reported to it best-effort.
	Notifier Notifier
	// Clock defaults to the real clock.
	Clock Clock
	// FairnessThreshold defaults to DefaultFairnessThreshold when nil.
	// A zero threshold flags every requester holding an approval.
	FairnessThreshold *int
}

func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if cfg.Registry == nil {
		return nil, fmt.Errorf("resource registry is required")
	}
	if cfg.Authorizer == nil {
		return nil, fmt.Errorf("authorizer is required")
	}
	if err := cfg.Grid.Validate(); err != nil {
		return nil, fmt.Errorf("grid: %w", err)
	}
	clock := cfg.Clock
	if clock == nil {
		clock = RealClock{}
	}
	threshold := DefaultFairnessThreshold
	if cfg.FairnessThreshold != nil {
		threshold = *cfg.FairnessThreshold
	}
	return &Service{
		store:             cfg.Store,
		registry:          cfg.Registry,
		grid:              cfg.Grid,
		authz:             cfg.Authorizer,
		notifier:          cfg.Notifier,
		clock:             clock,
		locks:             newPartitionLocks(),
		fairnessThreshold: threshold,
	}, nil
}

func (s *Service) Grid() Grid { return s.grid }

// Request carries the parameters of a new reservation request.
type Request struct {
	ResourceID    string
	Date          string
	Interval      Interval
	Title         string
	GroupName     string
	Attendees     int
	RequesterID   string
	RequesterName string
}

func (r Request) validate() error {
	if r.ResourceID == "" {
		return fmt.Errorf("resource id is required")
	}
	if _, err := time.Parse("2006-01-02", r.Date); err != nil {
		return fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", r.Date)
	}
	if r.Title == "" {
		return fmt.Errorf("title is required")
	}
	if r.RequesterID == "" {
		return fmt.Errorf("requester id is required")
	}
	return nil
}

// RequestReservation validates and admits a new reservation request.
// Validation is fail-fast in a fixed order: interval shape and grid
// alignment, resource availability, then the overlap test against the
// committed non-rejected set for the partition. On success the
// reservation is committed in Pending state under the partition lock.
func (s *Service) RequestReservation(ctx context.Context, req Request) (*Reservation, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	if err := s.grid.CheckInterval(req.Interval); err != nil {
		return nil, err
	}

	resource, ok := s.registry.Lookup(req.ResourceID)
	if !ok {
		return nil, fmt.Errorf("%w: unknown resource %s", ErrResourceUnavailable, req.ResourceID)
	}
	if !resource.Status.Bookable() {
		return nil, fmt.Errorf("%w: %s is %s", ErrResourceUnavailable, resource.ID, resource.Status)
	}

	lock := s.locks.get(req.ResourceID, req.Date)
	lock.Lock()
	defer lock.Unlock()

	committed, err := s.store.ListPartition(ctx, req.ResourceID, req.Date)
	if err != nil {
		return nil, fmt.Errorf("list partition: %w", err)
	}
	if ids := ConflictingIDs(req.Interval, committed); len(ids) > 0 {
		return nil, &SlotConflictError{
			ResourceID:  req.ResourceID,
			Date:        req.Date,
			Interval:    req.Interval,
			ConflictIDs: ids,
		}
	}

	res := &Reservation{
		ID:            uuid.NewString(),
		ResourceID:    req.ResourceID,
		Date:          req.Date,
		SlotStart:     req.Interval.Start,
		SlotEnd:       req.Interval.End,
		Title:         req.Title,
		GroupName:     req.GroupName,
		Attendees:     req.Attendees,
		RequesterID:   req.RequesterID,
		RequesterName: req.RequesterName,
		Status:        StatusPending,
		CreatedAt:     s.clock.Now().UTC(),
	}
	if err := s.store.Insert(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

// Decide applies a one-way Pending->Approved or Pending->Rejected
// transition. Approval re-runs the overlap test against the approved
// set: another reservation may have won the slot since admission, in
// which case the transition fails with a LateConflictError and the
// reservation stays Pending for manual resolution.
func (s *Service) Decide(ctx context.Context, reservationID string, decision Status, actorID, reason string) (*Reservation, error) {
	if decision != StatusApproved && decision != StatusRejected {
		return nil, fmt.Errorf("%w: decision must be Approved or Rejected", ErrInvalidTransition)
	}

	res, err := s.store.Get(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	lock := s.locks.get(res.ResourceID, res.Date)
	lock.Lock()
	defer lock.Unlock()

	// Re-read under the lock: a concurrent decision may have landed.
	res, err = s.store.Get(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if res.Status != StatusPending {
		return nil, fmt.Errorf("%w: reservation %s is %s", ErrInvalidTransition, res.ID, res.Status)
	}
	if !s.authz.CanDecide(actorID, res.ResourceID) {
		return nil, fmt.Errorf("%w: %s", ErrForbidden, actorID)
	}

	if decision == StatusApproved {
		committed, err := s.store.ListPartition(ctx, res.ResourceID, res.Date)
		if err != nil {
			return nil, fmt.Errorf("list partition: %w", err)
		}
		approved := make([]*Reservation, 0, len(committed))
		for _, other := range committed {
			if other.ID != res.ID && other.Status == StatusApproved {
				approved = append(approved, other)
			}
		}
		if ids := ConflictingIDs(res.Interval(), approved); len(ids) > 0 {
			return nil, &LateConflictError{ReservationID: res.ID, ConflictIDs: ids}
		}
	}

	updated, err := s.store.UpdateStatus(ctx, res.ID, decision, actorID, s.clock.Now().UTC(), reason)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.ReservationDecided(ctx, updated); err != nil {
			log.Printf("notify reservation %s decided: %v", updated.ID, err)
		}
	}
	return updated, nil
}

// Remove hard-deletes a reservation. The requester may remove their
// own reservation while it is not yet Approved; decision-capable
// actors may remove any.
func (s *Service) Remove(ctx context.Context, reservationID, actorID string) error {
	res, err := s.store.Get(ctx, reservationID)
	if err != nil {
		return err
	}

	lock := s.locks.get(res.ResourceID, res.Date)
	lock.Lock()
	defer lock.Unlock()

	// Re-read under the lock: a concurrent approval must not slip
	// past the requester's not-yet-Approved check.
	res, err = s.store.Get(ctx, reservationID)
	if err != nil {
		return err
	}

	if !s.authz.CanDecide(actorID, res.ResourceID) {
		if res.RequesterID != actorID {
			return fmt.Errorf("%w: not the requester", ErrForbidden)
		}
		if res.Status == StatusApproved {
			return fmt.Errorf("%w: approved reservations are removed by staff", ErrForbidden)
		}
	}

	deleted, err := s.store.Delete(ctx, reservationID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// UpdateDetails edits title, group and attendees. The interval is
// immutable: time-shifting goes through Remove plus a fresh request so
// it re-enters admission.
func (s *Service) UpdateDetails(ctx context.Context, reservationID, actorID string, details Details) (*Reservation, error) {
	res, err := s.store.Get(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if res.RequesterID != actorID && !s.authz.CanDecide(actorID, res.ResourceID) {
		return nil, fmt.Errorf("%w: not the requester", ErrForbidden)
	}
	if details.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	return s.store.UpdateDetails(ctx, reservationID, details)
}

func (s *Service) Get(ctx context.Context, reservationID string) (*Reservation, error) {
	return s.store.Get(ctx, reservationID)
}

// DaySchedule lists the non-rejected reservations for a partition,
// ordered by start then end.
func (s *Service) DaySchedule(ctx context.Context, resourceID, date string) ([]*Reservation, error) {
	return s.store.ListPartition(ctx, resourceID, date)
}

func (s *Service) ReservationsFor(ctx context.Context, requesterID string) ([]*Reservation, error) {
	return s.store.ListByRequester(ctx, requesterID)
}

// OpenSlots returns the free spans of the grid for a partition.
func (s *Service) OpenSlots(ctx context.Context, resourceID, date string) ([]Interval, error) {
	committed, err := s.store.ListPartition(ctx, resourceID, date)
	if err != nil {
		return nil, err
	}
	return OpenIntervals(s.grid, committed), nil
}

// Conflicts returns the advisory conflict groups for a partition.
func (s *Service) Conflicts(ctx context.Context, resourceID, date string) ([]ConflictGroup, error) {
	committed, err := s.store.ListPartition(ctx, resourceID, date)
	if err != nil {
		return nil, err
	}
	return ConflictGroups(committed), nil
}
