package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Nader-Awad/COMP4050BAMBrazil/booking"
)

// MemoryStore is an in-memory booking.Store: rows keyed by id with a
// secondary index by (resource, date) partition. It backs tests and
// runs without a database file; like the sqlite store it refuses an
// insert that overlaps an approved reservation.
type MemoryStore struct {
	mu          sync.RWMutex
	byID        map[string]*booking.Reservation
	byPartition map[string][]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:        make(map[string]*booking.Reservation),
		byPartition: make(map[string][]string),
	}
}

func partitionKey(resourceID, date string) string {
	return resourceID + "\x00" + date
}

func (s *MemoryStore) Insert(ctx context.Context, res *booking.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[res.ID]; exists {
		return fmt.Errorf("reservation %s already exists", res.ID)
	}

	// The storage boundary guards against approved rows only. Pending
	// rows may overlap here: concurrent admissions that raced past each
	// other are resolved by the approval re-check, not by the store.
	var approved []*booking.Reservation
	for _, other := range s.partitionLocked(res.ResourceID, res.Date) {
		if other.Status == booking.StatusApproved {
			approved = append(approved, other)
		}
	}
	if ids := booking.ConflictingIDs(res.Interval(), approved); len(ids) > 0 {
		return &booking.SlotConflictError{
			ResourceID:  res.ResourceID,
			Date:        res.Date,
			Interval:    res.Interval(),
			ConflictIDs: ids,
		}
	}

	clone := *res
	s.byID[res.ID] = &clone
	key := partitionKey(res.ResourceID, res.Date)
	s.byPartition[key] = append(s.byPartition[key], res.ID)
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*booking.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res, ok := s.byID[id]
	if !ok {
		return nil, booking.ErrNotFound
	}
	clone := *res
	return &clone, nil
}

// partitionLocked returns the live non-rejected rows for a partition.
// Callers must hold at least the read lock.
func (s *MemoryStore) partitionLocked(resourceID, date string) []*booking.Reservation {
	var out []*booking.Reservation
	for _, id := range s.byPartition[partitionKey(resourceID, date)] {
		res, ok := s.byID[id]
		if !ok || res.Status == booking.StatusRejected {
			continue
		}
		out = append(out, res)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SlotStart != out[j].SlotStart {
			return out[i].SlotStart < out[j].SlotStart
		}
		return out[i].SlotEnd < out[j].SlotEnd
	})
	return out
}

func (s *MemoryStore) ListPartition(ctx context.Context, resourceID, date string) ([]*booking.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	live := s.partitionLocked(resourceID, date)
	out := make([]*booking.Reservation, len(live))
	for i, res := range live {
		clone := *res
		out[i] = &clone
	}
	return out, nil
}

func (s *MemoryStore) ListByRequester(ctx context.Context, requesterID string) ([]*booking.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*booking.Reservation{}
	for _, res := range s.byID {
		if res.RequesterID != requesterID {
			continue
		}
		clone := *res
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].SlotStart < out[j].SlotStart
	})
	return out, nil
}

func (s *MemoryStore) UpdateStatus(ctx context.Context, id string, to booking.Status, decidedBy string, decidedAt time.Time, reason string) (*booking.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, ok := s.byID[id]
	if !ok {
		return nil, booking.ErrNotFound
	}
	if res.Status != booking.StatusPending {
		return nil, booking.ErrInvalidTransition
	}

	res.Status = to
	res.DecidedBy = decidedBy
	at := decidedAt
	res.DecidedAt = &at
	res.RejectionReason = reason

	clone := *res
	return &clone, nil
}

func (s *MemoryStore) UpdateDetails(ctx context.Context, id string, details booking.Details) (*booking.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, ok := s.byID[id]
	if !ok {
		return nil, booking.ErrNotFound
	}
	res.Title = details.Title
	res.GroupName = details.GroupName
	res.Attendees = details.Attendees

	clone := *res
	return &clone, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, ok := s.byID[id]
	if !ok {
		return false, nil
	}
	delete(s.byID, id)

	key := partitionKey(res.ResourceID, res.Date)
	ids := s.byPartition[key]
	for i, existing := range ids {
		if existing == id {
			s.byPartition[key] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return true, nil
}

func (s *MemoryStore) CountApproved(ctx context.Context, requesterID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, res := range s.byID {
		if res.RequesterID == requesterID && res.Status == booking.StatusApproved {
			count++
		}
	}
	return count, nil
}
