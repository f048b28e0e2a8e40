package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nader-Awad/COMP4050BAMBrazil/booking"
)

func reservation(id string, start, end int, status booking.Status) *booking.Reservation {
	return &booking.Reservation{
		ID:            id,
		ResourceID:    "bio-1",
		Date:          "2025-03-10",
		SlotStart:     start,
		SlotEnd:       end,
		Title:         "Cell Biology Lab",
		RequesterID:   "student-a",
		RequesterName: "Student A",
		Status:        status,
		CreatedAt:     time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestMemoryStoreInsertAndGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	res := reservation("r1", 540, 600, booking.StatusPending)
	require.NoError(t, store.Insert(ctx, res))

	got, err := store.Get(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, res.Title, got.Title)

	// The store hands out copies, not aliases.
	got.Title = "mutated"
	again, err := store.Get(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "Cell Biology Lab", again.Title)

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, booking.ErrNotFound)

	err = store.Insert(ctx, reservation("r1", 600, 660, booking.StatusPending))
	assert.Error(t, err, "duplicate id")
}

func TestMemoryStoreApprovedExclusion(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, reservation("p1", 540, 600, booking.StatusPending)))

	// Overlapping Pending rows are allowed; the approval re-check owns
	// that race.
	require.NoError(t, store.Insert(ctx, reservation("p2", 570, 630, booking.StatusPending)))

	_, err := store.UpdateStatus(ctx, "p1", booking.StatusApproved, "teacher-1", time.Now(), "")
	require.NoError(t, err)

	err = store.Insert(ctx, reservation("p3", 570, 600, booking.StatusPending))
	var conflict *booking.SlotConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, []string{"p1"}, conflict.ConflictIDs)
}

func TestMemoryStoreListPartitionOrder(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, reservation("late", 600, 660, booking.StatusPending)))
	require.NoError(t, store.Insert(ctx, reservation("early-long", 480, 600, booking.StatusPending)))
	rejected := reservation("gone", 480, 510, booking.StatusRejected)
	require.NoError(t, store.Insert(ctx, rejected))

	list, err := store.ListPartition(ctx, "bio-1", "2025-03-10")
	require.NoError(t, err)
	require.Len(t, list, 2, "rejected rows are filtered out")
	assert.Equal(t, "early-long", list[0].ID)
	assert.Equal(t, "late", list[1].ID)

	empty, err := store.ListPartition(ctx, "bio-1", "2025-03-11")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMemoryStoreConditionalUpdate(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, reservation("r1", 540, 600, booking.StatusPending)))

	at := time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC)
	updated, err := store.UpdateStatus(ctx, "r1", booking.StatusRejected, "teacher-1", at, "no slots this week")
	require.NoError(t, err)
	assert.Equal(t, booking.StatusRejected, updated.Status)
	assert.Equal(t, "no slots this week", updated.RejectionReason)
	require.NotNil(t, updated.DecidedAt)
	assert.True(t, updated.DecidedAt.Equal(at))

	_, err = store.UpdateStatus(ctx, "r1", booking.StatusApproved, "teacher-1", at, "")
	assert.ErrorIs(t, err, booking.ErrInvalidTransition)

	_, err = store.UpdateStatus(ctx, "missing", booking.StatusApproved, "teacher-1", at, "")
	assert.ErrorIs(t, err, booking.ErrNotFound)
}

func TestMemoryStoreDeleteAndCount(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, reservation("r1", 540, 600, booking.StatusPending)))
	require.NoError(t, store.Insert(ctx, reservation("r2", 600, 660, booking.StatusPending)))

	_, err := store.UpdateStatus(ctx, "r1", booking.StatusApproved, "teacher-1", time.Now(), "")
	require.NoError(t, err)

	count, err := store.CountApproved(ctx, "student-a")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	deleted, err := store.Delete(ctx, "r2")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = store.Delete(ctx, "r2")
	require.NoError(t, err)
	assert.False(t, deleted)

	list, err := store.ListPartition(ctx, "bio-1", "2025-03-10")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestMemoryStoreListByRequester(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	first := reservation("r1", 540, 600, booking.StatusPending)
	second := reservation("r2", 480, 540, booking.StatusPending)
	second.Date = "2025-03-09"
	other := reservation("r3", 600, 660, booking.StatusPending)
	other.RequesterID = "student-b"

	require.NoError(t, store.Insert(ctx, first))
	require.NoError(t, store.Insert(ctx, second))
	require.NoError(t, store.Insert(ctx, other))

	list, err := store.ListByRequester(ctx, "student-a")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "r2", list[0].ID, "ordered by date then start")
	assert.Equal(t, "r1", list[1].ID)
}
