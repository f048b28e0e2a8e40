package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func res(id string, start, end int, status Status) *Reservation {
	return &Reservation{
		ID:         id,
		ResourceID: "bio-1",
		Date:       "2025-03-10",
		SlotStart:  start,
		SlotEnd:    end,
		Status:     status,
	}
}

func TestOverlapsHalfOpen(t *testing.T) {
	a := Interval{Start: 540, End: 600} // 09:00-10:00
	b := Interval{Start: 600, End: 660} // 10:00-11:00
	c := Interval{Start: 570, End: 630} // 09:30-10:30

	assert.False(t, a.Overlaps(b), "touching endpoints must not conflict")
	assert.False(t, b.Overlaps(a))
	assert.True(t, a.Overlaps(c))
	assert.True(t, c.Overlaps(a))
	assert.True(t, a.Overlaps(a))
}

func TestConflictingIDs(t *testing.T) {
	existing := []*Reservation{
		res("a", 540, 600, StatusPending),
		res("b", 600, 660, StatusApproved),
		res("c", 630, 690, StatusRejected),
	}

	ids := ConflictingIDs(Interval{Start: 570, End: 640}, existing)
	assert.Equal(t, []string{"a", "b"}, ids, "rejected reservations never block")

	assert.Empty(t, ConflictingIDs(Interval{Start: 660, End: 720}, existing))
}

func TestConflictGroups(t *testing.T) {
	// A=[540,600), B=[570,630) overlap; C=[700,730) stands alone.
	input := []*Reservation{
		res("A", 540, 600, StatusPending),
		res("B", 570, 630, StatusPending),
		res("C", 700, 730, StatusApproved),
	}

	groups := ConflictGroups(input)
	require.Len(t, groups, 1)
	assert.Equal(t, []string{"A", "B"}, groups[0].IDs())
	assert.Equal(t, 540, groups[0].Start)
	assert.Equal(t, 630, groups[0].End)
}

func TestConflictGroupsChained(t *testing.T) {
	// B bridges A and C: one group even though A and C do not overlap.
	input := []*Reservation{
		res("A", 540, 600, StatusPending),
		res("B", 590, 660, StatusPending),
		res("C", 650, 700, StatusPending),
		res("D", 700, 760, StatusPending),
	}

	groups := ConflictGroups(input)
	require.Len(t, groups, 1)
	assert.Equal(t, []string{"A", "B", "C"}, groups[0].IDs())
	assert.Equal(t, 700, groups[0].End)
}

func TestConflictGroupsIgnoresRejected(t *testing.T) {
	input := []*Reservation{
		res("A", 540, 600, StatusPending),
		res("B", 570, 630, StatusRejected),
	}
	assert.Empty(t, ConflictGroups(input))
}

func TestConflictGroupsInputOrderIndependent(t *testing.T) {
	items := []*Reservation{
		res("A", 540, 600, StatusPending),
		res("B", 570, 630, StatusPending),
		res("C", 700, 730, StatusPending),
		res("D", 710, 740, StatusApproved),
	}

	want := ConflictGroups(items)

	permute(items, func(order []*Reservation) {
		got := ConflictGroups(order)
		require.Len(t, got, len(want))
		for i := range want {
			assert.Equal(t, want[i].IDs(), got[i].IDs())
			assert.Equal(t, want[i].Start, got[i].Start)
			assert.Equal(t, want[i].End, got[i].End)
		}
	})
}

// permute calls fn with every ordering of items.
func permute(items []*Reservation, fn func([]*Reservation)) {
	var rec func(k int)
	rec = func(k int) {
		if k == len(items) {
			ordered := make([]*Reservation, len(items))
			copy(ordered, items)
			fn(ordered)
			return
		}
		for i := k; i < len(items); i++ {
			items[k], items[i] = items[i], items[k]
			rec(k + 1)
			items[k], items[i] = items[i], items[k]
		}
	}
	rec(0)
}

func TestOpenIntervals(t *testing.T) {
	grid := DefaultGrid()

	open := OpenIntervals(grid, nil)
	require.Len(t, open, 1)
	assert.Equal(t, Interval{Start: 480, End: 1020}, open[0])

	committed := []*Reservation{
		res("a", 540, 600, StatusApproved),
		res("b", 600, 660, StatusPending),
		res("c", 900, 960, StatusRejected),
	}
	open = OpenIntervals(grid, committed)
	assert.Equal(t, []Interval{
		{Start: 480, End: 540},
		{Start: 660, End: 1020},
	}, open, "rejected reservations free their slots")
}
