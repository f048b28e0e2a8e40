package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nader-Awad/COMP4050BAMBrazil/booking"
)

func TestEventForDecidedReservation(t *testing.T) {
	decidedAt := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)
	res := &booking.Reservation{
		ID:          "res-1",
		ResourceID:  "bio-1",
		Date:        "2025-03-10",
		SlotStart:   540,
		SlotEnd:     600,
		RequesterID: "student-a",
		Status:      booking.StatusApproved,
		DecidedBy:   "teacher-1",
		DecidedAt:   &decidedAt,
	}

	event := eventFor(res)
	assert.Equal(t, "res-1", event.ReservationID)
	assert.Equal(t, "bio-1", event.ResourceID)
	assert.Equal(t, "Approved", event.Status)
	assert.Equal(t, "teacher-1", event.DecidedBy)

	parsed, err := time.Parse(time.RFC3339, event.DecidedAt)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(decidedAt))
}

func TestEventForOmitsUnsetDecidedAt(t *testing.T) {
	event := eventFor(&booking.Reservation{ID: "res-2", Status: booking.StatusPending})
	assert.Empty(t, event.DecidedAt)
}
