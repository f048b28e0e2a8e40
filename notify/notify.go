// Package notify delivers reservation decisions to interested
// collaborators: an AMQP event stream and the usage-session tracker.
// Delivery is best-effort; the engine logs failures and the decision
// stands regardless.
package notify

import (
	"context"
	"time"

	"github.com/Nader-Awad/COMP4050BAMBrazil/api"
	"github.com/Nader-Awad/COMP4050BAMBrazil/booking"
)

// DecisionEvent is the wire format published on a decision.
type DecisionEvent struct {
	ReservationID string `json:"reservation_id"`
	ResourceID    string `json:"resource_id"`
	Date          string `json:"date"`
	SlotStart     int    `json:"slot_start"`
	SlotEnd       int    `json:"slot_end"`
	RequesterID   string `json:"requester_id"`
	Status        string `json:"status"`
	DecidedBy     string `json:"decided_by"`
	DecidedAt     string `json:"decided_at,omitempty"`
}

func eventFor(res *booking.Reservation) DecisionEvent {
	event := DecisionEvent{
		ReservationID: res.ID,
		ResourceID:    res.ResourceID,
		Date:          res.Date,
		SlotStart:     res.SlotStart,
		SlotEnd:       res.SlotEnd,
		RequesterID:   res.RequesterID,
		Status:        string(res.Status),
		DecidedBy:     res.DecidedBy,
	}
	if res.DecidedAt != nil {
		event.DecidedAt = res.DecidedAt.Format(time.RFC3339)
	}
	return event
}

// Multi fans a decision out to several notifiers, returning the first
// error after trying all of them.
type Multi []booking.Notifier

func (m Multi) ReservationDecided(ctx context.Context, res *booking.Reservation) error {
	var firstErr error
	for _, n := range m {
		if err := n.ReservationDecided(ctx, res); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Tracker notifies the usage-session tracker of approvals so it can
// open a session against the now-final reservation. Rejections are not
// its concern.
type Tracker struct {
	Client *api.Client
}

func (t Tracker) ReservationDecided(ctx context.Context, res *booking.Reservation) error {
	if res.Status != booking.StatusApproved {
		return nil
	}
	_, err := t.Client.StartSession(ctx, api.StartSessionRequest{
		ReservationID: res.ID,
		ResourceID:    res.ResourceID,
		UserID:        res.RequesterID,
		Date:          res.Date,
		SlotStart:     res.SlotStart,
		SlotEnd:       res.SlotEnd,
	})
	return err
}
