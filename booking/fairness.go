package booking

import "context"

// DefaultFairnessThreshold is the approved-reservation count above
// which a requester is flagged in queue views.
const DefaultFairnessThreshold = 2

// QueueEntry annotates a pending reservation with the requester's
// fairness standing for approval queue views.
type QueueEntry struct {
	Reservation   *Reservation `json:"reservation"`
	ApprovedCount int          `json:"approved_count"`
	FairnessFlag  bool         `json:"fairness_flag"`
}

// ApprovedCount returns how many approved reservations a requester
// currently holds. Strictly advisory: it never blocks an operation.
func (s *Service) ApprovedCount(ctx context.Context, requesterID string) (int, error) {
	return s.store.CountApproved(ctx, requesterID)
}

// FairnessHint reports the approved count and whether it exceeds the
// configured threshold.
func (s *Service) FairnessHint(ctx context.Context, requesterID string) (int, bool, error) {
	count, err := s.store.CountApproved(ctx, requesterID)
	if err != nil {
		return 0, false, err
	}
	return count, count > s.fairnessThreshold, nil
}

// PendingQueue lists the pending reservations for a partition with
// fairness annotations, for decision-makers reviewing requests.
func (s *Service) PendingQueue(ctx context.Context, resourceID, date string) ([]QueueEntry, error) {
	committed, err := s.store.ListPartition(ctx, resourceID, date)
	if err != nil {
		return nil, err
	}

	var queue []QueueEntry
	counts := map[string]int{}
	for _, res := range committed {
		if res.Status != StatusPending {
			continue
		}
		count, ok := counts[res.RequesterID]
		if !ok {
			count, err = s.store.CountApproved(ctx, res.RequesterID)
			if err != nil {
				return nil, err
			}
			counts[res.RequesterID] = count
		}
		queue = append(queue, QueueEntry{
			Reservation:   res,
			ApprovedCount: count,
			FairnessFlag:  count > s.fairnessThreshold,
		})
	}
	return queue, nil
}
