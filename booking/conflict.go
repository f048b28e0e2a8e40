package booking

import "sort"

// ConflictingIDs runs the single-candidate overlap test: it returns
// the ids of reservations whose interval overlaps the candidate. The
// same half-open predicate backs both this admission gate and the
// advisory group sweep, so the two can never diverge.
func ConflictingIDs(candidate Interval, existing []*Reservation) []string {
	var ids []string
	for _, res := range existing {
		if res.Status == StatusRejected {
			continue
		}
		if candidate.Overlaps(res.Interval()) {
			ids = append(ids, res.ID)
		}
	}
	return ids
}

// ConflictGroups finds the maximal runs of mutually overlapping
// non-rejected reservations using an interval-merge sweep: sort by
// (start, end), keep a running max end, and close the open group when
// the next reservation starts at or past it. Singletons are dropped,
// so every emitted group has at least two members and every
// overlapping pair appears in exactly one group.
func ConflictGroups(reservations []*Reservation) []ConflictGroup {
	active := make([]*Reservation, 0, len(reservations))
	for _, res := range reservations {
		if res.Status != StatusRejected {
			active = append(active, res)
		}
	}
	sort.Slice(active, func(i, j int) bool {
		if active[i].SlotStart != active[j].SlotStart {
			return active[i].SlotStart < active[j].SlotStart
		}
		return active[i].SlotEnd < active[j].SlotEnd
	})

	var groups []ConflictGroup
	var open ConflictGroup
	for _, res := range active {
		if len(open.Members) > 0 && res.SlotStart < open.End {
			open.Members = append(open.Members, res)
			if res.SlotEnd > open.End {
				open.End = res.SlotEnd
			}
			continue
		}
		if len(open.Members) >= 2 {
			groups = append(groups, open)
		}
		open = ConflictGroup{Start: res.SlotStart, End: res.SlotEnd, Members: []*Reservation{res}}
	}
	if len(open.Members) >= 2 {
		groups = append(groups, open)
	}
	return groups
}

// OpenIntervals returns the free spans of the grid for a partition,
// coalescing contiguous unbooked slots into single intervals.
func OpenIntervals(grid Grid, reservations []*Reservation) []Interval {
	slots := grid.Slots()
	free := make([]bool, len(slots))
	for i := range free {
		free[i] = true
	}
	for _, res := range reservations {
		if res.Status == StatusRejected {
			continue
		}
		for i, slot := range slots {
			if slot.Overlaps(res.Interval()) {
				free[i] = false
			}
		}
	}

	var out []Interval
	i := 0
	for i < len(slots) {
		if !free[i] {
			i++
			continue
		}
		start := slots[i].Start
		for i < len(slots) && free[i] {
			i++
		}
		out = append(out, Interval{Start: start, End: slots[i-1].End})
	}
	return out
}
