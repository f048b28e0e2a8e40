package booking

import "fmt"

const (
	DefaultOpenMinute  = 8 * 60
	DefaultCloseMinute = 17 * 60
	DefaultSlotMinutes = 30
)

// Grid defines the bookable time domain for a day: operating hours and
// the canonical slot size. All methods are pure.
type Grid struct {
	OpenMinute  int
	CloseMinute int
	SlotMinutes int
}

func DefaultGrid() Grid {
	return Grid{
		OpenMinute:  DefaultOpenMinute,
		CloseMinute: DefaultCloseMinute,
		SlotMinutes: DefaultSlotMinutes,
	}
}

func (g Grid) Validate() error {
	if g.SlotMinutes <= 0 {
		return fmt.Errorf("slot minutes must be positive, got %d", g.SlotMinutes)
	}
	if g.OpenMinute < 0 || g.CloseMinute > 24*60 || g.CloseMinute <= g.OpenMinute {
		return fmt.Errorf("operating hours [%d,%d) out of range", g.OpenMinute, g.CloseMinute)
	}
	if g.OpenMinute%g.SlotMinutes != 0 || g.CloseMinute%g.SlotMinutes != 0 {
		return fmt.Errorf("operating hours [%d,%d) not aligned to %d-minute slots",
			g.OpenMinute, g.CloseMinute, g.SlotMinutes)
	}
	return nil
}

// Slots returns the ordered canonical slots covering the operating
// hours. A trailing partial slot is not emitted.
func (g Grid) Slots() []Interval {
	var slots []Interval
	for s := g.OpenMinute; s+g.SlotMinutes <= g.CloseMinute; s += g.SlotMinutes {
		slots = append(slots, Interval{Start: s, End: s + g.SlotMinutes})
	}
	return slots
}

// CheckInterval validates a requested interval against the grid. The
// interval may span multiple contiguous slots, but both endpoints must
// sit on slot boundaries and inside the operating hours.
func (g Grid) CheckInterval(iv Interval) error {
	if iv.End <= iv.Start {
		return ErrInvalidInterval
	}
	if iv.Start < g.OpenMinute || iv.End > g.CloseMinute {
		return ErrOutOfBounds
	}
	if iv.Start%g.SlotMinutes != 0 || iv.End%g.SlotMinutes != 0 {
		return ErrMisaligned
	}
	return nil
}
