package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Nader-Awad/COMP4050BAMBrazil/booking"
)

func parseClock(input string) (int, error) {
	parts := strings.Split(strings.TrimSpace(input), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q (expected HH:MM)", input)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("invalid time %q (expected HH:MM)", input)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid time %q (expected HH:MM)", input)
	}
	return hours*60 + minutes, nil
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func formatInterval(iv booking.Interval) string {
	return formatClock(iv.Start) + "-" + formatClock(iv.End)
}

// parseInterval accepts "HH:MM-HH:MM".
func parseInterval(input string) (booking.Interval, error) {
	parts := strings.Split(input, "-")
	if len(parts) != 2 {
		return booking.Interval{}, fmt.Errorf("invalid interval %q (expected HH:MM-HH:MM)", input)
	}
	start, err := parseClock(parts[0])
	if err != nil {
		return booking.Interval{}, err
	}
	end, err := parseClock(parts[1])
	if err != nil {
		return booking.Interval{}, err
	}
	return booking.Interval{Start: start, End: end}, nil
}

func parseDateInput(input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("date is required")
	}
	now := time.Now()
	switch strings.ToLower(input) {
	case "today":
		return now.Format("2006-01-02"), nil
	case "tomorrow":
		return now.AddDate(0, 0, 1).Format("2006-01-02"), nil
	}
	parsed, err := time.Parse("2006-01-02", input)
	if err != nil {
		return "", fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", input)
	}
	return parsed.Format("2006-01-02"), nil
}

func printJSON(value any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

func statusLabel(res *booking.Reservation) string {
	label := string(res.Status)
	if res.Status == booking.StatusRejected && res.RejectionReason != "" {
		label += " (" + res.RejectionReason + ")"
	}
	return label
}
