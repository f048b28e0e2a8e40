package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Nader-Awad/COMP4050BAMBrazil/booking"
)

func requestCmd() *cobra.Command {
	var resourceID string
	var date string
	var timeRange string
	var title string
	var groupName string
	var attendees int

	cmd := &cobra.Command{
		Use:   "request",
		Short: "Request a reservation",
		RunE: func(cmd *cobra.Command, args []string) error {
			if resourceID == "" || date == "" || timeRange == "" || title == "" {
				return fmt.Errorf("--resource, --date, --time, and --title are required")
			}

			actor, err := requireActor()
			if err != nil {
				return err
			}

			targetDate, err := parseDateInput(date)
			if err != nil {
				return err
			}
			interval, err := parseInterval(timeRange)
			if err != nil {
				return err
			}

			service, closer, err := openService()
			if err != nil {
				return err
			}
			defer closer()

			res, err := service.RequestReservation(context.Background(), booking.Request{
				ResourceID:    resourceID,
				Date:          targetDate,
				Interval:      interval,
				Title:         title,
				GroupName:     groupName,
				Attendees:     attendees,
				RequesterID:   actor.ID,
				RequesterName: actor.Name,
			})
			if err != nil {
				return admissionMessage(err)
			}

			if outputJSON {
				return printJSON(res)
			}
			fmt.Printf("Requested: %s %s %s\n", res.ResourceID, res.Date, formatInterval(res.Interval()))
			fmt.Printf("%s | status %s\n", res.Title, res.Status)
			fmt.Printf("Reservation ID: %s\n", res.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&resourceID, "resource", "", "Resource id")
	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD, today, tomorrow)")
	cmd.Flags().StringVar(&timeRange, "time", "", "Interval (HH:MM-HH:MM)")
	cmd.Flags().StringVar(&title, "title", "", "Reservation title")
	cmd.Flags().StringVar(&groupName, "group", "", "Group name")
	cmd.Flags().IntVar(&attendees, "attendees", 0, "Number of attendees")
	return cmd
}

// admissionMessage renders the admission taxonomy with enough detail
// for the user to pick another slot; infrastructure errors pass
// through untouched.
func admissionMessage(err error) error {
	var conflict *booking.SlotConflictError
	if errors.As(err, &conflict) {
		return fmt.Errorf("slot %s on %s is taken (conflicts: %s)",
			formatInterval(conflict.Interval), conflict.Date, strings.Join(conflict.ConflictIDs, ", "))
	}
	switch {
	case errors.Is(err, booking.ErrMisaligned):
		return fmt.Errorf("interval must start and end on slot boundaries")
	case errors.Is(err, booking.ErrOutOfBounds):
		return fmt.Errorf("interval is outside operating hours")
	case errors.Is(err, booking.ErrInvalidInterval):
		return fmt.Errorf("interval end must be after its start")
	case errors.Is(err, booking.ErrResourceUnavailable):
		return err
	}
	return err
}
