package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Nader-Awad/COMP4050BAMBrazil/booking"
)

func reservationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reservations",
		Short: "Manage reservations",
	}

	cmd.AddCommand(reservationsListCmd())
	cmd.AddCommand(reservationsShowCmd())
	cmd.AddCommand(reservationsCancelCmd())
	cmd.AddCommand(reservationsEditCmd())
	return cmd
}

func reservationsListCmd() *cobra.Command {
	var resourceID string
	var date string
	var mine bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List reservations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !mine && (resourceID == "" || date == "") {
				return fmt.Errorf("use --mine, or --resource with --date")
			}

			service, closer, err := openService()
			if err != nil {
				return err
			}
			defer closer()

			ctx := context.Background()
			var reservations []*booking.Reservation
			if mine {
				actor, err := requireActor()
				if err != nil {
					return err
				}
				reservations, err = service.ReservationsFor(ctx, actor.ID)
				if err != nil {
					return err
				}
			} else {
				targetDate, err := parseDateInput(date)
				if err != nil {
					return err
				}
				reservations, err = service.DaySchedule(ctx, resourceID, targetDate)
				if err != nil {
					return err
				}
			}

			if outputJSON {
				return printJSON(reservations)
			}

			if len(reservations) == 0 {
				fmt.Println("No reservations")
				return nil
			}

			writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "ID\tRESOURCE\tDATE\tTIME\tTITLE\tREQUESTER\tSTATUS")
			for _, res := range reservations {
				fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					res.ID, res.ResourceID, res.Date, formatInterval(res.Interval()),
					res.Title, res.RequesterName, statusLabel(res))
			}
			return writer.Flush()
		},
	}

	cmd.Flags().StringVar(&resourceID, "resource", "", "Resource id")
	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD, today, tomorrow)")
	cmd.Flags().BoolVar(&mine, "mine", false, "List the acting user's reservations")
	return cmd
}

func reservationsShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <reservation-id>",
		Short: "Show one reservation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, closer, err := openService()
			if err != nil {
				return err
			}
			defer closer()

			res, err := service.Get(context.Background(), args[0])
			if err != nil {
				return err
			}

			if outputJSON {
				return printJSON(res)
			}

			fmt.Printf("Reservation %s\n", res.ID)
			fmt.Printf("  Resource:  %s\n", res.ResourceID)
			fmt.Printf("  Date:      %s %s\n", res.Date, formatInterval(res.Interval()))
			fmt.Printf("  Title:     %s\n", res.Title)
			if res.GroupName != "" {
				fmt.Printf("  Group:     %s\n", res.GroupName)
			}
			if res.Attendees > 0 {
				fmt.Printf("  Attendees: %d\n", res.Attendees)
			}
			fmt.Printf("  Requester: %s\n", res.RequesterName)
			fmt.Printf("  Status:    %s\n", statusLabel(res))
			if res.DecidedBy != "" {
				fmt.Printf("  Decided:   by %s at %s\n", res.DecidedBy, res.DecidedAt.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
	return cmd
}

func reservationsCancelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cancel <reservation-id>",
		Short: "Remove a reservation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := requireActor()
			if err != nil {
				return err
			}

			service, closer, err := openService()
			if err != nil {
				return err
			}
			defer closer()

			if err := service.Remove(context.Background(), args[0], actor.ID); err != nil {
				return err
			}
			fmt.Printf("Removed reservation %s\n", args[0])
			return nil
		},
	}
	return cmd
}

func reservationsEditCmd() *cobra.Command {
	var title string
	var groupName string
	var attendees int

	cmd := &cobra.Command{
		Use:   "edit <reservation-id>",
		Short: "Edit title, group, or attendees",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := requireActor()
			if err != nil {
				return err
			}

			service, closer, err := openService()
			if err != nil {
				return err
			}
			defer closer()

			ctx := context.Background()
			current, err := service.Get(ctx, args[0])
			if err != nil {
				return err
			}

			details := booking.Details{
				Title:     current.Title,
				GroupName: current.GroupName,
				Attendees: current.Attendees,
			}
			if cmd.Flags().Changed("title") {
				details.Title = title
			}
			if cmd.Flags().Changed("group") {
				details.GroupName = groupName
			}
			if cmd.Flags().Changed("attendees") {
				details.Attendees = attendees
			}

			res, err := service.UpdateDetails(ctx, args[0], actor.ID, details)
			if err != nil {
				return err
			}

			if outputJSON {
				return printJSON(res)
			}
			fmt.Printf("Updated reservation %s\n", res.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&groupName, "group", "", "New group name")
	cmd.Flags().IntVar(&attendees, "attendees", 0, "New attendee count")
	return cmd
}
