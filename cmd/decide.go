package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Nader-Awad/COMP4050BAMBrazil/booking"
)

func decideCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decide",
		Short: "Approve or reject pending reservations",
	}

	cmd.AddCommand(approveCmd())
	cmd.AddCommand(rejectCmd())
	return cmd
}

func approveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "approve <reservation-id>",
		Short: "Approve a pending reservation",
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

			res, err := service.Decide(context.Background(), args[0], booking.StatusApproved, actor.ID, "")
			if err != nil {
				return decisionMessage(err)
			}

			if outputJSON {
				return printJSON(res)
			}
			fmt.Printf("Approved: %s %s %s (%s)\n", res.ResourceID, res.Date, formatInterval(res.Interval()), res.Title)
			return nil
		},
	}
	return cmd
}

func rejectCmd() *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "reject <reservation-id>",
		Short: "Reject a pending reservation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := requireActor()
			if err != nil {
				return err
			}

			if reason == "" && term.IsTerminal(int(os.Stdin.Fd())) {
				fmt.Print("Reason (optional): ")
				reader := bufio.NewReader(os.Stdin)
				value, err := reader.ReadString('\n')
				if err == nil {
					reason = strings.TrimSpace(value)
				}
			}

			service, closer, err := openService()
			if err != nil {
				return err
			}
			defer closer()

			res, err := service.Decide(context.Background(), args[0], booking.StatusRejected, actor.ID, reason)
			if err != nil {
				return decisionMessage(err)
			}

			if outputJSON {
				return printJSON(res)
			}
			fmt.Printf("Rejected: %s %s %s (%s)\n", res.ResourceID, res.Date, formatInterval(res.Interval()), res.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "Rejection reason")
	return cmd
}

func decisionMessage(err error) error {
	var late *booking.LateConflictError
	if errors.As(err, &late) {
		return fmt.Errorf("cannot approve %s: the slot was approved for %s in the meantime; reject one of them to resolve",
			late.ReservationID, strings.Join(late.ConflictIDs, ", "))
	}
	switch {
	case errors.Is(err, booking.ErrInvalidTransition):
		return fmt.Errorf("reservation already decided: %v", err)
	case errors.Is(err, booking.ErrForbidden):
		return fmt.Errorf("only teachers and admins can decide reservations")
	}
	return err
}
