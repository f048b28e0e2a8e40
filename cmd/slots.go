package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Nader-Awad/COMP4050BAMBrazil/booking"
)

type SlotsOutput struct {
	ResourceID string             `json:"resource_id"`
	Date       string             `json:"date"`
	Open       []booking.Interval `json:"open"`
}

func slotsCmd() *cobra.Command {
	var resourceID string
	var date string

	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Show open slots for a resource on a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			if resourceID == "" || date == "" {
				return fmt.Errorf("--resource and --date are required")
			}

			targetDate, err := parseDateInput(date)
			if err != nil {
				return err
			}

			service, closer, err := openService()
			if err != nil {
				return err
			}
			defer closer()

			open, err := service.OpenSlots(context.Background(), resourceID, targetDate)
			if err != nil {
				return err
			}

			if outputJSON {
				return printJSON(SlotsOutput{ResourceID: resourceID, Date: targetDate, Open: open})
			}

			if len(open) == 0 {
				fmt.Printf("No open slots on %s for %s\n", targetDate, resourceID)
				return nil
			}

			writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "FROM\tTO\tMINUTES")
			for _, iv := range open {
				fmt.Fprintf(writer, "%s\t%s\t%d\n", formatClock(iv.Start), formatClock(iv.End), iv.Duration())
			}
			return writer.Flush()
		},
	}

	cmd.Flags().StringVar(&resourceID, "resource", "", "Resource id")
	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD, today, tomorrow)")
	return cmd
}
