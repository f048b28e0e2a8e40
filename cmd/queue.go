package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func queueCmd() *cobra.Command {
	var resourceID string
	var date string

	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Show the pending approval queue with fairness hints",
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

			queue, err := service.PendingQueue(context.Background(), resourceID, targetDate)
			if err != nil {
				return err
			}

			if outputJSON {
				return printJSON(queue)
			}

			if len(queue) == 0 {
				fmt.Printf("No pending reservations on %s for %s\n", targetDate, resourceID)
				return nil
			}

			writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "ID\tTIME\tTITLE\tREQUESTER\tAPPROVED\tNOTE")
			for _, entry := range queue {
				note := ""
				if entry.FairnessFlag {
					note = "high usage"
				}
				res := entry.Reservation
				fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%d\t%s\n",
					res.ID, formatInterval(res.Interval()), res.Title, res.RequesterName,
					entry.ApprovedCount, note)
			}
			return writer.Flush()
		},
	}

	cmd.Flags().StringVar(&resourceID, "resource", "", "Resource id")
	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD, today, tomorrow)")
	return cmd
}
