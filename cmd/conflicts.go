package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func conflictsCmd() *cobra.Command {
	var resourceID string
	var date string

	cmd := &cobra.Command{
		Use:   "conflicts",
		Short: "Show overlapping reservation groups for a resource on a date",
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

			groups, err := service.Conflicts(context.Background(), resourceID, targetDate)
			if err != nil {
				return err
			}

			if outputJSON {
				return printJSON(groups)
			}

			if len(groups) == 0 {
				fmt.Printf("No conflicts on %s for %s\n", targetDate, resourceID)
				return nil
			}

			writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			for i, group := range groups {
				fmt.Fprintf(writer, "Group %d: %s-%s\n", i+1, formatClock(group.Start), formatClock(group.End))
				for _, res := range group.Members {
					fmt.Fprintf(writer, "  %s\t%s\t%s\t%s\t%s\n",
						res.ID, formatInterval(res.Interval()), res.Title, res.RequesterName, statusLabel(res))
				}
			}
			return writer.Flush()
		},
	}

	cmd.Flags().StringVar(&resourceID, "resource", "", "Resource id")
	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD, today, tomorrow)")
	return cmd
}
