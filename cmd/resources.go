package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Nader-Awad/COMP4050BAMBrazil/booking"
	"github.com/Nader-Awad/COMP4050BAMBrazil/storage"
)

func resourcesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resources",
		Short: "Manage the resource registry",
	}

	cmd.AddCommand(resourcesListCmd())
	cmd.AddCommand(resourcesAddCmd())
	cmd.AddCommand(resourcesSetStatusCmd())
	return cmd
}

func resourcesListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List known resources",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := storage.LoadResources()
			if err != nil {
				return err
			}

			resources := registry.All()
			if outputJSON {
				return printJSON(resources)
			}

			if len(resources) == 0 {
				fmt.Println("No resources registered")
				return nil
			}

			writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "ID\tNAME\tSTATUS")
			for _, resource := range resources {
				fmt.Fprintf(writer, "%s\t%s\t%s\n", resource.ID, resource.Name, resource.Status)
			}
			return writer.Flush()
		},
	}
	return cmd
}

func resourcesAddCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "add <resource-id>",
		Short: "Register a resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := storage.LoadResources()
			if err != nil {
				return err
			}

			if name == "" {
				name = args[0]
			}
			registry.Upsert(booking.Resource{
				ID:     args[0],
				Name:   name,
				Status: booking.ResourceAvailable,
			})

			if err := storage.SaveResources(registry); err != nil {
				return err
			}
			fmt.Printf("Registered resource %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	return cmd
}

func resourcesSetStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-status <resource-id> <status>",
		Short: "Set a resource's operational status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status := booking.ResourceStatus(args[1])
			switch status {
			case booking.ResourceAvailable, booking.ResourceInUse,
				booking.ResourceMaintenance, booking.ResourceOffline:
			default:
				return fmt.Errorf("invalid status %q (Available, InUse, Maintenance, Offline)", args[1])
			}

			registry, err := storage.LoadResources()
			if err != nil {
				return err
			}

			resource, ok := registry.Lookup(args[0])
			if !ok {
				return fmt.Errorf("unknown resource %q", args[0])
			}
			resource.Status = status
			registry.Upsert(resource)

			if err := storage.SaveResources(registry); err != nil {
				return err
			}
			fmt.Printf("Resource %s is now %s\n", resource.ID, status)
			return nil
		},
	}
	return cmd
}
