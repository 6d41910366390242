package commands

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/figma/pkg/figma"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewDevResourcesCommand creates the dev-resources command group
func NewDevResourcesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "dev-resources",
		Aliases: []string{"dev-resource", "dr"},
		Short:   "Manage dev resources",
		Long:    "List, create and delete links from file nodes to external resources",
	}

	cmd.AddCommand(newDevResourcesListCommand())
	cmd.AddCommand(newDevResourcesCreateCommand())
	cmd.AddCommand(newDevResourcesDeleteCommand())

	return cmd
}

func newDevResourcesListCommand() *cobra.Command {
	var nodeIDs []string

	cmd := &cobra.Command{
		Use:   "list FILE_KEY",
		Short: "List dev resources",
		Long:  "List the dev resources attached to a file, optionally limited to some nodes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client figma.Client) error {
				resources, err := client.DevResources().List(ctx, args[0], splitList(nodeIDs))
				if err != nil {
					return fmt.Errorf("failed to list dev resources: %w", err)
				}

				return render(cmd.OutOrStdout(), resources.DevResources, []string{"ID", "Node", "Name", "URL"}, func(table *tablewriter.Table) {
					for _, resource := range resources.DevResources {
						_ = table.Append(resource.ID, resource.NodeID, resource.Name, truncate(resource.URL))
					}
				})
			})
		},
	}

	cmd.Flags().StringSliceVar(&nodeIDs, "node-ids", nil, "only list resources on these nodes")

	return cmd
}

func newDevResourcesCreateCommand() *cobra.Command {
	var resource figma.DevResourceCreate

	cmd := &cobra.Command{
		Use:   "create FILE_KEY NODE_ID",
		Short: "Create a dev resource",
		Long:  "Attach a named link to a file node",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			resource.FileKey = args[0]
			resource.NodeID = args[1]

			return withClient(cmd, func(ctx context.Context, client figma.Client) error {
				created, err := client.DevResources().Create(ctx, []figma.DevResourceCreate{resource})
				if err != nil {
					return fmt.Errorf("failed to create dev resource: %w", err)
				}

				return render(cmd.OutOrStdout(), created, []string{"Result", "ID", "Node", "Detail"}, func(table *tablewriter.Table) {
					for _, link := range created.LinksCreated {
						_ = table.Append("created", link.ID, link.NodeID, link.Name)
					}

					for _, failure := range created.Errors {
						_ = table.Append("error", NotAvailable, failure.NodeID, failure.Error)
					}
				})
			})
		},
	}

	cmd.Flags().StringVar(&resource.Name, "name", "", "link name (required)")
	cmd.Flags().StringVar(&resource.URL, "url", "", "link target (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("url")

	return cmd
}

func newDevResourcesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete FILE_KEY DEV_RESOURCE_ID",
		Short: "Delete a dev resource",
		Long:  "Remove a dev resource from a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client figma.Client) error {
				if err := client.DevResources().Delete(ctx, args[0], args[1]); err != nil {
					return fmt.Errorf("failed to delete dev resource: %w", err)
				}

				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted dev resource %s\n", args[1])

				return nil
			})
		},
	}
}
