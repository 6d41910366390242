package commands

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/figma/pkg/figma"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewComponentsCommand creates the components command group
func NewComponentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "components",
		Aliases: []string{"component"},
		Short:   "Inspect published components",
		Long:    "Fetch published components and component sets",
	}

	cmd.AddCommand(newComponentsGetCommand())
	cmd.AddCommand(newComponentsListCommand())
	cmd.AddCommand(newComponentsSetsCommand())

	return cmd
}

var componentHeaders = []string{"Key", "Name", "Node", "Description"}

func appendComponents(table *tablewriter.Table, components []figma.Component) {
	for _, component := range components {
		_ = table.Append(component.Key, component.Name, orNA(component.NodeID), truncate(component.Description))
	}
}

func newComponentsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get COMPONENT_KEY",
		Short: "Get a component",
		Long:  "Display metadata for a published component",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client figma.Client) error {
				component, err := client.Components().Get(ctx, args[0])
				if err != nil {
					return fmt.Errorf("failed to get component: %w", err)
				}

				return render(cmd.OutOrStdout(), component.Meta, componentHeaders, func(table *tablewriter.Table) {
					appendComponents(table, []figma.Component{component.Meta})
				})
			})
		},
	}
}

func newComponentsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list FILE_KEY",
		Short: "List components in a file",
		Long:  "List the published components of a library file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client figma.Client) error {
				components, err := client.Components().ListForFile(ctx, args[0])
				if err != nil {
					return fmt.Errorf("failed to list components: %w", err)
				}

				return render(cmd.OutOrStdout(), components.Meta.Components, componentHeaders, func(table *tablewriter.Table) {
					appendComponents(table, components.Meta.Components)
				})
			})
		},
	}
}

func newComponentsSetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sets FILE_KEY",
		Short: "List component sets in a file",
		Long:  "List the published component sets of a library file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client figma.Client) error {
				sets, err := client.Components().ListSetsForFile(ctx, args[0])
				if err != nil {
					return fmt.Errorf("failed to list component sets: %w", err)
				}

				return render(cmd.OutOrStdout(), sets.Meta.ComponentSets, componentHeaders, func(table *tablewriter.Table) {
					appendComponents(table, sets.Meta.ComponentSets)
				})
			})
		},
	}
}
