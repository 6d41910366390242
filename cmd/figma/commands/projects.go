package commands

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/figma/pkg/figma"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewProjectsCommand creates the projects command group
func NewProjectsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project"},
		Short:   "Browse team projects",
		Long:    "List the projects of a team and the files inside a project",
	}

	cmd.AddCommand(newProjectsListCommand())
	cmd.AddCommand(newProjectsFilesCommand())

	return cmd
}

func newProjectsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list TEAM_ID",
		Short: "List team projects",
		Long:  "List every project of a team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client figma.Client) error {
				projects, err := client.Projects().ListForTeam(ctx, args[0])
				if err != nil {
					return fmt.Errorf("failed to list projects: %w", err)
				}

				return render(cmd.OutOrStdout(), projects, []string{"ID", "Name"}, func(table *tablewriter.Table) {
					for _, project := range projects.Projects {
						_ = table.Append(project.ID, project.Name)
					}
				})
			})
		},
	}
}

func newProjectsFilesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "files PROJECT_ID",
		Short: "List project files",
		Long:  "List every file in a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client figma.Client) error {
				files, err := client.Projects().ListFiles(ctx, args[0])
				if err != nil {
					return fmt.Errorf("failed to list project files: %w", err)
				}

				return render(cmd.OutOrStdout(), files, []string{"Key", "Name", "Last Modified"}, func(table *tablewriter.Table) {
					for _, file := range files.Files {
						_ = table.Append(file.Key, file.Name, file.LastModified.Format(timeLayout))
					}
				})
			})
		},
	}
}
