package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/fivetwenty-io/figma/internal/constants"
	"github.com/fivetwenty-io/figma/pkg/figma"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewFilesCommand creates the files command group
func NewFilesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "files",
		Aliases: []string{"file"},
		Short:   "Inspect Figma files",
		Long:    "Fetch Figma file documents and their version history",
	}

	cmd.AddCommand(newFilesGetCommand())
	cmd.AddCommand(newFilesVersionsCommand())

	return cmd
}

func newFilesGetCommand() *cobra.Command {
	var opts figma.FileOptions

	cmd := &cobra.Command{
		Use:   "get FILE_KEY",
		Short: "Get a file",
		Long:  "Fetch a Figma file document down to the requested depth",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.IDs = splitList(opts.IDs)

			return withClient(cmd, func(ctx context.Context, client figma.Client) error {
				file, err := client.Files().Get(ctx, args[0], &opts)
				if err != nil {
					return fmt.Errorf("failed to get file: %w", err)
				}

				return render(cmd.OutOrStdout(), file, []string{"Property", "Value"}, func(table *tablewriter.Table) {
					_ = table.Append("Name", file.Name)
					_ = table.Append("Version", orNA(file.Version))
					_ = table.Append("Editor", orNA(file.EditorType))
					_ = table.Append("Role", orNA(file.Role))
					_ = table.Append("Last Modified", file.LastModified.Format(timeLayout))
					_ = table.Append("Components", strconv.Itoa(len(file.Components)))
					_ = table.Append("Component Sets", strconv.Itoa(len(file.ComponentSets)))

					if file.Document != nil {
						for _, page := range file.Document.Children {
							_ = table.Append("Page", fmt.Sprintf("%s (%s)", page.Name, page.ID))
						}
					}
				})
			})
		},
	}

	cmd.Flags().IntVar(&opts.Depth, "depth", constants.DefaultFileDepth, "document tree depth")
	cmd.Flags().StringVar(&opts.Version, "version", "", "file version id")
	cmd.Flags().StringSliceVar(&opts.IDs, "ids", nil, "node ids to include")
	cmd.Flags().StringVar(&opts.Geometry, "geometry", "", "set to 'paths' to export vector data")
	cmd.Flags().BoolVar(&opts.Branches, "branches", false, "include branch metadata")

	return cmd
}

func newFilesVersionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "versions FILE_KEY",
		Short: "List file versions",
		Long:  "List the saved version history of a Figma file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client figma.Client) error {
				versions, err := client.Files().ListVersions(ctx, args[0])
				if err != nil {
					return fmt.Errorf("failed to list versions: %w", err)
				}

				headers := []string{"ID", "Label", "Author", "Created"}

				return render(cmd.OutOrStdout(), versions, headers, func(table *tablewriter.Table) {
					for _, version := range versions.Versions {
						_ = table.Append(version.ID, orNA(version.Label), orNA(version.User.Handle), version.CreatedAt.Format(timeLayout))
					}
				})
			})
		},
	}
}
