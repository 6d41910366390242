package commands

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/figma/pkg/figma"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewCommentsCommand creates the comments command group
func NewCommentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "comments",
		Aliases: []string{"comment"},
		Short:   "Manage file comments",
		Long:    "List comments left on Figma files",
	}

	cmd.AddCommand(newCommentsListCommand())

	return cmd
}

func newCommentsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list FILE_KEY",
		Short: "List comments on a file",
		Long:  "List every comment on a Figma file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client figma.Client) error {
				comments, err := client.Comments().List(ctx, args[0])
				if err != nil {
					return fmt.Errorf("failed to list comments: %w", err)
				}

				headers := []string{"ID", "Author", "Created", "Resolved", "Message"}

				return render(cmd.OutOrStdout(), comments, headers, func(table *tablewriter.Table) {
					for _, comment := range comments.Comments {
						resolved := "no"
						if comment.ResolvedAt != nil {
							resolved = comment.ResolvedAt.Format(timeLayout)
						}

						_ = table.Append(
							comment.ID,
							orNA(comment.User.Handle),
							comment.CreatedAt.Format(timeLayout),
							resolved,
							truncate(comment.Message),
						)
					}
				})
			})
		},
	}
}
