package commands

import (
	"context"
	"strconv"

	"github.com/fivetwenty-io/figma/pkg/figma"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewBucketsCommand creates the buckets command
func NewBucketsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "buckets",
		Short: "Show rate limit buckets",
		Long:  "Display the effective token bucket configuration for every rate limit category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withClient(cmd, func(_ context.Context, client figma.Client) error {
				statuses := client.Buckets()

				headers := []string{"Category", "Capacity", "Available", "In Flight", "Refill", "Mode"}

				return render(cmd.OutOrStdout(), statuses, headers, func(table *tablewriter.Table) {
					for _, status := range statuses {
						_ = table.Append(
							titleCategory(status.Category),
							strconv.Itoa(status.Capacity),
							strconv.Itoa(status.Available),
							strconv.Itoa(status.InFlight),
							strconv.Itoa(status.TokensPerPeriod)+"/"+status.Period.String(),
							string(status.Replenishment),
						)
					}
				})
			})
		},
	}
}
