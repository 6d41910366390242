package commands

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/figma/internal/constants"
	"github.com/fivetwenty-io/figma/pkg/figma"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var webhookHeaders = []string{"ID", "Event", "Team", "Status", "Endpoint", "Description"}

// NewWebhooksCommand creates the webhooks command group
func NewWebhooksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "webhooks",
		Aliases: []string{"webhook", "hooks"},
		Short:   "Manage team webhooks",
		Long:    "List, create, update and delete Figma team webhooks",
	}

	cmd.AddCommand(newWebhooksListCommand())
	cmd.AddCommand(newWebhooksGetCommand())
	cmd.AddCommand(newWebhooksCreateCommand())
	cmd.AddCommand(newWebhooksUpdateCommand())
	cmd.AddCommand(newWebhooksDeleteCommand())

	return cmd
}

func appendWebhooks(table *tablewriter.Table, webhooks ...figma.Webhook) {
	for _, webhook := range webhooks {
		_ = table.Append(
			webhook.ID,
			webhook.EventType,
			webhook.TeamID,
			webhook.Status,
			truncate(webhook.Endpoint),
			orNA(webhook.Description),
		)
	}
}

func newWebhooksListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list TEAM_ID",
		Short: "List team webhooks",
		Long:  "List every webhook registered for a team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client figma.Client) error {
				webhooks, err := client.Webhooks().ListForTeam(ctx, args[0])
				if err != nil {
					return fmt.Errorf("failed to list webhooks: %w", err)
				}

				if len(webhooks) == 0 && outputFormat() == constants.FormatTable {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "No webhooks found for team %s\n", args[0])

					return nil
				}

				return render(cmd.OutOrStdout(), webhooks, webhookHeaders, func(table *tablewriter.Table) {
					appendWebhooks(table, webhooks...)
				})
			})
		},
	}
}

func newWebhooksGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get WEBHOOK_ID",
		Short: "Get webhook details",
		Long:  "Display a single webhook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client figma.Client) error {
				webhook, err := client.Webhooks().Get(ctx, args[0])
				if err != nil {
					return fmt.Errorf("failed to get webhook: %w", err)
				}

				return render(cmd.OutOrStdout(), webhook, webhookHeaders, func(table *tablewriter.Table) {
					appendWebhooks(table, *webhook)
				})
			})
		},
	}
}

func newWebhooksCreateCommand() *cobra.Command {
	var request figma.WebhookCreateRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a webhook",
		Long:  "Register a webhook that receives the given event type for a team",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case request.EventType == "":
				return constants.ErrEventsRequired
			case request.Endpoint == "":
				return constants.ErrEndpointRequired
			case request.Passcode == "":
				return constants.ErrPasscodeRequired
			}

			return withClient(cmd, func(ctx context.Context, client figma.Client) error {
				webhook, err := client.Webhooks().Create(ctx, &request)
				if err != nil {
					return fmt.Errorf("failed to create webhook: %w", err)
				}

				return render(cmd.OutOrStdout(), webhook, webhookHeaders, func(table *tablewriter.Table) {
					appendWebhooks(table, *webhook)
				})
			})
		},
	}

	cmd.Flags().StringVar(&request.TeamID, "team", "", "team id")
	cmd.Flags().StringVar(&request.EventType, "event", "", "event type, e.g. FILE_UPDATE")
	cmd.Flags().StringVar(&request.Endpoint, "endpoint", "", "URL receiving the webhook payloads")
	cmd.Flags().StringVar(&request.Passcode, "passcode", "", "passcode echoed back in every payload")
	cmd.Flags().StringVar(&request.Status, "status", figma.WebhookStatusActive, "ACTIVE or PAUSED")
	cmd.Flags().StringVar(&request.Description, "description", "", "webhook description")

	return cmd
}

func newWebhooksUpdateCommand() *cobra.Command {
	var request figma.WebhookUpdateRequest

	cmd := &cobra.Command{
		Use:   "update WEBHOOK_ID",
		Short: "Update a webhook",
		Long:  "Change the event, endpoint, passcode, status or description of a webhook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client figma.Client) error {
				webhook, err := client.Webhooks().Update(ctx, args[0], &request)
				if err != nil {
					return fmt.Errorf("failed to update webhook: %w", err)
				}

				return render(cmd.OutOrStdout(), webhook, webhookHeaders, func(table *tablewriter.Table) {
					appendWebhooks(table, *webhook)
				})
			})
		},
	}

	cmd.Flags().StringVar(&request.EventType, "event", "", "new event type")
	cmd.Flags().StringVar(&request.Endpoint, "endpoint", "", "new endpoint")
	cmd.Flags().StringVar(&request.Passcode, "passcode", "", "new passcode")
	cmd.Flags().StringVar(&request.Status, "status", "", "ACTIVE or PAUSED")
	cmd.Flags().StringVar(&request.Description, "description", "", "new description")

	return cmd
}

func newWebhooksDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete WEBHOOK_ID",
		Short: "Delete a webhook",
		Long:  "Delete a webhook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client figma.Client) error {
				if err := client.Webhooks().Delete(ctx, args[0]); err != nil {
					return fmt.Errorf("failed to delete webhook: %w", err)
				}

				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted webhook %s\n", args[0])

				return nil
			})
		},
	}
}
