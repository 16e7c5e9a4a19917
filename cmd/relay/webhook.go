package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newWebhookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webhook",
		Short: "Manage the Bot API webhook registration",
	}

	set := &cobra.Command{
		Use:   "set [url]",
		Short: "Register the webhook (defaults to telegram.webhook_url + webhook.path)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(configPath(cmd))
			if err != nil {
				return err
			}
			ctx := context.Background()

			base := cfg.Telegram.WebhookURL
			if len(args) == 1 {
				base = args[0]
			}
			if base == "" {
				return fmt.Errorf("no webhook URL: pass one or set telegram.webhook_url")
			}

			url := webhookURL(base, cfg.Webhook.Path)
			if err := newBot(cfg).SetWebhook(ctx, url, cfg.Telegram.WebhookSecret); err != nil {
				return err
			}
			logger.Infof(ctx, "Telegram webhook registered at %s", url)
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete",
		Short: "Remove the webhook so long polling can be used",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(configPath(cmd))
			if err != nil {
				return err
			}
			ctx := context.Background()

			drop, _ := cmd.Flags().GetBool("drop-pending")
			if err := newBot(cfg).DeleteWebhook(ctx, drop); err != nil {
				return err
			}
			logger.Info(ctx, "Telegram webhook removed")
			return nil
		},
	}
	del.Flags().Bool("drop-pending", false, "Drop updates queued while no receiver was registered.")

	cmd.AddCommand(set, del)
	return cmd
}
