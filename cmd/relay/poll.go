package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	tgDelivery "chat-relay/internal/relay/delivery/telegram"
)

func newPollCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "poll",
		Short: "Receive updates with getUpdates long polling instead of a webhook",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := bootstrap(ctx, configPath(cmd))
			if err != nil {
				return err
			}
			defer a.shutdown()

			poller := tgDelivery.NewPoller(a.logger, a.bot, a.relay, a.cfg.Telegram.PollTimeout, a.cfg.Conversation.UsernameSentinel)
			if err := poller.Run(ctx); err != nil {
				a.logger.Error(ctx, "Polling failed: ", err)
				return err
			}
			a.logger.Info(ctx, "Polling stopped")
			return nil
		},
	}
}
