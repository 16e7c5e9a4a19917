package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"chat-relay/config"
	_ "chat-relay/docs" // Swagger docs
	"chat-relay/internal/httpserver"
	tgDelivery "chat-relay/internal/relay/delivery/telegram"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server; receives updates by webhook or, with telegram.mode=poll, by long polling",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := bootstrap(ctx, configPath(cmd))
			if err != nil {
				return err
			}
			defer a.shutdown()

			var handler tgDelivery.Handler
			if a.cfg.Telegram.Mode == config.TelegramModePoll {
				// Updates come from getUpdates; the server only answers probes.
				poller := tgDelivery.NewPoller(a.logger, a.bot, a.relay, a.cfg.Telegram.PollTimeout, a.cfg.Conversation.UsernameSentinel)
				go func() {
					if err := poller.Run(ctx); err != nil {
						a.logger.Error(ctx, "Polling failed: ", err)
						stop()
					}
				}()
			} else {
				ngrokAPI, _ := cmd.Flags().GetString("ngrok-api")
				if register, _ := cmd.Flags().GetBool("register-webhook"); register {
					a.registerWebhook(ctx, ngrokAPI)
				}
				handler = tgDelivery.New(a.logger, a.relay, tgDelivery.Config{
					Secret:           a.cfg.Telegram.WebhookSecret,
					AllowedIPs:       a.cfg.Webhook.AllowedIPs,
					RateLimitPerMin:  a.cfg.Webhook.RateLimitPerMin,
					UsernameSentinel: a.cfg.Conversation.UsernameSentinel,
				})
			}

			srv, err := httpserver.New(a.logger, httpserver.Config{
				Logger:          a.logger,
				Port:            a.cfg.HTTPServer.Port,
				Mode:            a.cfg.HTTPServer.Mode,
				Environment:     a.cfg.Environment.Name,
				ShutdownTimeout: a.cfg.HTTPServer.ShutdownTimeout,
				TelegramHandler: handler,
				WebhookPath:     a.cfg.Webhook.Path,
				ReadyCheck:      a.readyCheck,
			})
			if err != nil {
				a.logger.Error(ctx, "Failed to initialize HTTP server: ", err)
				return err
			}

			if err := srv.Run(ctx); err != nil {
				a.logger.Error(ctx, "Failed to run server: ", err)
				return err
			}
			a.logger.Info(ctx, "Server stopped gracefully")
			return nil
		},
	}
	cmd.Flags().Bool("register-webhook", true, "Call setWebhook on startup with telegram.webhook_url (or the detected ngrok URL).")
	cmd.Flags().String("ngrok-api", "http://ngrok:4040", "ngrok local API used when telegram.webhook_url is empty; empty disables detection.")
	return cmd
}

// registerWebhook points the bot at this server. Failures are logged; the
// server still starts so a webhook set by other means keeps working.
func (a *app) registerWebhook(ctx context.Context, ngrokAPI string) {
	base := a.cfg.Telegram.WebhookURL
	if base == "" && ngrokAPI != "" {
		ngrokURL, err := detectNgrokURL(ctx, ngrokAPI)
		if err != nil {
			a.logger.Warnf(ctx, "Could not detect ngrok URL: %v", err)
		} else {
			base = ngrokURL
			a.logger.Infof(ctx, "Auto-detected ngrok URL: %s", base)
		}
	}
	if base == "" {
		a.logger.Warn(ctx, "No webhook URL configured, skipping setWebhook")
		return
	}

	url := webhookURL(base, a.cfg.Webhook.Path)
	if err := a.bot.SetWebhook(ctx, url, a.cfg.Telegram.WebhookSecret); err != nil {
		a.logger.Warnf(ctx, "Failed to set Telegram webhook: %v", err)
		return
	}
	a.logger.Infof(ctx, "Telegram webhook registered at %s", url)
}

// webhookURL appends path unless base already ends with it.
func webhookURL(base, path string) string {
	base = strings.TrimRight(base, "/")
	if strings.HasSuffix(base, path) {
		return base
	}
	return base + path
}
