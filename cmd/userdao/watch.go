package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"

	"github.com/exparity/userdao/internal/config"
	"github.com/exparity/userdao/internal/events"
	"github.com/exparity/userdao/internal/ui"
)

var watchCmd = &cobra.Command{
	Use:     "watch",
	Short:   "Print user-saved events as they are published",
	GroupID: "verify",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if cfg.NATSURL == "" {
			return fmt.Errorf("nats_url is not configured (set it in the config file or USERDAO_NATS_URL)")
		}

		sub, err := events.NewNATSSubscriber(cfg.NATSURL,
			nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
				logger.Warn("nats disconnected", "err", err)
			}),
			nats.ReconnectHandler(func(_ *nats.Conn) {
				logger.Info("nats reconnected")
			}),
		)
		if err != nil {
			return err
		}
		defer sub.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return watchEvents(ctx, sub, cmd.OutOrStdout())
	},
}

// watchEvents prints every event received until ctx is done.
func watchEvents(ctx context.Context, sub events.Subscriber, w io.Writer) error {
	ch, err := sub.Subscribe(ctx, events.TopicAll)
	if err != nil {
		return err
	}
	for data := range ch {
		line, err := formatEvent(data)
		if err != nil {
			logger.Warn("skipping malformed event", "err", err)
			continue
		}
		fmt.Fprintln(w, line)
	}
	return nil
}

func formatEvent(data []byte) (string, error) {
	var evt events.UserSaved
	if err := json.Unmarshal(data, &evt); err != nil {
		return "", fmt.Errorf("decode event: %w", err)
	}
	if evt.User == nil {
		return "", fmt.Errorf("event %s has no user", evt.Op)
	}
	return fmt.Sprintf("%s %s user %d %s (%s %s, %d comments)",
		ui.RenderMuted(evt.Op),
		ui.RenderAccent("saved"),
		evt.User.ID,
		evt.User.Username,
		evt.User.FirstName,
		evt.User.Surname,
		len(evt.User.Comments),
	), nil
}
