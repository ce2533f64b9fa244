package telegram

import (
	"context"
	"strconv"
	"time"

	"calorie-coach-bot/internal/common/logger"
	"calorie-coach-bot/internal/features/chat"
)

// Handler consumes one inbound text event.
type Handler func(ctx context.Context, ev Inbound)

// Inbound aliases the chat event type so callers wire the poller
// without importing both packages.
type Inbound = chat.Inbound

// Poller drives the getUpdates long-poll loop and hands each inbound
// text message to the handler in its own goroutine. Serialization per
// user is the dispatcher's job, not the poller's.
type Poller struct {
	client     *Client
	timeoutSec int
	handler    Handler
}

func NewPoller(client *Client, timeoutSec int, handler Handler) *Poller {
	return &Poller{
		client:     client,
		timeoutSec: timeoutSec,
		handler:    handler,
	}
}

// Run blocks until ctx is canceled.
func (p *Poller) Run(ctx context.Context) {
	logger.Info().Msg("Starting Telegram update poller")

	var offset int64
	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("Stopping Telegram update poller")
			return
		default:
			updates, err := p.client.GetUpdates(ctx, offset, p.timeoutSec)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				logger.Error().Err(err).Msg("Failed to fetch updates")
				time.Sleep(time.Second) // backoff on error
				continue
			}

			for _, update := range updates {
				if update.UpdateID >= offset {
					offset = update.UpdateID + 1
				}

				ev, ok := toInbound(update)
				if !ok {
					continue
				}
				go p.handler(ctx, ev)
			}
		}
	}
}

func toInbound(update Update) (Inbound, bool) {
	msg := update.Message
	if msg == nil || msg.Text == "" || msg.From == nil || msg.From.IsBot {
		return Inbound{}, false
	}

	displayName := msg.From.FirstName
	if displayName == "" {
		displayName = msg.From.Username
	}

	return Inbound{
		SenderID:    msg.From.ID,
		DisplayName: displayName,
		Text:        msg.Text,
		ChatID:      msg.Chat.ID,
		MessageRef:  strconv.FormatInt(msg.MessageID, 10),
	}, true
}
