// Package notify fans notifications out to the configured channels.
package notify

import (
	"context"

	"github.com/mikey/gmail-finance-ingest/internal/core"
	"go.uber.org/zap"
)

// Channel is one notification backend.
type Channel interface {
	Name() string
	Notify(ctx context.Context, tx *core.Transaction) error
	NotifyBatch(ctx context.Context, count int, accountID string) error
}

// Dispatcher implements core.Notifier over zero or more channels. Delivery is
// best-effort: a failing channel is logged and never fails the caller, so a
// dispatcher with no channels is a valid no-op notifier.
type Dispatcher struct {
	channels []Channel
	logger   *zap.Logger
}

// NewDispatcher creates a dispatcher over the given channels.
func NewDispatcher(channels []Channel, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		channels: channels,
		logger:   logger,
	}
}

// Notify announces a single transaction on every channel.
func (d *Dispatcher) Notify(ctx context.Context, tx *core.Transaction) error {
	for _, ch := range d.channels {
		if err := ch.Notify(ctx, tx); err != nil {
			d.logger.Warn("Notification channel failed",
				zap.String("channel", ch.Name()),
				zap.Error(err))
		}
	}
	return nil
}

// NotifyBatch announces a batch summary on every channel.
func (d *Dispatcher) NotifyBatch(ctx context.Context, count int, accountID string) error {
	for _, ch := range d.channels {
		if err := ch.NotifyBatch(ctx, count, accountID); err != nil {
			d.logger.Warn("Notification channel failed",
				zap.String("channel", ch.Name()),
				zap.Error(err))
		}
	}
	return nil
}
