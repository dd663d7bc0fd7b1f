package factory

import (
	"github.com/mikey/gmail-finance-ingest/internal/adapters/smtp"
	"github.com/mikey/gmail-finance-ingest/internal/adapters/telegram"
	"github.com/mikey/gmail-finance-ingest/internal/config"
	"github.com/mikey/gmail-finance-ingest/internal/notify"
	"go.uber.org/zap"
)

// NotifierFactory builds the notification dispatcher from configuration
type NotifierFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewNotifierFactory creates a new notifier factory
func NewNotifierFactory(cfg *config.Config, logger *zap.Logger) *NotifierFactory {
	return &NotifierFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateNotifier assembles the enabled channels into a dispatcher. A channel
// that cannot be constructed is logged and left out rather than failing the
// run; notification is advisory.
func (f *NotifierFactory) CreateNotifier() *notify.Dispatcher {
	var channels []notify.Channel

	if tgCfg := f.cfg.GetTelegram(); tgCfg.Enabled {
		channel, err := telegram.NewChannel(tgCfg.BotToken, tgCfg.ChatIDs, f.logger)
		if err != nil {
			f.logger.Warn("Telegram channel disabled", zap.Error(err))
		} else {
			channels = append(channels, channel)
			f.logger.Info("Telegram notifications enabled",
				zap.Int("chats", len(tgCfg.ChatIDs)))
		}
	}

	if smtpCfg := f.cfg.GetSMTP(); smtpCfg.Enabled {
		channel, err := smtp.NewChannel(
			smtpCfg.Address,
			smtpCfg.From,
			smtpCfg.To,
			smtpCfg.Username,
			smtpCfg.Password,
			f.logger,
		)
		if err != nil {
			f.logger.Warn("SMTP digest channel disabled", zap.Error(err))
		} else {
			channels = append(channels, channel)
			f.logger.Info("SMTP digest notifications enabled",
				zap.Int("recipients", len(smtpCfg.To)))
		}
	}

	return notify.NewDispatcher(channels, f.logger)
}
