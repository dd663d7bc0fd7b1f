package factory

import (
	"context"
	"fmt"

	"github.com/mikey/gmail-finance-ingest/internal/accounts"
	"github.com/mikey/gmail-finance-ingest/internal/adapters/gmail"
	"github.com/mikey/gmail-finance-ingest/internal/config"
	"github.com/mikey/gmail-finance-ingest/internal/core"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// SourceSet holds the per-account mail sources resolved for a run, plus the
// token source the sheet sink shares with the first account.
type SourceSet struct {
	Sources         []core.AccountSource
	SinkTokenSource oauth2.TokenSource
}

// SourceFactory builds Gmail mail sources for the configured accounts
type SourceFactory struct {
	cfg    *config.Config
	store  *accounts.FileTokenStore
	logger *zap.Logger
}

// NewSourceFactory creates a new source factory
func NewSourceFactory(cfg *config.Config, store *accounts.FileTokenStore, logger *zap.Logger) *SourceFactory {
	return &SourceFactory{
		cfg:    cfg,
		store:  store,
		logger: logger,
	}
}

// CreateSources resolves the configured accounts and builds one mail source
// per account. An account that fails to authenticate is logged and skipped;
// the run proceeds with the rest. An error is returned only when no account
// could be resolved at all.
func (f *SourceFactory) CreateSources(ctx context.Context) (*SourceSet, error) {
	gmailCfg := f.cfg.GetGmail()
	gmail.SetCredentials(gmailCfg.ClientID, gmailCfg.ClientSecret)

	resolved := accounts.Resolve(gmailCfg.Accounts)

	set := &SourceSet{}
	for _, account := range resolved {
		source, err := gmail.NewSource(
			ctx,
			account.ID,
			f.store,
			gmailCfg.ProcessedLabel,
			gmailCfg.Interactive,
			f.logger,
		)
		if err != nil {
			f.logger.Error("Skipping account, credentials unavailable",
				zap.String("account", account.ID),
				zap.Error(err))
			continue
		}
		if set.SinkTokenSource == nil {
			set.SinkTokenSource = source.TokenSource()
		}
		set.Sources = append(set.Sources, core.AccountSource{
			AccountID: account.ID,
			Source:    source,
		})
	}

	if len(set.Sources) == 0 {
		return nil, fmt.Errorf("no account could be resolved out of %d configured; nothing to process", len(resolved))
	}
	return set, nil
}
