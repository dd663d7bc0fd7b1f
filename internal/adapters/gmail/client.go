// Package gmail implements the core.MailSource port over the Gmail API.
package gmail

import (
	"context"
	"fmt"

	"github.com/mikey/gmail-finance-ingest/internal/accounts"
	"github.com/mikey/gmail-finance-ingest/internal/core"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

const userID = "me"

// Source is a per-account Gmail mail source.
type Source struct {
	accountID   string
	service     *gmailapi.Service
	tokenSource oauth2.TokenSource
	labelName   string
	labelID     string
	logger      *zap.Logger
}

// NewSource builds a mail source for one account. A stored token is used when
// present; otherwise the interactive loopback flow runs if permitted, and the
// resulting token is persisted for the next run. With interactive disabled
// and no stored token the account fails here, independently of the others.
func NewSource(
	ctx context.Context,
	accountID string,
	store *accounts.FileTokenStore,
	labelName string,
	interactive bool,
	logger *zap.Logger,
) (*Source, error) {
	if err := EnsureCredentials(); err != nil {
		return nil, err
	}

	token, err := store.Load(accountID)
	if err != nil {
		if !interactive {
			return nil, fmt.Errorf("no stored token for account %q and interactive auth is disabled: %w", accountID, err)
		}
		token, err = authenticate(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to authenticate account %q: %w", accountID, err)
		}
		if err := store.Save(accountID, token); err != nil {
			return nil, fmt.Errorf("failed to save token for account %q: %w", accountID, err)
		}
	}

	ts := oauthConfig.TokenSource(ctx, token)
	service, err := gmailapi.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service for account %q: %w", accountID, err)
	}

	return &Source{
		accountID:   accountID,
		service:     service,
		tokenSource: ts,
		labelName:   labelName,
		logger:      logger.With(zap.String("account", accountID)),
	}, nil
}

// AccountID returns the account this source is bound to.
func (s *Source) AccountID() string {
	return s.accountID
}

// TokenSource exposes the account's token source so other Google services
// (the sheet sink) can share the credentials.
func (s *Source) TokenSource() oauth2.TokenSource {
	return s.tokenSource
}

// Search returns the messages matching the query, fetched in full and mapped
// with decoded bodies. The result is materialized once; it is not a live
// view of the mailbox.
func (s *Source) Search(ctx context.Context, query string) ([]core.Message, error) {
	resp, err := s.service.Users.Messages.List(userID).Q(query).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list gmail messages: %w", err)
	}

	messages := make([]core.Message, 0, len(resp.Messages))
	for _, m := range resp.Messages {
		msg, err := s.service.Users.Messages.Get(userID, m.Id).
			Format("full").Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("failed to get gmail message %s: %w", m.Id, err)
		}
		messages = append(messages, mapMessage(msg, s.accountID))
	}

	s.logger.Debug("Retrieved candidate messages",
		zap.String("query", query),
		zap.Int("count", len(messages)))
	return messages, nil
}

// MarkProcessed marks a message read and applies the processed label in one
// modify call.
func (s *Source) MarkProcessed(ctx context.Context, messageID string) error {
	labelID, err := s.ensureLabel(ctx)
	if err != nil {
		return err
	}

	_, err = s.service.Users.Messages.Modify(userID, messageID, &gmailapi.ModifyMessageRequest{
		AddLabelIds:    []string{labelID},
		RemoveLabelIds: []string{"UNREAD"},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to mark gmail message %s processed: %w", messageID, err)
	}
	return nil
}

// ensureLabel resolves the processed label's id, creating the label on first
// use. The id is cached for the lifetime of the source.
func (s *Source) ensureLabel(ctx context.Context) (string, error) {
	if s.labelID != "" {
		return s.labelID, nil
	}

	resp, err := s.service.Users.Labels.List(userID).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to list gmail labels: %w", err)
	}
	for _, l := range resp.Labels {
		if l.Name == s.labelName {
			s.labelID = l.Id
			return s.labelID, nil
		}
	}

	created, err := s.service.Users.Labels.Create(userID, &gmailapi.Label{
		Name:                  s.labelName,
		LabelListVisibility:   "labelShow",
		MessageListVisibility: "show",
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create gmail label %q: %w", s.labelName, err)
	}

	s.logger.Info("Created processed label", zap.String("label", s.labelName))
	s.labelID = created.Id
	return s.labelID, nil
}
