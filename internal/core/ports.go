package core

import (
	"context"
)

// MailSource defines the interface for retrieving and marking candidate
// messages for one account
type MailSource interface {
	// Search returns the messages matching the query, bodies decoded
	Search(ctx context.Context, query string) ([]Message, error)

	// MarkProcessed marks a message read and applies the processed label.
	// It is a single logical transition even though the provider exposes
	// the two operations separately.
	MarkProcessed(ctx context.Context, messageID string) error
}

// Extractor defines the interface for turning raw email text into a
// transaction record. Implementations return ErrNoTransaction when the text
// has no usable fields.
type Extractor interface {
	Extract(ctx context.Context, text string) (*Transaction, error)
}

// SheetSink defines the interface for the append-only spreadsheet writer
type SheetSink interface {
	// ReadAllRows returns all existing rows, including any header row
	ReadAllRows(ctx context.Context) ([][]string, error)

	// Append appends a single transaction row; all-or-nothing
	Append(ctx context.Context, tx *Transaction) error
}

// Notifier defines the interface for best-effort notification delivery.
// Errors are advisory; callers log them and move on.
type Notifier interface {
	// Notify announces a single recorded transaction
	Notify(ctx context.Context, tx *Transaction) error

	// NotifyBatch announces a batch of recorded transactions for an account
	NotifyBatch(ctx context.Context, count int, accountID string) error
}

// AccountSource binds a resolved account to its mail source.
type AccountSource struct {
	AccountID string
	Source    MailSource
}
