package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Options carries the pipeline settings that are fixed for a run
type Options struct {
	// BaseQuery is the configured mail search query; the unread and recency
	// filters are appended if the query does not already carry them
	BaseQuery string

	// LookbackDays bounds the recency filter (newer_than)
	LookbackDays int

	// BatchThreshold is the number of transactions above which a single
	// summary notification replaces individual ones
	BatchThreshold int

	// ProcessorUserID is recorded in every row; when empty a per-account
	// default of the form "email-processor-<account>" is used
	ProcessorUserID string
}

// IngestService is the core ingestion pipeline: pull candidate messages per
// account, extract transactions, dedup against the ledger, append rows, mark
// messages processed and notify.
type IngestService struct {
	extractor Extractor
	sink      SheetSink
	notifier  Notifier
	logger    *zap.Logger
	opts      Options
}

// NewIngestService creates a new ingestion service
func NewIngestService(
	extractor Extractor,
	sink SheetSink,
	notifier Notifier,
	logger *zap.Logger,
	opts Options,
) *IngestService {
	if opts.LookbackDays <= 0 {
		opts.LookbackDays = 1
	}
	if opts.BatchThreshold <= 0 {
		opts.BatchThreshold = 5
	}
	return &IngestService{
		extractor: extractor,
		sink:      sink,
		notifier:  notifier,
		logger:    logger,
		opts:      opts,
	}
}

// Run executes one sequential ingestion pass over the resolved accounts. The
// ledger snapshot is read once, before any account is processed, and shared
// across all of them. A failure reading the snapshot is fatal to the run
// because dedup cannot be guaranteed without it; per-account and per-message
// failures are isolated.
func (s *IngestService) Run(ctx context.Context, sources []AccountSource) (*RunReport, error) {
	runID := uuid.NewString()
	logger := s.logger.With(zap.String("run_id", runID))

	rows, err := s.sink.ReadAllRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read existing sheet rows: %w", err)
	}
	ledger := LedgerFromRows(rows)
	logger.Info("Built ledger snapshot",
		zap.Int("existing_entries", ledger.Len()),
		zap.Int("accounts", len(sources)))

	query := s.buildQuery()
	report := &RunReport{RunID: runID}

	for _, src := range sources {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}
		stats := s.processAccount(ctx, logger, src, ledger, query)
		report.Accounts = append(report.Accounts, stats)
	}

	logger.Info("Ingestion run complete",
		zap.Int("appended", report.TotalAppended()))
	return report, nil
}

// processAccount runs the pipeline for a single account. Message failures are
// isolated: a bad message is left unread and unlabeled so the next run
// retries it, and processing continues with the rest.
func (s *IngestService) processAccount(
	ctx context.Context,
	logger *zap.Logger,
	src AccountSource,
	ledger *Ledger,
	query string,
) AccountStats {
	stats := AccountStats{AccountID: src.AccountID}
	alog := logger.With(zap.String("account", src.AccountID))

	messages, err := src.Source.Search(ctx, query)
	if err != nil {
		alog.Error("Failed to search mailbox", zap.Error(err))
		stats.Failed++
		return stats
	}
	stats.Candidates = len(messages)
	if len(messages) == 0 {
		alog.Info("No candidate messages")
		return stats
	}

	userID := s.opts.ProcessorUserID
	if userID == "" {
		userID = "email-processor-" + src.AccountID
	}

	var recorded []*Transaction
	for _, msg := range messages {
		mlog := alog.With(zap.String("message_id", msg.ID))

		if strings.TrimSpace(msg.Body) == "" {
			mlog.Debug("Empty message body, skipping")
			stats.Skipped++
			continue
		}

		tx, err := s.extractor.Extract(ctx, msg.Body)
		if err != nil {
			if errors.Is(err, ErrNoTransaction) {
				mlog.Debug("No transaction in message, skipping")
			} else {
				mlog.Warn("Extraction failed, will retry next run", zap.Error(err))
			}
			stats.Skipped++
			continue
		}

		tx.AccountID = src.AccountID
		tx.UserID = userID
		tx.RecordedAt = time.Now()

		fp := tx.Fingerprint()
		if ledger.Contains(fp) {
			mlog.Info("Duplicate transaction, marking processed without append",
				zap.String("date", tx.Date),
				zap.String("description", tx.Description))
			if err := src.Source.MarkProcessed(ctx, msg.ID); err != nil {
				mlog.Warn("Failed to mark duplicate processed", zap.Error(err))
			}
			stats.Duplicates++
			continue
		}

		// Append before marking: if the append fails the message stays
		// unread and is retried next run. If the mark fails after a
		// successful append, the row is durable and the next run's ledger
		// suppresses the re-extracted duplicate.
		if err := s.sink.Append(ctx, tx); err != nil {
			mlog.Error("Failed to append row, leaving message unprocessed", zap.Error(err))
			stats.Failed++
			continue
		}
		ledger.Add(fp)

		if err := src.Source.MarkProcessed(ctx, msg.ID); err != nil {
			mlog.Warn("Row appended but mark-processed failed", zap.Error(err))
		}

		recorded = append(recorded, tx)
		stats.Appended++
		mlog.Info("Recorded transaction",
			zap.String("date", tx.Date),
			zap.Float64("amount", tx.Amount),
			zap.String("category", tx.Category))
	}

	s.flushNotifications(ctx, alog, src.AccountID, recorded)

	alog.Info("Account processed",
		zap.Int("candidates", stats.Candidates),
		zap.Int("appended", stats.Appended),
		zap.Int("duplicates", stats.Duplicates),
		zap.Int("skipped", stats.Skipped),
		zap.Int("failed", stats.Failed))
	return stats
}

// flushNotifications delivers the pending notifications for an account.
// Delivery is advisory: failures are logged and never unwind the already
// committed append or mark-processed steps.
func (s *IngestService) flushNotifications(
	ctx context.Context,
	logger *zap.Logger,
	accountID string,
	recorded []*Transaction,
) {
	if len(recorded) == 0 {
		return
	}

	if len(recorded) > s.opts.BatchThreshold {
		if err := s.notifier.NotifyBatch(ctx, len(recorded), accountID); err != nil {
			logger.Warn("Failed to send batch notification", zap.Error(err))
		}
		return
	}

	for _, tx := range recorded {
		if err := s.notifier.Notify(ctx, tx); err != nil {
			logger.Warn("Failed to send notification", zap.Error(err))
		}
	}
}

// buildQuery combines the configured base query with the unread and recency
// filters unless the base query already pins them.
func (s *IngestService) buildQuery() string {
	parts := []string{strings.TrimSpace(s.opts.BaseQuery)}
	if !strings.Contains(s.opts.BaseQuery, "is:unread") {
		parts = append(parts, "is:unread")
	}
	if !strings.Contains(s.opts.BaseQuery, "newer_than:") {
		parts = append(parts, fmt.Sprintf("newer_than:%dd", s.opts.LookbackDays))
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}
