package core

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// ErrNoTransaction is returned by an Extractor when the message text does not
// describe a usable financial transaction.
var ErrNoTransaction = errors.New("no transaction found in message")

// TransactionTypeIncome and TransactionTypeExpense are the two recognized
// transaction types.
const (
	TransactionTypeIncome  = "income"
	TransactionTypeExpense = "expense"
)

// Message is a candidate email pulled from a mail source. It is read-only to
// the pipeline apart from the mark-processed transition keyed on ID.
type Message struct {
	ID        string
	AccountID string
	From      string
	Subject   string
	Body      string
	Date      time.Time
}

// Transaction is the structured record extracted from a message. Amount is
// negative for expenses and positive for income.
type Transaction struct {
	Date        string // YYYY-MM-DD
	Amount      float64
	Category    string
	Description string
	Type        string
	AccountID   string
	UserID      string
	RecordedAt  time.Time
}

// Fingerprint is a deterministic key identifying a transaction for dedup.
type Fingerprint string

const fingerprintSep = "\x1f"

// Fingerprint derives the dedup key for a transaction. The key is a composite
// of date, amount, category, description and the processor user id, so the
// same transfer seen through two different accounts stays distinct.
func (t *Transaction) Fingerprint() Fingerprint {
	return fingerprintOf(
		t.Date,
		canonicalAmount(t.Amount),
		t.Category,
		t.Description,
		t.UserID,
	)
}

// FingerprintFromRow derives the dedup key for an existing sheet row laid out
// as [date, amount, category, description, user id, timestamp]. Short rows
// are padded with empty fields.
func FingerprintFromRow(row []string) Fingerprint {
	padded := make([]string, 5)
	copy(padded, row)

	amount := padded[1]
	if f, err := strconv.ParseFloat(strings.TrimSpace(amount), 64); err == nil {
		amount = canonicalAmount(f)
	}

	return fingerprintOf(padded[0], amount, padded[2], padded[3], padded[4])
}

func fingerprintOf(fields ...string) Fingerprint {
	normalized := make([]string, len(fields))
	for i, f := range fields {
		normalized[i] = strings.ToLower(strings.TrimSpace(f))
	}
	return Fingerprint(strings.Join(normalized, fingerprintSep))
}

// canonicalAmount renders an amount in a fixed form so that values appended
// to the sheet and values read back compare equal.
func canonicalAmount(a float64) string {
	return strconv.FormatFloat(a, 'f', 2, 64)
}

// AccountStats summarizes one account's pass through the pipeline.
type AccountStats struct {
	AccountID  string
	Candidates int
	Appended   int
	Duplicates int
	Skipped    int
	Failed     int
}

// RunReport summarizes a full ingestion run.
type RunReport struct {
	RunID    string
	Accounts []AccountStats
}

// TotalAppended returns the number of rows appended across all accounts.
func (r *RunReport) TotalAppended() int {
	total := 0
	for _, s := range r.Accounts {
		total += s.Appended
	}
	return total
}
