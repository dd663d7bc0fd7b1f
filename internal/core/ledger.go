package core

// Ledger is the in-memory set of transaction fingerprints already present in
// the sheet. It is built once per run from the sheet's rows and mutated only
// as the pipeline appends new rows, so duplicates within a run are caught
// across accounts.
type Ledger struct {
	fps map[Fingerprint]struct{}
}

// NewLedger creates an empty ledger
func NewLedger() *Ledger {
	return &Ledger{fps: make(map[Fingerprint]struct{})}
}

// LedgerFromRows builds a ledger from the sheet's current rows. The first row
// is the header and is skipped; an empty or header-only sheet yields an empty
// ledger.
func LedgerFromRows(rows [][]string) *Ledger {
	ledger := NewLedger()
	if len(rows) <= 1 {
		return ledger
	}
	for _, row := range rows[1:] {
		ledger.Add(FingerprintFromRow(row))
	}
	return ledger
}

// Contains reports whether the fingerprint is already recorded
func (l *Ledger) Contains(fp Fingerprint) bool {
	_, ok := l.fps[fp]
	return ok
}

// Add records a fingerprint
func (l *Ledger) Add(fp Fingerprint) {
	l.fps[fp] = struct{}{}
}

// Len returns the number of recorded fingerprints
func (l *Ledger) Len() int {
	return len(l.fps)
}
