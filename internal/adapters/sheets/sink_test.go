package sheets

import (
	"reflect"
	"testing"
	"time"

	"github.com/mikey/gmail-finance-ingest/internal/core"
)

func TestRecordToRow(t *testing.T) {
	tx := &core.Transaction{
		Date:        "2024-01-15",
		Amount:      -50000,
		Category:    "Belanja",
		Description: "Toko Maju",
		UserID:      "email-processor-wgppra",
		RecordedAt:  time.Date(2024, 1, 15, 10, 30, 45, 0, time.UTC),
	}

	got := recordToRow(tx)
	want := []interface{}{
		"2024-01-15",
		float64(-50000),
		"Belanja",
		"Toko Maju",
		"email-processor-wgppra",
		"2024-01-15 10:30:45",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("recordToRow() = %v, want %v", got, want)
	}
	if len(got) != len(Header) {
		t.Errorf("row width = %d, want the header's %d columns", len(got), len(Header))
	}
}

func TestToStringRows(t *testing.T) {
	values := [][]interface{}{
		{"Date", "Amount", "Category"},
		{"2024-01-15", float64(-50000), "Belanja"},
		{"2024-01-16", "75000", "Gaji"},
	}

	got := toStringRows(values)
	want := [][]string{
		{"Date", "Amount", "Category"},
		{"2024-01-15", "-50000", "Belanja"},
		{"2024-01-16", "75000", "Gaji"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("toStringRows() = %v, want %v", got, want)
	}
}

func TestToStringRows_Empty(t *testing.T) {
	if got := toStringRows(nil); len(got) != 0 {
		t.Errorf("toStringRows(nil) = %v, want empty", got)
	}
}

func TestStringRowsRoundTripFingerprint(t *testing.T) {
	tx := &core.Transaction{
		Date:        "2024-01-15",
		Amount:      -50000,
		Category:    "Belanja",
		Description: "Toko Maju",
		UserID:      "email-processor-wgppra",
		RecordedAt:  time.Now(),
	}

	// A row read back through the string flattening must dedup against the
	// transaction that produced it.
	rows := toStringRows([][]interface{}{recordToRow(tx)})
	if got, want := core.FingerprintFromRow(rows[0]), tx.Fingerprint(); got != want {
		t.Errorf("round-tripped fingerprint = %q, want %q", got, want)
	}
}
