package core

import "testing"

func TestLedgerFromRows_Empty(t *testing.T) {
	if got := LedgerFromRows(nil).Len(); got != 0 {
		t.Errorf("empty sheet ledger Len() = %d, want 0", got)
	}
}

func TestLedgerFromRows_HeaderOnly(t *testing.T) {
	rows := [][]string{{"Date", "Amount", "Category", "Description", "User ID", "Timestamp"}}
	if got := LedgerFromRows(rows).Len(); got != 0 {
		t.Errorf("header-only sheet ledger Len() = %d, want 0", got)
	}
}

func TestLedgerFromRows_SkipsHeader(t *testing.T) {
	rows := [][]string{
		{"Date", "Amount", "Category", "Description", "User ID", "Timestamp"},
		{"2024-01-05", "-50000", "Transfer", "Transfer to John Doe", "u1", "2024-01-05 10:00:00"},
		{"2024-01-06", "125000", "Gaji", "Salary", "u1", "2024-01-06 09:00:00"},
	}
	ledger := LedgerFromRows(rows)
	if got := ledger.Len(); got != 2 {
		t.Fatalf("ledger Len() = %d, want 2", got)
	}

	tx := Transaction{Date: "2024-01-05", Amount: -50000, Category: "Transfer", Description: "Transfer to John Doe", UserID: "u1"}
	if !ledger.Contains(tx.Fingerprint()) {
		t.Error("ledger should contain the fingerprint of an existing row")
	}

	headerFp := FingerprintFromRow(rows[0])
	if ledger.Contains(headerFp) {
		t.Error("ledger must not contain the header row")
	}
}

func TestLedger_AddContains(t *testing.T) {
	ledger := NewLedger()
	fp := Fingerprint("x")

	if ledger.Contains(fp) {
		t.Error("new ledger should not contain anything")
	}
	ledger.Add(fp)
	if !ledger.Contains(fp) {
		t.Error("ledger should contain an added fingerprint")
	}
	ledger.Add(fp)
	if got := ledger.Len(); got != 1 {
		t.Errorf("re-adding a fingerprint should not grow the ledger, Len() = %d", got)
	}
}
