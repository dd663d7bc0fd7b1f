package core

import (
	"testing"
	"time"
)

func TestFingerprint_Deterministic(t *testing.T) {
	tx := Transaction{
		Date:        "2024-01-05",
		Amount:      -50000,
		Category:    "Transfer",
		Description: "Transfer to John Doe",
		UserID:      "email-processor-wgppra",
	}
	other := tx
	other.RecordedAt = time.Now()
	other.AccountID = "different-account"

	if tx.Fingerprint() != other.Fingerprint() {
		t.Errorf("fingerprint should ignore RecordedAt and AccountID: %q != %q",
			tx.Fingerprint(), other.Fingerprint())
	}
}

func TestFingerprint_CaseInsensitive(t *testing.T) {
	a := Transaction{Date: "2024-01-05", Amount: -50000, Category: "Makanan", Description: "Lunch", UserID: "u1"}
	b := Transaction{Date: "2024-01-05", Amount: -50000, Category: "MAKANAN", Description: " lunch ", UserID: "U1"}

	if a.Fingerprint() != b.Fingerprint() {
		t.Errorf("fingerprints should normalize case and spacing: %q != %q",
			a.Fingerprint(), b.Fingerprint())
	}
}

func TestFingerprint_UserIDSensitive(t *testing.T) {
	a := Transaction{Date: "2024-01-05", Amount: -50000, Category: "Transfer", Description: "Rent", UserID: "email-processor-a"}
	b := a
	b.UserID = "email-processor-b"

	if a.Fingerprint() == b.Fingerprint() {
		t.Error("records differing only in processor user id must have distinct fingerprints")
	}
}

func TestFingerprintFromRow_MatchesTransaction(t *testing.T) {
	tx := Transaction{
		Date:        "2024-01-05",
		Amount:      -50000,
		Category:    "Transfer",
		Description: "Transfer to John Doe",
		UserID:      "email-processor-wgppra",
	}

	// The sheet renders the amount without a fixed number of decimals
	row := []string{"2024-01-05", "-50000", "Transfer", "Transfer to John Doe", "email-processor-wgppra", "2024-01-05 10:00:00"}

	if got, want := FingerprintFromRow(row), tx.Fingerprint(); got != want {
		t.Errorf("FingerprintFromRow() = %q, want %q", got, want)
	}
}

func TestFingerprintFromRow_ShortRow(t *testing.T) {
	// Rows shorter than the column set must not panic and must pad
	fp := FingerprintFromRow([]string{"2024-01-05", "100"})
	if fp == "" {
		t.Error("short row should still produce a fingerprint")
	}

	padded := FingerprintFromRow([]string{"2024-01-05", "100", "", "", ""})
	if fp != padded {
		t.Errorf("short row fingerprint %q should equal padded %q", fp, padded)
	}
}

func TestFingerprintFromRow_UnparseableAmount(t *testing.T) {
	a := FingerprintFromRow([]string{"2024-01-05", "Rp 50.000", "x", "y", "z"})
	b := FingerprintFromRow([]string{"2024-01-05", "rp 50.000", "x", "y", "z"})
	if a != b {
		t.Errorf("unparseable amounts should fall back to lowercased text: %q != %q", a, b)
	}
}
