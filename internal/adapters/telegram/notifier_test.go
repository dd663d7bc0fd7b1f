package telegram

import (
	"strings"
	"testing"
	"time"

	"github.com/mikey/gmail-finance-ingest/internal/core"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{50000, "Rp 50,000"},
		{-50000, "-Rp 50,000"},
		{5000000, "Rp 5,000,000"},
		{-1234567, "-Rp 1,234,567"},
		{0, "Rp 0"},
		{500, "Rp 500"},
	}

	for _, tt := range tests {
		if got := formatAmount(tt.amount); got != tt.want {
			t.Errorf("formatAmount(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestDisplayDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-01-15", "15/01/2024"},
		{"2024-12-01", "01/12/2024"},
		{"not-a-date", "not-a-date"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := displayDate(tt.in); got != tt.want {
			t.Errorf("displayDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatTransaction_Expense(t *testing.T) {
	tx := &core.Transaction{
		Date:        "2024-01-15",
		Amount:      -50000,
		Category:    "Belanja",
		Description: "Toko Maju",
		AccountID:   "wgppra",
	}

	got := formatTransaction(tx)
	for _, want := range []string{
		"Pengeluaran",
		"15/01/2024",
		"-Rp 50,000",
		"Belanja",
		"Toko Maju",
		"Email dari wgppra",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("message missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Pemasukan") {
		t.Error("expense message should not be labeled as income")
	}
}

func TestFormatTransaction_Income(t *testing.T) {
	tx := &core.Transaction{
		Date:      "2024-01-25",
		Amount:    5000000,
		Category:  "Gaji",
		AccountID: "default",
	}

	got := formatTransaction(tx)
	if !strings.Contains(got, "Pemasukan") {
		t.Errorf("income message missing label:\n%s", got)
	}
	if !strings.Contains(got, "Rp 5,000,000") {
		t.Errorf("income message missing amount:\n%s", got)
	}
}

func TestFormatTransaction_OmitsEmptyDescription(t *testing.T) {
	tx := &core.Transaction{Date: "2024-01-15", Amount: -1000, Category: "Lainnya"}
	if got := formatTransaction(tx); strings.Contains(got, "Deskripsi") {
		t.Errorf("empty description should be omitted:\n%s", got)
	}
}

func TestFormatBatch(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 30, 45, 0, time.UTC)
	got := formatBatch(7, "wgppra", now)

	for _, want := range []string{
		"7 transaksi baru",
		"15/01/2024 10:30:45",
		"Email dari wgppra",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("batch message missing %q:\n%s", want, got)
		}
	}
}

func TestNewChannel_Validation(t *testing.T) {
	if _, err := NewChannel("", []string{"123"}, nil); err == nil {
		t.Error("empty bot token should be rejected")
	}
	if _, err := NewChannel("token", []string{"abc"}, nil); err == nil {
		t.Error("non-numeric chat id should be rejected")
	}
	if _, err := NewChannel("token", nil, nil); err == nil {
		t.Error("empty chat id list should be rejected")
	}
}
