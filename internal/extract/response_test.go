package extract

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mikey/gmail-finance-ingest/internal/core"
)

var now = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantAmount float64
		wantErr    bool
	}{
		{
			name:       "bare json",
			raw:        `{"amount": -50000, "category": "Belanja", "description": "Toko", "transaction_type": "expense", "date": "2024-01-10"}`,
			wantAmount: -50000,
		},
		{
			name:       "json code fence",
			raw:        "```json\n{\"amount\": 75000, \"transaction_type\": \"income\"}\n```",
			wantAmount: 75000,
		},
		{
			name:       "plain code fence",
			raw:        "```\n{\"amount\": 1000}\n```",
			wantAmount: 1000,
		},
		{
			name:       "surrounding prose",
			raw:        `Here is the extraction: {"amount": 2500, "category": "Makanan"} Let me know if you need more.`,
			wantAmount: 2500,
		},
		{
			name:    "no json at all",
			raw:     "I could not find a transaction in this text.",
			wantErr: true,
		},
		{
			name:    "malformed json",
			raw:     `{"amount": not-a-number}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := Parse(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Parse() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() error: %v", err)
			}
			if resp.Amount == nil {
				t.Fatal("Parse() amount is nil")
			}
			if *resp.Amount != tt.wantAmount {
				t.Errorf("amount = %v, want %v", *resp.Amount, tt.wantAmount)
			}
		})
	}
}

func TestToTransaction_SignNormalization(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		txType *string
		want   float64
	}{
		{"expense forced negative", 50000, strPtr("expense"), -50000},
		{"expense already negative", -50000, strPtr("expense"), -50000},
		{"income forced positive", -75000, strPtr("income"), 75000},
		{"income already positive", 75000, strPtr("income"), 75000},
		{"missing type defaults to expense", 1000, nil, -1000},
		{"unknown type defaults to expense", 1000, strPtr("transfer"), -1000},
		{"income is case insensitive", -2000, strPtr("Income"), 2000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &Response{Amount: f64Ptr(tt.amount), TransactionType: tt.txType}
			tx, err := resp.ToTransaction(now)
			if err != nil {
				t.Fatalf("ToTransaction() error: %v", err)
			}
			if tx.Amount != tt.want {
				t.Errorf("amount = %v, want %v", tx.Amount, tt.want)
			}
		})
	}
}

func TestToTransaction_NilAmount(t *testing.T) {
	resp := &Response{Category: strPtr("Makanan")}
	if _, err := resp.ToTransaction(now); !errors.Is(err, core.ErrNoTransaction) {
		t.Errorf("ToTransaction() error = %v, want ErrNoTransaction", err)
	}
}

func TestToTransaction_Defaults(t *testing.T) {
	resp := &Response{Amount: f64Ptr(10000)}
	tx, err := resp.ToTransaction(now)
	if err != nil {
		t.Fatalf("ToTransaction() error: %v", err)
	}
	if tx.Date != "2024-01-15" {
		t.Errorf("date = %q, want today %q", tx.Date, "2024-01-15")
	}
	if tx.Category != "Lainnya" {
		t.Errorf("category = %q, want %q", tx.Category, "Lainnya")
	}
	if tx.Description != "" {
		t.Errorf("description = %q, want empty", tx.Description)
	}
	if tx.Type != core.TransactionTypeExpense {
		t.Errorf("type = %q, want expense", tx.Type)
	}
}

func TestToTransaction_ExplicitFields(t *testing.T) {
	resp := &Response{
		Amount:          f64Ptr(5000000),
		Category:        strPtr(" Gaji "),
		Description:     strPtr("Gaji bulanan Januari"),
		TransactionType: strPtr("income"),
		Date:            strPtr("2024-01-01"),
	}
	tx, err := resp.ToTransaction(now)
	if err != nil {
		t.Fatalf("ToTransaction() error: %v", err)
	}
	if tx.Date != "2024-01-01" {
		t.Errorf("date = %q, want %q", tx.Date, "2024-01-01")
	}
	if tx.Category != "Gaji" {
		t.Errorf("category = %q, want trimmed %q", tx.Category, "Gaji")
	}
	if tx.Amount != 5000000 {
		t.Errorf("amount = %v, want 5000000", tx.Amount)
	}
}

func TestBuildPrompt_EmbedsTextAndDate(t *testing.T) {
	prompt := BuildPrompt("bayar kopi Rp25.000", now)
	if !strings.Contains(prompt, `"bayar kopi Rp25.000"`) {
		t.Error("prompt missing the quoted email text")
	}
	if !strings.Contains(prompt, "2024-01-15") {
		t.Error("prompt missing today's date")
	}
}
