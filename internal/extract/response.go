// Package extract holds the extraction prompt and the model-response parsing
// shared by all LLM providers.
package extract

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/mikey/gmail-finance-ingest/internal/core"
)

// PromptFormat is the extraction prompt. The first argument is the email
// text, the remaining two are today's date in YYYY-MM-DD form.
const PromptFormat = `Extract financial information from this Indonesian text: "%s"
Today's date is %s.

Return a JSON object with these fields:
- amount: the monetary amount (numeric value only, without currency symbols)
- category: the spending/income category
- description: brief description of the transaction
- transaction_type: "income" if this is money received, or "expense" if this is money spent
- date: the date of the transaction in YYYY-MM-DD format

For the date field, if no specific date is mentioned, use today's date (%s).

For transaction_type, analyze the context carefully:
- INCOME indicators (set to "income"): "terima", "dapat", "pemasukan", "masuk", "diterima", "gaji", "bonus", etc.
- EXPENSE indicators (set to "expense"): "beli", "bayar", "belanja", "pengeluaran", "keluar", "dibayar", etc.

If transaction_type is "income", amount should be positive. If "expense", amount should be negative.

If still unclear, default to "expense".

For category, try to identify specific categories like:
- Income categories: "Gaji", "Bonus", "Investasi", "Hadiah", "Penjualan", "Bisnis"
- Expense categories: "Makanan", "Transportasi", "Belanja", "Hiburan", "Tagihan", "Kesehatan", "Pendidikan"

If any field is unclear, set it to null.

Respond only with the JSON object and nothing else.`

// BuildPrompt formats the extraction prompt for the given email text
func BuildPrompt(text string, now time.Time) string {
	today := now.Format("2006-01-02")
	return fmt.Sprintf(PromptFormat, text, today, today)
}

// Response is the structured reply expected from the model. Pointer fields
// distinguish "null" from a present value.
type Response struct {
	Amount          *float64 `json:"amount"`
	Category        *string  `json:"category"`
	Description     *string  `json:"description"`
	TransactionType *string  `json:"transaction_type"`
	Date            *string  `json:"date"`
}

// Parse decodes a model reply into a Response. Models occasionally wrap the
// JSON in markdown code fences or surrounding prose, so both are stripped
// before unmarshaling.
func Parse(raw string) (*Response, error) {
	cleaned := stripCodeFence(raw)

	var resp Response
	if err := json.Unmarshal([]byte(cleaned), &resp); err == nil {
		return &resp, nil
	}

	// Fall back to the outermost brace pair
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("failed to extract JSON from model response")
	}
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse model response as JSON: %w", err)
	}
	return &resp, nil
}

func stripCodeFence(s string) string {
	if idx := strings.Index(s, "```json"); idx >= 0 {
		s = s[idx+len("```json"):]
		if end := strings.Index(s, "```"); end >= 0 {
			s = s[:end]
		}
	} else if idx := strings.Index(s, "```"); idx >= 0 {
		s = s[idx+len("```"):]
		if end := strings.Index(s, "```"); end >= 0 {
			s = s[:end]
		}
	}
	return strings.TrimSpace(s)
}

// ToTransaction converts a parsed response into a transaction record,
// applying the sign convention and the defaults for missing fields. A
// response with no amount yields core.ErrNoTransaction.
func (r *Response) ToTransaction(now time.Time) (*core.Transaction, error) {
	if r.Amount == nil {
		return nil, core.ErrNoTransaction
	}

	txType := core.TransactionTypeExpense
	if r.TransactionType != nil && strings.EqualFold(*r.TransactionType, core.TransactionTypeIncome) {
		txType = core.TransactionTypeIncome
	}

	amount := math.Abs(*r.Amount)
	if txType == core.TransactionTypeExpense {
		amount = -amount
	}

	date := now.Format("2006-01-02")
	if r.Date != nil && strings.TrimSpace(*r.Date) != "" {
		date = strings.TrimSpace(*r.Date)
	}

	category := "Lainnya"
	if r.Category != nil && strings.TrimSpace(*r.Category) != "" {
		category = strings.TrimSpace(*r.Category)
	}

	description := ""
	if r.Description != nil {
		description = strings.TrimSpace(*r.Description)
	}

	return &core.Transaction{
		Date:        date,
		Amount:      amount,
		Category:    category,
		Description: description,
		Type:        txType,
	}, nil
}
