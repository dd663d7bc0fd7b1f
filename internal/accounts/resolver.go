// Package accounts resolves the configured Gmail account list and persists
// per-account OAuth tokens.
package accounts

import (
	"strings"
)

// Account identifies one configured Gmail account. The ID names both the
// credential context (token file) and the label namespace.
type Account struct {
	ID string
}

// DefaultAccountID is used when no accounts are configured
const DefaultAccountID = "default"

// Resolve turns the configured account names into an ordered account list.
// Blank entries are dropped; an empty configuration falls back to the single
// default account.
func Resolve(names []string) []Account {
	var accounts []Account
	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		accounts = append(accounts, Account{ID: trimmed})
	}
	if len(accounts) == 0 {
		accounts = append(accounts, Account{ID: DefaultAccountID})
	}
	return accounts
}
