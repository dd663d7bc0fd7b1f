package accounts

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
)

// FileTokenStore persists one OAuth token per account as
// token_<account>.json under a directory. Plain files rather than a system
// keyring so the binary works unattended from cron.
type FileTokenStore struct {
	dir string
}

// NewFileTokenStore creates a token store rooted at dir
func NewFileTokenStore(dir string) *FileTokenStore {
	if dir == "" {
		dir = "."
	}
	return &FileTokenStore{dir: dir}
}

func (s *FileTokenStore) path(accountID string) string {
	return filepath.Join(s.dir, fmt.Sprintf("token_%s.json", accountID))
}

// Load reads the stored token for an account
func (s *FileTokenStore) Load(accountID string) (*oauth2.Token, error) {
	data, err := os.ReadFile(s.path(accountID))
	if err != nil {
		return nil, fmt.Errorf("failed to read token for account %q: %w", accountID, err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to parse token for account %q: %w", accountID, err)
	}
	return &token, nil
}

// Save writes the token for an account, creating the directory if needed
func (s *FileTokenStore) Save(accountID string, token *oauth2.Token) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to encode token for account %q: %w", accountID, err)
	}
	if err := os.WriteFile(s.path(accountID), data, 0o600); err != nil {
		return fmt.Errorf("failed to write token for account %q: %w", accountID, err)
	}
	return nil
}

// Exists reports whether a token is stored for the account
func (s *FileTokenStore) Exists(accountID string) bool {
	_, err := os.Stat(s.path(accountID))
	return err == nil
}
