package accounts

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func TestFileTokenStore_SaveLoad(t *testing.T) {
	store := NewFileTokenStore(t.TempDir())

	token := &oauth2.Token{
		AccessToken:  "access-123",
		TokenType:    "Bearer",
		RefreshToken: "refresh-456",
		Expiry:       time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := store.Save("wgppra", token); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := store.Load("wgppra")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded.AccessToken != token.AccessToken {
		t.Errorf("access token = %q, want %q", loaded.AccessToken, token.AccessToken)
	}
	if loaded.RefreshToken != token.RefreshToken {
		t.Errorf("refresh token = %q, want %q", loaded.RefreshToken, token.RefreshToken)
	}
	if !loaded.Expiry.Equal(token.Expiry) {
		t.Errorf("expiry = %v, want %v", loaded.Expiry, token.Expiry)
	}
}

func TestFileTokenStore_PerAccountFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewFileTokenStore(dir)

	if err := store.Save("wgppra", &oauth2.Token{AccessToken: "a"}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if err := store.Save("bhayudha", &oauth2.Token{AccessToken: "b"}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	for _, name := range []string{"token_wgppra.json", "token_bhayudha.json"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected token file %s: %v", name, err)
		}
	}

	a, err := store.Load("wgppra")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if a.AccessToken != "a" {
		t.Errorf("loaded wrong token for account: %q", a.AccessToken)
	}
}

func TestFileTokenStore_Exists(t *testing.T) {
	store := NewFileTokenStore(t.TempDir())

	if store.Exists("wgppra") {
		t.Error("Exists() = true before any save")
	}
	if err := store.Save("wgppra", &oauth2.Token{AccessToken: "a"}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if !store.Exists("wgppra") {
		t.Error("Exists() = false after save")
	}
}

func TestFileTokenStore_LoadMissing(t *testing.T) {
	store := NewFileTokenStore(t.TempDir())
	if _, err := store.Load("nobody"); err == nil {
		t.Error("Load() of a missing token should fail")
	}
}

func TestFileTokenStore_CorruptToken(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "token_bad.json"), []byte("not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	store := NewFileTokenStore(dir)
	if _, err := store.Load("bad"); err == nil {
		t.Error("Load() of a corrupt token should fail")
	}
}
