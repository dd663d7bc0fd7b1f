package config

import (
	"reflect"
	"testing"
)

func newTestConfig() *Config {
	return NewFromViper(NewEmptyViper())
}

func TestDefaults(t *testing.T) {
	cfg := newTestConfig()

	if got := cfg.GetExtractor().Provider; got != "gemini" {
		t.Errorf("extractor.provider = %q, want gemini", got)
	}

	gmail := cfg.GetGmail()
	if gmail.SearchQuery != "subject:(Transfer OR Pembayaran OR Transaksi OR payment OR transaction)" {
		t.Errorf("gmail.search_query = %q", gmail.SearchQuery)
	}
	if gmail.LookbackDays != 1 {
		t.Errorf("gmail.lookback_days = %d, want 1", gmail.LookbackDays)
	}
	if gmail.ProcessedLabel != "Processed-Financial" {
		t.Errorf("gmail.processed_label = %q", gmail.ProcessedLabel)
	}
	if len(gmail.Accounts) != 0 {
		t.Errorf("gmail.accounts = %v, want empty", gmail.Accounts)
	}
	if !gmail.Interactive {
		t.Error("gmail.interactive should default to true")
	}

	sheets := cfg.GetSheets()
	if sheets.SheetName != "Sheet1" {
		t.Errorf("sheets.sheet_name = %q, want Sheet1", sheets.SheetName)
	}

	if cfg.GetTelegram().Enabled {
		t.Error("telegram should be disabled by default")
	}
	if cfg.GetSMTP().Enabled {
		t.Error("smtp digest should be disabled by default")
	}
	if got := cfg.GetInt("notify.batch_threshold"); got != 5 {
		t.Errorf("notify.batch_threshold = %d, want 5", got)
	}
	if got := cfg.GetString("logging.level"); got != "info" {
		t.Errorf("logging.level = %q, want info", got)
	}
}

func TestGetGmail_CommaSeparatedAccounts(t *testing.T) {
	v := NewEmptyViper()
	v.Set("gmail.accounts", "wgppra, bhayudha ,")
	cfg := NewFromViper(v)

	got := cfg.GetGmail().Accounts
	want := []string{"wgppra", "bhayudha"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("accounts = %v, want %v", got, want)
	}
}

func TestGetTelegram_CommaSeparatedChatIDs(t *testing.T) {
	v := NewEmptyViper()
	v.Set("telegram.enabled", true)
	v.Set("telegram.bot_token", "token")
	v.Set("telegram.chat_ids", "123456789,-100987654321")
	cfg := NewFromViper(v)

	tg := cfg.GetTelegram()
	if !tg.Enabled {
		t.Error("telegram.enabled should be true")
	}
	want := []string{"123456789", "-100987654321"}
	if !reflect.DeepEqual(tg.ChatIDs, want) {
		t.Errorf("chat ids = %v, want %v", tg.ChatIDs, want)
	}
}

func TestEnvAliases(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "key-from-env")
	t.Setenv("SPREADSHEET_ID", "sheet-from-env")
	t.Setenv("GMAIL_ACCOUNTS", "wgppra,bhayudha")
	t.Setenv("TELEGRAM_CHAT_IDS", "42")

	v := NewEmptyViper()
	bindEnvAliases(v)
	cfg := NewFromViper(v)

	if got := cfg.GetGemini().APIKey; got != "key-from-env" {
		t.Errorf("gemini api key = %q, want the env value", got)
	}
	if got := cfg.GetSheets().SpreadsheetID; got != "sheet-from-env" {
		t.Errorf("spreadsheet id = %q, want the env value", got)
	}
	if got := cfg.GetGmail().Accounts; !reflect.DeepEqual(got, []string{"wgppra", "bhayudha"}) {
		t.Errorf("accounts = %v, want the env value split", got)
	}
	if got := cfg.GetTelegram().ChatIDs; !reflect.DeepEqual(got, []string{"42"}) {
		t.Errorf("chat ids = %v, want the env value", got)
	}
}

func TestSplitCommaList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b ", []string{"a", "b"}},
		{"", nil},
		{" , ,", nil},
		{"single", []string{"single"}},
	}

	for _, tt := range tests {
		if got := splitCommaList(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitCommaList(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
