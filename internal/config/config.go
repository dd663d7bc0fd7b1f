package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	v *viper.Viper
}

// New creates a new configuration instance
func New() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/finance-ingest/")
	v.AddConfigPath("$HOME/.finance-ingest")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	// Set defaults
	setDefaults(v)

	// Environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	bindEnvAliases(v)

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, using defaults
	}

	return &Config{v: v}, nil
}

// NewFromViper creates a new configuration instance from an existing Viper instance
func NewFromViper(v *viper.Viper) *Config {
	return &Config{v: v}
}

// NewEmptyViper creates a new Viper instance with defaults
func NewEmptyViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

// bindEnvAliases binds the short environment variable names the deployment
// scripts export. These take precedence over the dotted config keys.
func bindEnvAliases(v *viper.Viper) {
	aliases := map[string]string{
		"gemini.api_key":           "GEMINI_API_KEY",
		"sheets.spreadsheet_id":    "SPREADSHEET_ID",
		"sheets.processor_user_id": "PROCESSOR_USER_ID",
		"gmail.search_query":       "GMAIL_SEARCH_QUERY",
		"gmail.accounts":           "GMAIL_ACCOUNTS",
		"telegram.enabled":         "TELEGRAM_ENABLED",
		"telegram.bot_token":       "TELEGRAM_BOT_TOKEN",
		"telegram.chat_ids":        "TELEGRAM_CHAT_IDS",
	}
	for key, env := range aliases {
		_ = v.BindEnv(key, env)
	}
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// Extractor provider defaults
	v.SetDefault("extractor.provider", "gemini")

	// Gemini defaults
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model_name", "gemini-2.0-flash")
	v.SetDefault("gemini.max_tokens", 1000)
	v.SetDefault("gemini.temperature", 0.1)
	v.SetDefault("gemini.top_p", 0.9)
	v.SetDefault("gemini.max_body_size", 4096)

	// OpenAI defaults
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.model_name", "gpt-4")
	v.SetDefault("openai.max_tokens", 1000)
	v.SetDefault("openai.temperature", 0.1)
	v.SetDefault("openai.top_p", 0.9)
	v.SetDefault("openai.max_body_size", 4096)

	// Bedrock defaults
	v.SetDefault("bedrock.region", "us-east-1")
	v.SetDefault("bedrock.model_id", "anthropic.claude-v2")
	v.SetDefault("bedrock.max_tokens", 1000)
	v.SetDefault("bedrock.temperature", 0.1)
	v.SetDefault("bedrock.top_p", 0.9)
	v.SetDefault("bedrock.max_body_size", 4096)

	// Gmail defaults
	v.SetDefault("gmail.accounts", "")
	v.SetDefault("gmail.search_query",
		"subject:(Transfer OR Pembayaran OR Transaksi OR payment OR transaction)")
	v.SetDefault("gmail.lookback_days", 1)
	v.SetDefault("gmail.processed_label", "Processed-Financial")
	v.SetDefault("gmail.client_id", "")
	v.SetDefault("gmail.client_secret", "")
	v.SetDefault("gmail.token_dir", ".")
	v.SetDefault("gmail.interactive", true)

	// Sheets defaults
	v.SetDefault("sheets.spreadsheet_id", "")
	v.SetDefault("sheets.sheet_name", "Sheet1")
	v.SetDefault("sheets.processor_user_id", "")

	// Telegram defaults
	v.SetDefault("telegram.enabled", false)
	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.chat_ids", "")

	// SMTP digest defaults
	v.SetDefault("smtp.enabled", false)
	v.SetDefault("smtp.address", "")
	v.SetDefault("smtp.from", "")
	v.SetDefault("smtp.to", []string{})
	v.SetDefault("smtp.username", "")
	v.SetDefault("smtp.password", "")

	// Notification defaults
	v.SetDefault("notify.batch_threshold", 5)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// GetString gets a string value from the configuration
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt gets an integer value from the configuration
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetFloat64 gets a float64 value from the configuration
func (c *Config) GetFloat64(key string) float64 {
	return c.v.GetFloat64(key)
}

// GetBool gets a boolean value from the configuration
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetStringSlice gets a string slice value from the configuration
func (c *Config) GetStringSlice(key string) []string {
	return c.v.GetStringSlice(key)
}

// GetDuration gets a duration value from the configuration
func (c *Config) GetDuration(key string) (time.Duration, error) {
	return time.ParseDuration(c.GetString(key))
}

// GetViper returns the underlying Viper instance
func (c *Config) GetViper() *viper.Viper {
	return c.v
}
