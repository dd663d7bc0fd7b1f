package config

import "strings"

// ExtractorConfig selects the LLM provider used for transaction extraction
type ExtractorConfig struct {
	Provider string
}

// GeminiConfig represents the configuration for Google Gemini
type GeminiConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
	MaxBodySize int
}

// OpenAIConfig represents the configuration for OpenAI
type OpenAIConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
	MaxBodySize int
}

// BedrockConfig represents the configuration for Amazon Bedrock
type BedrockConfig struct {
	Region      string
	ModelID     string
	MaxTokens   int
	Temperature float32
	TopP        float32
	MaxBodySize int
}

// GmailConfig represents the configuration for the Gmail mail source
type GmailConfig struct {
	Accounts       []string
	SearchQuery    string
	LookbackDays   int
	ProcessedLabel string
	ClientID       string
	ClientSecret   string
	TokenDir       string
	Interactive    bool
}

// SheetsConfig represents the configuration for the Google Sheets sink
type SheetsConfig struct {
	SpreadsheetID   string
	SheetName       string
	ProcessorUserID string
}

// TelegramConfig represents the configuration for Telegram notifications
type TelegramConfig struct {
	Enabled  bool
	BotToken string
	ChatIDs  []string
}

// SMTPConfig represents the configuration for the mail digest channel
type SMTPConfig struct {
	Enabled  bool
	Address  string
	From     string
	To       []string
	Username string
	Password string
}

// GetExtractor returns the extractor configuration
func (c *Config) GetExtractor() ExtractorConfig {
	return ExtractorConfig{
		Provider: c.GetString("extractor.provider"),
	}
}

// GetGemini returns the Gemini configuration
func (c *Config) GetGemini() GeminiConfig {
	return GeminiConfig{
		APIKey:      c.GetString("gemini.api_key"),
		ModelName:   c.GetString("gemini.model_name"),
		MaxTokens:   c.GetInt("gemini.max_tokens"),
		Temperature: float32(c.GetFloat64("gemini.temperature")),
		TopP:        float32(c.GetFloat64("gemini.top_p")),
		MaxBodySize: c.GetInt("gemini.max_body_size"),
	}
}

// GetOpenAI returns the OpenAI configuration
func (c *Config) GetOpenAI() OpenAIConfig {
	return OpenAIConfig{
		APIKey:      c.GetString("openai.api_key"),
		ModelName:   c.GetString("openai.model_name"),
		MaxTokens:   c.GetInt("openai.max_tokens"),
		Temperature: float32(c.GetFloat64("openai.temperature")),
		TopP:        float32(c.GetFloat64("openai.top_p")),
		MaxBodySize: c.GetInt("openai.max_body_size"),
	}
}

// GetBedrock returns the Bedrock configuration
func (c *Config) GetBedrock() BedrockConfig {
	return BedrockConfig{
		Region:      c.GetString("bedrock.region"),
		ModelID:     c.GetString("bedrock.model_id"),
		MaxTokens:   c.GetInt("bedrock.max_tokens"),
		Temperature: float32(c.GetFloat64("bedrock.temperature")),
		TopP:        float32(c.GetFloat64("bedrock.top_p")),
		MaxBodySize: c.GetInt("bedrock.max_body_size"),
	}
}

// GetGmail returns the Gmail configuration. Accounts and chat ids arrive as
// comma-separated strings so they can be set from a single environment
// variable.
func (c *Config) GetGmail() GmailConfig {
	return GmailConfig{
		Accounts:       splitCommaList(c.GetString("gmail.accounts")),
		SearchQuery:    c.GetString("gmail.search_query"),
		LookbackDays:   c.GetInt("gmail.lookback_days"),
		ProcessedLabel: c.GetString("gmail.processed_label"),
		ClientID:       c.GetString("gmail.client_id"),
		ClientSecret:   c.GetString("gmail.client_secret"),
		TokenDir:       c.GetString("gmail.token_dir"),
		Interactive:    c.GetBool("gmail.interactive"),
	}
}

// GetSheets returns the Sheets configuration
func (c *Config) GetSheets() SheetsConfig {
	return SheetsConfig{
		SpreadsheetID:   c.GetString("sheets.spreadsheet_id"),
		SheetName:       c.GetString("sheets.sheet_name"),
		ProcessorUserID: c.GetString("sheets.processor_user_id"),
	}
}

// GetTelegram returns the Telegram configuration
func (c *Config) GetTelegram() TelegramConfig {
	return TelegramConfig{
		Enabled:  c.GetBool("telegram.enabled"),
		BotToken: c.GetString("telegram.bot_token"),
		ChatIDs:  splitCommaList(c.GetString("telegram.chat_ids")),
	}
}

// GetSMTP returns the SMTP digest configuration
func (c *Config) GetSMTP() SMTPConfig {
	return SMTPConfig{
		Enabled:  c.GetBool("smtp.enabled"),
		Address:  c.GetString("smtp.address"),
		From:     c.GetString("smtp.from"),
		To:       c.GetStringSlice("smtp.to"),
		Username: c.GetString("smtp.username"),
		Password: c.GetString("smtp.password"),
	}
}

func splitCommaList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
