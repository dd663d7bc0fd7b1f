// Command extract-tx runs the transaction extractor over a single email body
// from a file or stdin and prints the extracted record as JSON. It is used to
// tune prompts and compare providers without touching a mailbox or sheet.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mikey/gmail-finance-ingest/internal/config"
	"github.com/mikey/gmail-finance-ingest/internal/core"
	"github.com/mikey/gmail-finance-ingest/internal/factory"
	"github.com/mikey/gmail-finance-ingest/internal/logging"
	"github.com/mikey/gmail-finance-ingest/internal/utils"
	"go.uber.org/zap"
)

var (
	// Extractor provider flags
	provider    = flag.String("provider", "gemini", "Extractor provider (gemini, openai, bedrock)")
	maxTokens   = flag.Int("max-tokens", 1000, "Maximum tokens for model response")
	temperature = flag.Float64("temperature", 0.1, "Temperature for generation")
	topP        = flag.Float64("top-p", 0.9, "Top-p for generation")
	maxBodySize = flag.Int("max-body-size", 4096, "Maximum email body size to send to the model")

	// Gemini flags
	geminiAPIKey    = flag.String("gemini-api-key", "", "API key for Google Gemini")
	geminiModelName = flag.String("gemini-model", "gemini-2.0-flash", "Gemini model name")

	// OpenAI flags
	openaiAPIKey    = flag.String("openai-api-key", "", "API key for OpenAI")
	openaiModelName = flag.String("openai-model", "gpt-4", "OpenAI model name")

	// Bedrock flags
	bedrockRegion  = flag.String("bedrock-region", "us-east-1", "AWS region for Bedrock")
	bedrockModelID = flag.String("bedrock-model", "anthropic.claude-v2", "Bedrock model ID")

	// Input flags
	inputFile = flag.String("file", "", "Input email body file (use stdin if not specified)")
	verbose   = flag.Bool("verbose", false, "Enable verbose logging")
	jsonLog   = flag.Bool("json-log", false, "Output logs in JSON format")
)

func main() {
	flag.Parse()

	logger, err := logging.InitConsoleLogger(*verbose, *jsonLog)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg := createConfigFromFlags()

	textProcessor := utils.NewTextProcessor(logger)
	extractor, err := factory.NewExtractorFactory(cfg, logger, textProcessor).CreateExtractor()
	if err != nil {
		logger.Fatal("Failed to create extractor", zap.Error(err))
	}

	text, err := readInput()
	if err != nil {
		logger.Fatal("Failed to read input", zap.Error(err))
	}

	tx, err := extractor.Extract(context.Background(), text)
	if err != nil {
		if errors.Is(err, core.ErrNoTransaction) {
			logger.Info("No transaction found in input")
			os.Exit(0)
		}
		logger.Fatal("Extraction failed", zap.Error(err))
	}

	if closer, ok := extractor.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	out, err := json.MarshalIndent(tx, "", "  ")
	if err != nil {
		logger.Fatal("Failed to encode result", zap.Error(err))
	}
	fmt.Println(string(out))
}

// createConfigFromFlags builds a configuration from the command line flags
func createConfigFromFlags() *config.Config {
	v := config.NewEmptyViper()

	v.Set("extractor.provider", *provider)

	v.Set("gemini.api_key", *geminiAPIKey)
	v.Set("gemini.model_name", *geminiModelName)
	v.Set("gemini.max_tokens", *maxTokens)
	v.Set("gemini.temperature", *temperature)
	v.Set("gemini.top_p", *topP)
	v.Set("gemini.max_body_size", *maxBodySize)

	v.Set("openai.api_key", *openaiAPIKey)
	v.Set("openai.model_name", *openaiModelName)
	v.Set("openai.max_tokens", *maxTokens)
	v.Set("openai.temperature", *temperature)
	v.Set("openai.top_p", *topP)
	v.Set("openai.max_body_size", *maxBodySize)

	v.Set("bedrock.region", *bedrockRegion)
	v.Set("bedrock.model_id", *bedrockModelID)
	v.Set("bedrock.max_tokens", *maxTokens)
	v.Set("bedrock.temperature", *temperature)
	v.Set("bedrock.top_p", *topP)
	v.Set("bedrock.max_body_size", *maxBodySize)

	return config.NewFromViper(v)
}

func readInput() (string, error) {
	if *inputFile != "" {
		data, err := os.ReadFile(*inputFile)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
