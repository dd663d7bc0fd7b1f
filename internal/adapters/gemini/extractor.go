package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/mikey/gmail-finance-ingest/internal/core"
	"github.com/mikey/gmail-finance-ingest/internal/extract"
	"github.com/mikey/gmail-finance-ingest/internal/utils"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// Extractor is an implementation of the core.Extractor interface using
// Google Gemini
type Extractor struct {
	client        *genai.Client
	model         *genai.GenerativeModel
	modelName     string
	maxBodySize   int
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewExtractor creates a new Gemini extractor
func NewExtractor(
	apiKey string,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	maxBodySize int,
	textProcessor *utils.TextProcessor,
	logger *zap.Logger,
) (*Extractor, error) {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(temperature)
	model.SetTopP(topP)
	model.SetMaxOutputTokens(int32(maxTokens))

	return &Extractor{
		client:        client,
		model:         model,
		modelName:     modelName,
		maxBodySize:   maxBodySize,
		logger:        logger,
		textProcessor: textProcessor,
	}, nil
}

// Close closes the Gemini client
func (e *Extractor) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

// Extract parses email text into a transaction record
func (e *Extractor) Extract(ctx context.Context, text string) (*core.Transaction, error) {
	if strings.TrimSpace(text) == "" {
		return nil, core.ErrNoTransaction
	}

	processed := e.textProcessor.ProcessText(text, e.maxBodySize)
	prompt := extract.BuildPrompt(processed, time.Now())

	resp, err := e.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content with Gemini: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil ||
		len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from Gemini")
	}

	responseText := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])

	parsed, err := extract.Parse(responseText)
	if err != nil {
		return nil, err
	}

	tx, err := parsed.ToTransaction(time.Now())
	if err != nil {
		return nil, err
	}

	e.logger.Debug("Extracted transaction with Gemini",
		zap.String("model", e.modelName),
		zap.String("date", tx.Date),
		zap.Float64("amount", tx.Amount))
	return tx, nil
}
