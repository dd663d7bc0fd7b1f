package openai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mikey/gmail-finance-ingest/internal/core"
	"github.com/mikey/gmail-finance-ingest/internal/extract"
	"github.com/mikey/gmail-finance-ingest/internal/utils"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Extractor is an implementation of the core.Extractor interface using OpenAI
type Extractor struct {
	client        *openai.Client
	modelName     string
	maxTokens     int
	temperature   float32
	topP          float32
	maxBodySize   int
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewExtractor creates a new OpenAI extractor
func NewExtractor(
	apiKey string,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	maxBodySize int,
	textProcessor *utils.TextProcessor,
	logger *zap.Logger,
) *Extractor {
	return &Extractor{
		client:        openai.NewClient(apiKey),
		modelName:     modelName,
		maxTokens:     maxTokens,
		temperature:   temperature,
		topP:          topP,
		maxBodySize:   maxBodySize,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// Extract parses email text into a transaction record
func (e *Extractor) Extract(ctx context.Context, text string) (*core.Transaction, error) {
	if strings.TrimSpace(text) == "" {
		return nil, core.ErrNoTransaction
	}

	processed := e.textProcessor.ProcessText(text, e.maxBodySize)
	prompt := extract.BuildPrompt(processed, time.Now())

	req := openai.ChatCompletionRequest{
		Model: e.modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a financial transaction extraction system. Respond only with JSON.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   e.maxTokens,
		Temperature: e.temperature,
		TopP:        e.topP,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	resp, err := e.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat completion with OpenAI: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from OpenAI")
	}

	parsed, err := extract.Parse(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	tx, err := parsed.ToTransaction(time.Now())
	if err != nil {
		return nil, err
	}

	e.logger.Debug("Extracted transaction with OpenAI",
		zap.String("model", e.modelName),
		zap.String("processing_id", resp.ID),
		zap.String("date", tx.Date),
		zap.Float64("amount", tx.Amount))
	return tx, nil
}
