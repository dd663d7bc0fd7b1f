package bedrock

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/mikey/gmail-finance-ingest/internal/core"
	"github.com/mikey/gmail-finance-ingest/internal/extract"
	"github.com/mikey/gmail-finance-ingest/internal/utils"
	"go.uber.org/zap"
)

// Extractor is an implementation of the core.Extractor interface using
// Amazon Bedrock
type Extractor struct {
	client        *bedrockruntime.Client
	modelID       string
	maxTokens     int
	temperature   float32
	topP          float32
	maxBodySize   int
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewExtractor creates a new Bedrock extractor
func NewExtractor(
	client *bedrockruntime.Client,
	modelID string,
	maxTokens int,
	temperature float32,
	topP float32,
	maxBodySize int,
	textProcessor *utils.TextProcessor,
	logger *zap.Logger,
) *Extractor {
	return &Extractor{
		client:        client,
		modelID:       modelID,
		maxTokens:     maxTokens,
		temperature:   temperature,
		topP:          topP,
		maxBodySize:   maxBodySize,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

func (e *Extractor) isAnthropicModel() bool {
	return strings.Contains(e.modelID, "anthropic")
}

func (e *Extractor) isAmazonTitanModel() bool {
	return strings.Contains(e.modelID, "amazon.titan")
}

// Extract parses email text into a transaction record
func (e *Extractor) Extract(ctx context.Context, text string) (*core.Transaction, error) {
	if strings.TrimSpace(text) == "" {
		return nil, core.ErrNoTransaction
	}

	processed := e.textProcessor.ProcessText(text, e.maxBodySize)
	prompt := extract.BuildPrompt(processed, time.Now())

	// Request payload shape depends on the model family
	var payload []byte
	var err error
	switch {
	case e.isAnthropicModel():
		payload, err = json.Marshal(map[string]interface{}{
			"prompt":               prompt,
			"max_tokens_to_sample": e.maxTokens,
			"temperature":          e.temperature,
			"top_p":                e.topP,
		})
	case e.isAmazonTitanModel():
		payload, err = json.Marshal(map[string]interface{}{
			"inputText": prompt,
			"textGenerationConfig": map[string]interface{}{
				"maxTokenCount": e.maxTokens,
				"temperature":   e.temperature,
				"topP":          e.topP,
			},
		})
	default:
		payload, err = json.Marshal(map[string]interface{}{
			"prompt":      prompt,
			"max_tokens":  e.maxTokens,
			"temperature": e.temperature,
			"top_p":       e.topP,
		})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request payload: %w", err)
	}

	resp, err := e.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     &e.modelID,
		Body:        payload,
		Accept:      aws.String("application/json"),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to invoke Bedrock model: %w", err)
	}

	responseText, err := e.responseText(resp.Body)
	if err != nil {
		return nil, err
	}

	parsed, err := extract.Parse(responseText)
	if err != nil {
		return nil, err
	}

	tx, err := parsed.ToTransaction(time.Now())
	if err != nil {
		return nil, err
	}

	e.logger.Debug("Extracted transaction with Bedrock",
		zap.String("model", e.modelID),
		zap.String("date", tx.Date),
		zap.Float64("amount", tx.Amount))
	return tx, nil
}

// responseText pulls the generated text out of the model-family specific
// response envelope
func (e *Extractor) responseText(body []byte) (string, error) {
	switch {
	case e.isAnthropicModel():
		var resp struct {
			Completion string `json:"completion"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return "", fmt.Errorf("failed to parse Anthropic response: %w", err)
		}
		return resp.Completion, nil
	case e.isAmazonTitanModel():
		var resp struct {
			Results []struct {
				OutputText string `json:"outputText"`
			} `json:"results"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return "", fmt.Errorf("failed to parse Titan response: %w", err)
		}
		if len(resp.Results) == 0 {
			return "", fmt.Errorf("empty response from Bedrock")
		}
		return resp.Results[0].OutputText, nil
	default:
		var resp struct {
			Completion string `json:"completion"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return "", fmt.Errorf("failed to parse Bedrock response: %w", err)
		}
		return resp.Completion, nil
	}
}
