package factory

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/mikey/gmail-finance-ingest/internal/adapters/bedrock"
	"github.com/mikey/gmail-finance-ingest/internal/adapters/gemini"
	"github.com/mikey/gmail-finance-ingest/internal/adapters/openai"
	"github.com/mikey/gmail-finance-ingest/internal/config"
	"github.com/mikey/gmail-finance-ingest/internal/core"
	"github.com/mikey/gmail-finance-ingest/internal/utils"
	"go.uber.org/zap"
)

// ExtractorFactory creates transaction extractors
type ExtractorFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewExtractorFactory creates a new extractor factory
func NewExtractorFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *ExtractorFactory {
	return &ExtractorFactory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateExtractor creates an extractor for the configured provider
func (f *ExtractorFactory) CreateExtractor() (core.Extractor, error) {
	provider := f.cfg.GetExtractor().Provider

	switch provider {
	case "gemini":
		geminiCfg := f.cfg.GetGemini()
		if geminiCfg.APIKey == "" {
			return nil, fmt.Errorf("gemini API key is required")
		}
		return gemini.NewExtractor(
			geminiCfg.APIKey,
			geminiCfg.ModelName,
			geminiCfg.MaxTokens,
			geminiCfg.Temperature,
			geminiCfg.TopP,
			geminiCfg.MaxBodySize,
			f.textProcessor,
			f.logger,
		)
	case "openai":
		openaiCfg := f.cfg.GetOpenAI()
		if openaiCfg.APIKey == "" {
			return nil, fmt.Errorf("openai API key is required")
		}
		return openai.NewExtractor(
			openaiCfg.APIKey,
			openaiCfg.ModelName,
			openaiCfg.MaxTokens,
			openaiCfg.Temperature,
			openaiCfg.TopP,
			openaiCfg.MaxBodySize,
			f.textProcessor,
			f.logger,
		), nil
	case "bedrock":
		bedrockCfg := f.cfg.GetBedrock()
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(bedrockCfg.Region))
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
		}
		return bedrock.NewExtractor(
			bedrockruntime.NewFromConfig(awsCfg),
			bedrockCfg.ModelID,
			bedrockCfg.MaxTokens,
			bedrockCfg.Temperature,
			bedrockCfg.TopP,
			bedrockCfg.MaxBodySize,
			f.textProcessor,
			f.logger,
		), nil
	default:
		return nil, fmt.Errorf("unsupported extractor provider: %s", provider)
	}
}
