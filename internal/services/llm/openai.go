package llm

import (
	"context"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"

	apperrors "github.com/prophetlog/prediction-api/pkg/errors"
)

// OpenAIClient implements Client on top of the OpenAI chat completion API
type OpenAIClient struct {
	client *openai.Client
	model  openai.ChatModel
	logger *zap.Logger
}

// NewOpenAIClient creates an OpenAI-backed language model client. Returns nil
// when no API key is configured.
func NewOpenAIClient(apiKey, modelName string, timeout time.Duration, logger *zap.Logger) *OpenAIClient {
	if apiKey == "" {
		return nil
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(timeout))
	}

	client := openai.NewClient(opts...)
	return &OpenAIClient{
		client: &client,
		model:  resolveModel(modelName),
		logger: logger,
	}
}

func resolveModel(name string) openai.ChatModel {
	switch name {
	case "gpt-4o":
		return openai.ChatModelGPT4o
	case "gpt-4o-mini":
		return openai.ChatModelGPT4oMini
	case "gpt-4.1":
		return openai.ChatModelGPT4_1
	case "gpt-4.1-mini":
		return openai.ChatModelGPT4_1Mini
	case "gpt-4.1-nano":
		return openai.ChatModelGPT4_1Nano
	default:
		return openai.ChatModelGPT4oMini
	}
}

// Complete sends one prompt and returns the raw response text
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	if c == nil || c.client == nil {
		return "", apperrors.New(apperrors.ErrCodeConfigRequired, "openai client not initialized")
	}

	params := openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(0.0),
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		c.logger.Error("OpenAI completion failed", zap.Error(err))
		return "", apperrors.ExternalServiceError("openai", err)
	}

	if len(resp.Choices) == 0 {
		return "", apperrors.New(apperrors.ErrCodeExternalService, "no choices in openai response")
	}

	text := resp.Choices[0].Message.Content
	c.logger.Debug("OpenAI response received", zap.Int("length", len(text)))
	return text, nil
}
