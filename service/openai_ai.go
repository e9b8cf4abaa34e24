package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/avast/retry-go/v4"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/huduassist/huduassist-be/types"
)

// OpenAIService implements AIService and Embedder against any
// OpenAI-compatible endpoint, which covers self-hosted model servers.
type OpenAIService struct {
	client     *openai.Client
	model      string
	embedModel string
	logger     *zap.Logger
}

func NewOpenAIService(baseURL, apiKey, model, embedModel string, logger *zap.Logger) *OpenAIService {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL // Set this to your local LLM server URL
	}
	return &OpenAIService{
		client:     openai.NewClientWithConfig(config),
		model:      model,
		embedModel: embedModel,
		logger:     logger,
	}
}

func openaiRetryOptions(ctx context.Context, logger *zap.Logger) []retry.Option {
	return []retry.Option{
		retry.Attempts(retryAttempts),
		retry.Delay(retryDelay),
		retry.MaxDelay(retryMaxDelay),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(attempt uint, err error) {
			logger.Warn("openai call failed, retrying",
				zap.Uint("attempt", attempt), zap.Error(err))
		}),
	}
}

// Chat sends the prompt as a single user message and returns the completion.
func (s *OpenAIService) Chat(ctx context.Context, prompt string) (string, error) {
	var resp openai.ChatCompletionResponse
	err := retry.Do(func() error {
		var err error
		resp, err = s.client.CreateChatCompletion(
			ctx,
			openai.ChatCompletionRequest{
				Model: s.model,
				Messages: []openai.ChatCompletionMessage{
					{
						Role:    openai.ChatMessageRoleUser,
						Content: prompt,
					},
				},
			},
		)
		return err
	}, openaiRetryOptions(ctx, s.logger)...)
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("no response generated")
	}
	return resp.Choices[0].Message.Content, nil
}

// EmbedDocuments embeds a batch of texts, one vector per input in order.
func (s *OpenAIService) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	var resp openai.EmbeddingResponse
	err := retry.Do(func() error {
		var err error
		resp, err = s.client.CreateEmbeddings(ctx, openai.EmbeddingRequestStrings{
			Input: texts,
			Model: openai.EmbeddingModel(s.embedModel),
		})
		return err
	}, openaiRetryOptions(ctx, s.logger)...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrEmbeddingService, err)
	}

	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d inputs",
			types.ErrEmbeddingService, len(resp.Data), len(texts))
	}
	vectors := make([][]float32, len(resp.Data))
	for i, d := range resp.Data {
		if len(d.Embedding) == 0 {
			return nil, fmt.Errorf("%w: empty embedding at position %d", types.ErrEmbeddingService, i)
		}
		vectors[i] = d.Embedding
	}
	return vectors, nil
}

// EmbedQuery embeds a single query string.
func (s *OpenAIService) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vectors, err := s.EmbedDocuments(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}
