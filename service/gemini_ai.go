package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/huduassist/huduassist-be/types"
)

const (
	chatTemperature = 0.4

	retryAttempts = 3
	retryDelay    = 200 * time.Millisecond
	retryMaxDelay = 2 * time.Second
)

// GeminiService wraps the hosted Gemini API for both chat completion and
// text embeddings. When several API keys are configured it rotates to the
// next key before a retry, which rides out per-key quota exhaustion.
type GeminiService struct {
	apiKeys    []string
	currentKey int
	client     *genai.Client
	model      *genai.GenerativeModel
	embedModel *genai.EmbeddingModel
	modelName  string
	embedName  string
	logger     *zap.Logger
	mu         sync.Mutex
}

func NewGeminiService(apiKeys []string, modelName, embedName string, logger *zap.Logger) (*GeminiService, error) {
	if len(apiKeys) == 0 {
		return nil, errors.New("no API keys provided")
	}

	service := &GeminiService{
		apiKeys:   apiKeys,
		modelName: strings.TrimPrefix(modelName, "models/"),
		embedName: strings.TrimPrefix(embedName, "models/"),
		logger:    logger,
	}
	if err := service.initClient(); err != nil {
		return nil, err
	}
	return service, nil
}

func (s *GeminiService) initClient() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(s.apiKeys[s.currentKey]))
	if err != nil {
		return err
	}
	s.client = client
	s.model = client.GenerativeModel(s.modelName)
	s.model.SetTemperature(chatTemperature)
	s.embedModel = client.EmbeddingModel(s.embedName)
	return nil
}

func (s *GeminiService) rotateAPIKey() error {
	s.mu.Lock()
	s.currentKey = (s.currentKey + 1) % len(s.apiKeys)
	if err := s.client.Close(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()
	s.logger.Warn("rotating gemini api key", zap.Int("key_index", s.currentKey))
	return s.initClient()
}

func (s *GeminiService) retryOptions(ctx context.Context) []retry.Option {
	return []retry.Option{
		retry.Attempts(retryAttempts),
		retry.Delay(retryDelay),
		retry.MaxDelay(retryMaxDelay),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(attempt uint, err error) {
			s.logger.Warn("gemini call failed, retrying",
				zap.Uint("attempt", attempt), zap.Error(err))
			if len(s.apiKeys) > 1 {
				if rerr := s.rotateAPIKey(); rerr != nil {
					s.logger.Error("failed to rotate api key", zap.Error(rerr))
				}
			}
		}),
	}
}

// Chat sends the prompt and returns the flattened text of the first candidate.
func (s *GeminiService) Chat(ctx context.Context, prompt string) (string, error) {
	var resp *genai.GenerateContentResponse
	err := retry.Do(func() error {
		var err error
		resp, err = s.model.GenerateContent(ctx, genai.Text(prompt))
		return err
	}, s.retryOptions(ctx)...)
	if err != nil {
		return "", err
	}

	if len(resp.Candidates) == 0 {
		return "", errors.New("no response generated")
	}
	content := ""
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				content += string(text)
			}
		}
	}
	return content, nil
}

// EmbedDocuments embeds a batch of texts, one vector per input in order.
func (s *GeminiService) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	var resp *genai.BatchEmbedContentsResponse
	err := retry.Do(func() error {
		batch := s.embedModel.NewBatch()
		for _, text := range texts {
			batch = batch.AddContent(genai.Text(text))
		}
		var err error
		resp, err = s.embedModel.BatchEmbedContents(ctx, batch)
		return err
	}, s.retryOptions(ctx)...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrEmbeddingService, err)
	}

	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d inputs",
			types.ErrEmbeddingService, len(resp.Embeddings), len(texts))
	}
	vectors := make([][]float32, len(resp.Embeddings))
	for i, emb := range resp.Embeddings {
		if emb == nil || len(emb.Values) == 0 {
			return nil, fmt.Errorf("%w: empty embedding at position %d", types.ErrEmbeddingService, i)
		}
		vectors[i] = emb.Values
	}
	return vectors, nil
}

// EmbedQuery embeds a single query string.
func (s *GeminiService) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	var resp *genai.EmbedContentResponse
	err := retry.Do(func() error {
		var err error
		resp, err = s.embedModel.EmbedContent(ctx, genai.Text(text))
		return err
	}, s.retryOptions(ctx)...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrEmbeddingService, err)
	}
	if resp.Embedding == nil || len(resp.Embedding.Values) == 0 {
		return nil, fmt.Errorf("%w: empty embedding", types.ErrEmbeddingService)
	}
	return resp.Embedding.Values, nil
}

// Close releases the underlying API client.
func (s *GeminiService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.client.Close()
}
