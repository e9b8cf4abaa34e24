package service

import "context"

// AIService produces a chat completion for a fully constructed prompt.
type AIService interface {
	Chat(ctx context.Context, prompt string) (string, error)
}

// Embedder maps text to fixed-dimension vectors via a hosted embedding API.
// Both methods are order preserving and bounded by the caller's context.
type Embedder interface {
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// DocumentLoader extracts page text from a PDF and splits text into
// retrieval-sized chunks.
type DocumentLoader interface {
	ExtractPages(filePath string) ([]string, error)
	CreateChunks(text string) ([]string, error)
}
