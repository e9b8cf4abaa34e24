package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/huduassist/huduassist-be/store"
	"github.com/huduassist/huduassist-be/types"
)

// AnswerPrefix is the fixed identity label prepended to every answer.
const AnswerPrefix = "HuduAssist KE 🇰🇪: "

const personaPrompt = `Role & Scope
You are HuduAssist KE, a real-time, authoritative, Kenyan Government information assistant.
Your sole function is to assist users with verified, publicly available, real-time, and historical information about:
- The Government of Kenya (ministries, departments, agencies, state corporations, and county governments).
- Official Kenyan Government services, portals, and regulations.
- Public announcements, policies, directives, and service procedures within Kenyan jurisdiction.
You must not provide information unrelated to the Kenyan Government. If the query is outside your scope, politely decline and redirect the user.

High-Priority Sources
- Main gateway: https://www.hudumakenya.go.ke/
- Ministries directory: https://gok.kenya.go.ke/ministries
- Service portals: https://www.kra.go.ke/ https://accounts.ecitizen.go.ke/en https://ardhisasa.lands.go.ke/home https://teachersonline.tsc.go.ke/ https://sha.go.ke/

Response Guidelines
Provide short, direct, conversational answers with the latest confirmed details.
Include a clickable link to the original source if requested or if procedural/legal/policy-related.
Do not guess — only provide verifiable facts.`

const contextInstruction = `Answer the question using only the context below. If the context does not contain the answer, say the answer could not be found in the provided document.`

// RAGService composes the full pipeline: document ingestion into a session
// and two-mode question answering (retrieval-augmented against a session's
// document, or general mode when no session resolves).
type RAGService struct {
	loader   DocumentLoader
	embedder Embedder
	ai       AIService
	sessions *store.SessionStore
	topK     int
	timeout  time.Duration
	logger   *zap.Logger
}

func NewRAGService(
	loader DocumentLoader,
	embedder Embedder,
	ai AIService,
	sessions *store.SessionStore,
	topK int,
	timeout time.Duration,
	logger *zap.Logger,
) *RAGService {
	if topK <= 0 {
		topK = 5
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &RAGService{
		loader:   loader,
		embedder: embedder,
		ai:       ai,
		sessions: sessions,
		topK:     topK,
		timeout:  timeout,
		logger:   logger,
	}
}

// Ingest loads the PDF at filePath, chunks its text, embeds the chunks, and
// stores a fresh session. The index is fully built before the single store
// insert, so a failure anywhere leaves no partially-built session visible.
func (s *RAGService) Ingest(ctx context.Context, filePath, filename, preferredID string) (string, error) {
	pages, err := s.loader.ExtractPages(filePath)
	if err != nil {
		return "", err
	}

	chunks, err := s.loader.CreateChunks(strings.Join(pages, "\n"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	vectors, err := s.embedder.EmbedDocuments(ctx, chunks)
	if err != nil {
		return "", err
	}

	index, err := store.BuildIndex(vectors)
	if err != nil {
		return "", fmt.Errorf("%w: %v", types.ErrEmbeddingService, err)
	}

	id, err := s.sessions.Create(&store.Session{
		Filename: filename,
		Chunks:   chunks,
		Index:    index,
	}, preferredID)
	if err != nil {
		return "", err
	}

	s.logger.Info("document ingested",
		zap.String("session_id", id),
		zap.String("filename", filename),
		zap.Int("pages", len(pages)),
		zap.Int("chunks", len(chunks)))
	return id, nil
}

// Answer resolves the optional session id, retrieves context when it resolves,
// and synthesizes the reply. A missing or stale session id is not an error:
// the query degrades to general mode and the response echoes no session id.
func (s *RAGService) Answer(ctx context.Context, question, sessionID string) (*types.QueryResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var retrieved []types.RetrievedChunk
	echo := ""
	if sessionID != "" {
		sess, err := s.sessions.Get(sessionID)
		switch {
		case err == nil:
			retrieved, err = s.retrieve(ctx, sess, question)
			if err != nil {
				return nil, err
			}
			echo = sessionID
		case errors.Is(err, types.ErrSessionNotFound):
			s.logger.Info("session not found, answering in general mode",
				zap.String("session_id", sessionID))
		default:
			return nil, err
		}
	}

	answer, err := s.ai.Chat(ctx, buildPrompt(question, retrieved))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrSynthesis, err)
	}

	return &types.QueryResponse{
		Response:  AnswerPrefix + strings.TrimSpace(answer),
		SessionID: echo,
	}, nil
}

// Retrieve returns the top-k chunks of the session most similar to question.
// Exposed for the ask command's verbose output.
func (s *RAGService) Retrieve(ctx context.Context, sessionID, question string) ([]types.RetrievedChunk, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.retrieve(ctx, sess, question)
}

func (s *RAGService) retrieve(ctx context.Context, sess *store.Session, question string) ([]types.RetrievedChunk, error) {
	queryVec, err := s.embedder.EmbedQuery(ctx, question)
	if err != nil {
		return nil, err
	}
	hits := sess.Index.Search(queryVec, s.topK)
	retrieved := make([]types.RetrievedChunk, 0, len(hits))
	for _, hit := range hits {
		retrieved = append(retrieved, types.RetrievedChunk{
			Content: sess.Chunks[hit.Position],
			Score:   hit.Score,
		})
	}
	return retrieved, nil
}

// Delete removes the session. Idempotent at the API level: a second delete
// reports ErrSessionNotFound.
func (s *RAGService) Delete(sessionID string) error {
	return s.sessions.Delete(sessionID)
}

// List returns summaries of all live sessions.
func (s *RAGService) List() []types.SessionSummary {
	return s.sessions.List()
}

func buildPrompt(question string, retrieved []types.RetrievedChunk) string {
	var b strings.Builder
	b.WriteString(personaPrompt)
	b.WriteString("\n\n")
	if len(retrieved) > 0 {
		b.WriteString(contextInstruction)
		b.WriteString("\n\nContext:\n")
		for _, chunk := range retrieved {
			b.WriteString(chunk.Content)
			b.WriteString("\n\n")
		}
	}
	b.WriteString("Question: ")
	b.WriteString(question)
	b.WriteString("\nAnswer:")
	return b.String()
}
