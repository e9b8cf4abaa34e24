package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/huduassist/huduassist-be/store"
	"github.com/huduassist/huduassist-be/types"
)

// stubLoader returns canned pages and chunks one chunk per line.
type stubLoader struct {
	pages    []string
	pagesErr error
}

func (l *stubLoader) ExtractPages(string) ([]string, error) {
	if l.pagesErr != nil {
		return nil, l.pagesErr
	}
	return l.pages, nil
}

func (l *stubLoader) CreateChunks(text string) ([]string, error) {
	var chunks []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			chunks = append(chunks, line)
		}
	}
	if len(chunks) == 0 {
		return nil, types.ErrEmptyDocument
	}
	return chunks, nil
}

// stubEmbedder produces keyword-presence vectors so similarity ranking is
// predictable in tests.
type stubEmbedder struct {
	failDocs  bool
	failQuery bool
}

var stubKeywords = []string{"passport", "visa", "tax", "county"}

func stubVector(text string) []float32 {
	v := make([]float32, len(stubKeywords)+1)
	lower := strings.ToLower(text)
	for i, kw := range stubKeywords {
		if strings.Contains(lower, kw) {
			v[i] = 1
		}
	}
	v[len(stubKeywords)] = 0.1
	return v
}

func (e *stubEmbedder) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	if e.failDocs {
		return nil, fmt.Errorf("%w: quota exceeded", types.ErrEmbeddingService)
	}
	vectors := make([][]float32, len(texts))
	for i, t := range texts {
		vectors[i] = stubVector(t)
	}
	return vectors, nil
}

func (e *stubEmbedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	if e.failQuery {
		return nil, fmt.Errorf("%w: quota exceeded", types.ErrEmbeddingService)
	}
	return stubVector(text), nil
}

// stubAI records prompts and returns a fixed completion.
type stubAI struct {
	prompts []string
	reply   string
	err     error
}

func (a *stubAI) Chat(_ context.Context, prompt string) (string, error) {
	a.prompts = append(a.prompts, prompt)
	if a.err != nil {
		return "", a.err
	}
	if a.reply == "" {
		return "stub answer", nil
	}
	return a.reply, nil
}

type ragFixture struct {
	loader   *stubLoader
	embedder *stubEmbedder
	ai       *stubAI
	sessions *store.SessionStore
	rag      *RAGService
}

func newRAGFixture(t *testing.T, pages ...string) *ragFixture {
	t.Helper()
	f := &ragFixture{
		loader:   &stubLoader{pages: pages},
		embedder: &stubEmbedder{},
		ai:       &stubAI{},
		sessions: store.NewSessionStore(0, zap.NewNop()),
	}
	f.rag = NewRAGService(f.loader, f.embedder, f.ai, f.sessions, 2, 0, zap.NewNop())
	return f
}

func TestAnswerGeneralModeWithoutSession(t *testing.T) {
	f := newRAGFixture(t)

	resp, err := f.rag.Answer(context.Background(), "How do I apply for a passport in Kenya?", "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.Response, AnswerPrefix))
	assert.NotEqual(t, AnswerPrefix, resp.Response)
	assert.Empty(t, resp.SessionID)

	require.Len(t, f.ai.prompts, 1)
	assert.NotContains(t, f.ai.prompts[0], "Context:")
	assert.Contains(t, f.ai.prompts[0], "How do I apply for a passport in Kenya?")
}

func TestAnswerFallsBackOnUnknownSession(t *testing.T) {
	f := newRAGFixture(t)

	resp, err := f.rag.Answer(context.Background(), "what is the tax rate", "no-such-session")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.Response, AnswerPrefix))
	assert.Empty(t, resp.SessionID, "stale session id must not be echoed")
}

func TestAnswerUsesRetrievedContext(t *testing.T) {
	f := newRAGFixture(t,
		"page one covers visa requirements for travel",
		"passport application fee is 50 dollars at huduma centre",
		"page three explains county tax bands",
	)

	id, err := f.rag.Ingest(context.Background(), "doc.pdf", "doc.pdf", "")
	require.NoError(t, err)

	resp, err := f.rag.Answer(context.Background(), "how much is a passport?", id)
	require.NoError(t, err)
	assert.Equal(t, id, resp.SessionID)
	assert.True(t, strings.HasPrefix(resp.Response, AnswerPrefix))

	require.Len(t, f.ai.prompts, 1)
	assert.Contains(t, f.ai.prompts[0], "Context:")
	assert.Contains(t, f.ai.prompts[0], "passport application fee is 50 dollars")
}

func TestSessionIsolation(t *testing.T) {
	f := newRAGFixture(t, "passport renewals take ten days")
	idA, err := f.rag.Ingest(context.Background(), "a.pdf", "a.pdf", "")
	require.NoError(t, err)

	f.loader.pages = []string{"visa on arrival was abolished in 2024"}
	idB, err := f.rag.Ingest(context.Background(), "b.pdf", "b.pdf", "")
	require.NoError(t, err)
	require.NotEqual(t, idA, idB)

	// Even a question about B's topic only surfaces A's chunks for session A.
	_, err = f.rag.Answer(context.Background(), "do I need a visa?", idA)
	require.NoError(t, err)
	require.Len(t, f.ai.prompts, 1)
	assert.Contains(t, f.ai.prompts[0], "passport renewals take ten days")
	assert.NotContains(t, f.ai.prompts[0], "visa on arrival was abolished")
}

func TestIngestEmbeddingFailureLeavesNoSession(t *testing.T) {
	f := newRAGFixture(t, "some page text")
	f.embedder.failDocs = true

	_, err := f.rag.Ingest(context.Background(), "doc.pdf", "doc.pdf", "")
	assert.ErrorIs(t, err, types.ErrEmbeddingService)
	assert.Equal(t, 0, f.sessions.Len(), "failed ingest must not leave a partial session")
}

func TestIngestUnreadableDocument(t *testing.T) {
	f := newRAGFixture(t)
	f.loader.pagesErr = fmt.Errorf("%w: encrypted", types.ErrUnreadableDocument)

	_, err := f.rag.Ingest(context.Background(), "doc.pdf", "doc.pdf", "")
	assert.ErrorIs(t, err, types.ErrUnreadableDocument)
	assert.Equal(t, 0, f.sessions.Len())
}

func TestIngestEmptyDocument(t *testing.T) {
	f := newRAGFixture(t, "   ")

	_, err := f.rag.Ingest(context.Background(), "doc.pdf", "doc.pdf", "")
	assert.ErrorIs(t, err, types.ErrEmptyDocument)
	assert.Equal(t, 0, f.sessions.Len())
}

func TestIngestDuplicatePreferredID(t *testing.T) {
	f := newRAGFixture(t, "passport info")

	_, err := f.rag.Ingest(context.Background(), "doc.pdf", "doc.pdf", "mine")
	require.NoError(t, err)

	_, err = f.rag.Ingest(context.Background(), "doc.pdf", "doc.pdf", "mine")
	assert.ErrorIs(t, err, types.ErrDuplicateSession)
}

func TestQueryAfterDeleteFallsBack(t *testing.T) {
	f := newRAGFixture(t, "passport office hours are 8am to 5pm")

	id, err := f.rag.Ingest(context.Background(), "doc.pdf", "doc.pdf", "")
	require.NoError(t, err)
	require.NoError(t, f.rag.Delete(id))

	resp, err := f.rag.Answer(context.Background(), "when is the office open?", id)
	require.NoError(t, err)
	assert.Empty(t, resp.SessionID)
	require.Len(t, f.ai.prompts, 1)
	assert.NotContains(t, f.ai.prompts[0], "Context:")
}

func TestDeleteIsIdempotentAtServiceLevel(t *testing.T) {
	f := newRAGFixture(t, "passport info")

	id, err := f.rag.Ingest(context.Background(), "doc.pdf", "doc.pdf", "")
	require.NoError(t, err)

	require.NoError(t, f.rag.Delete(id))
	assert.ErrorIs(t, f.rag.Delete(id), types.ErrSessionNotFound)
}

func TestSynthesisErrorPropagates(t *testing.T) {
	f := newRAGFixture(t)
	f.ai.err = fmt.Errorf("model overloaded")

	_, err := f.rag.Answer(context.Background(), "anything", "")
	assert.ErrorIs(t, err, types.ErrSynthesis)
}

func TestEmbeddingErrorOnQueryPropagates(t *testing.T) {
	f := newRAGFixture(t, "passport info")
	id, err := f.rag.Ingest(context.Background(), "doc.pdf", "doc.pdf", "")
	require.NoError(t, err)

	f.embedder.failQuery = true
	_, err = f.rag.Answer(context.Background(), "question", id)
	assert.ErrorIs(t, err, types.ErrEmbeddingService)
}
