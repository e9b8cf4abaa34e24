package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/huduassist/huduassist-be/service"
	"github.com/huduassist/huduassist-be/store"
	"github.com/huduassist/huduassist-be/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeLoader struct {
	pages []string
}

func (l *fakeLoader) ExtractPages(string) ([]string, error) {
	return l.pages, nil
}

func (l *fakeLoader) CreateChunks(text string) ([]string, error) {
	chunks := strings.Split(strings.TrimSpace(text), "\n")
	if len(chunks) == 1 && chunks[0] == "" {
		return nil, types.ErrEmptyDocument
	}
	return chunks, nil
}

type fakeEmbedder struct{}

func (fakeEmbedder) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = []float32{1, float32(i)}
	}
	return vectors, nil
}

func (fakeEmbedder) EmbedQuery(context.Context, string) ([]float32, error) {
	return []float32{1, 0}, nil
}

type fakeAI struct {
	err error
}

func (a *fakeAI) Chat(context.Context, string) (string, error) {
	if a.err != nil {
		return "", a.err
	}
	return "the fee is 50 dollars", nil
}

type testServer struct {
	router   *gin.Engine
	rag      *service.RAGService
	sessions *store.SessionStore
	ai       *fakeAI
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	sessions := store.NewSessionStore(0, zap.NewNop())
	ai := &fakeAI{}
	rag := service.NewRAGService(
		&fakeLoader{pages: []string{"passport fees"}},
		fakeEmbedder{},
		ai,
		sessions,
		5, 0, zap.NewNop(),
	)

	router := gin.New()
	queryHandler := NewQueryHandler(rag)
	sessionHandler := NewSessionHandler(rag)
	router.POST("/api/v1/query", queryHandler.HandleQuery)
	router.DELETE("/api/v1/session/:id", sessionHandler.HandleDelete)
	router.GET("/api/v1/sessions", sessionHandler.HandleList)

	return &testServer{router: router, rag: rag, sessions: sessions, ai: ai}
}

func (ts *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func mustIngest(t *testing.T, ts *testServer) string {
	t.Helper()
	id, err := ts.rag.Ingest(context.Background(), "doc.pdf", "doc.pdf", "")
	require.NoError(t, err)
	return id
}
