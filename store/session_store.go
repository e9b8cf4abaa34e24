package store

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/huduassist/huduassist-be/types"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const cleanupInterval = 10 * time.Minute

// Session binds a session id to one ingested document: its ordered chunks
// and the vector index built over their embeddings. Chunk i's embedding is
// entry i in the index. Sessions are never mutated after creation, so
// concurrent reads need no locking beyond the store's own mapping lock.
type Session struct {
	ID        string
	Filename  string
	Chunks    []string
	Index     *VectorIndex
	CreatedAt time.Time
}

// SessionStore is the process-wide session mapping. State lives in memory
// only: all sessions are lost on restart, which is a documented limitation.
// Sessions older than the TTL are evicted in the background.
type SessionStore struct {
	cache  *gocache.Cache
	logger *zap.Logger
}

func NewSessionStore(ttl time.Duration, logger *zap.Logger) *SessionStore {
	interval := cleanupInterval
	if ttl <= 0 {
		ttl = gocache.NoExpiration
		interval = 0
	}
	return &SessionStore{
		cache:  gocache.New(ttl, interval),
		logger: logger,
	}
}

// Create stores the session under a fresh random id, or under preferredID
// when the caller supplies one. A preferred id colliding with a live session
// fails with ErrDuplicateSession; nothing is stored in that case.
func (s *SessionStore) Create(sess *Session, preferredID string) (string, error) {
	id := preferredID
	if id == "" {
		id = uuid.NewString()
	}
	sess.ID = id
	sess.CreatedAt = time.Now()
	// Add is atomic, so a concurrent create with the same id cannot clobber
	// an existing session.
	if err := s.cache.Add(id, sess, gocache.DefaultExpiration); err != nil {
		return "", fmt.Errorf("%w: %s", types.ErrDuplicateSession, id)
	}
	s.logger.Info("session created",
		zap.String("session_id", id),
		zap.String("filename", sess.Filename),
		zap.Int("chunks", len(sess.Chunks)))
	return id, nil
}

func (s *SessionStore) Get(id string) (*Session, error) {
	v, ok := s.cache.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", types.ErrSessionNotFound, id)
	}
	return v.(*Session), nil
}

// Delete removes the session. Deleting an unknown or already-deleted id
// returns ErrSessionNotFound; it is never a crash.
func (s *SessionStore) Delete(id string) error {
	if _, ok := s.cache.Get(id); !ok {
		return fmt.Errorf("%w: %s", types.ErrSessionNotFound, id)
	}
	s.cache.Delete(id)
	s.logger.Info("session deleted", zap.String("session_id", id))
	return nil
}

// List returns summaries of all live sessions, oldest first. Debugging only.
func (s *SessionStore) List() []types.SessionSummary {
	items := s.cache.Items()
	summaries := make([]types.SessionSummary, 0, len(items))
	for _, item := range items {
		sess := item.Object.(*Session)
		summaries = append(summaries, types.SessionSummary{
			SessionID: sess.ID,
			Filename:  sess.Filename,
			Chunks:    len(sess.Chunks),
			CreatedAt: sess.CreatedAt.Unix(),
		})
	}
	sort.Slice(summaries, func(a, b int) bool {
		if summaries[a].CreatedAt != summaries[b].CreatedAt {
			return summaries[a].CreatedAt < summaries[b].CreatedAt
		}
		return summaries[a].SessionID < summaries[b].SessionID
	})
	return summaries
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int { return s.cache.ItemCount() }
