// Package session holds the per-conversation state: history and caches.
// A session belongs to one user turn loop and is never shared between
// goroutines or persisted.
package session

import (
	"scanner-rag/internal/helper"
	"scanner-rag/internal/models"
)

type Session struct {
	ID      string
	History []models.ChatMessage

	// embedCache memoizes query embeddings by query text; responseCache
	// memoizes generated answers by md5(prompt+model). Neither is
	// invalidated within a session.
	embedCache    map[string][]float32
	responseCache map[string]string
}

func New() *Session {
	id, err := helper.GenerateUUID()
	if err != nil {
		id = "session"
	}
	return &Session{
		ID:            id,
		embedCache:    make(map[string][]float32),
		responseCache: make(map[string]string),
	}
}

func (s *Session) Append(msg models.ChatMessage) {
	s.History = append(s.History, msg)
}

func (s *Session) CachedEmbedding(query string) ([]float32, bool) {
	vec, ok := s.embedCache[query]
	return vec, ok
}

func (s *Session) CacheEmbedding(query string, vec []float32) {
	s.embedCache[query] = vec
}

func (s *Session) CachedResponse(key string) (string, bool) {
	resp, ok := s.responseCache[key]
	return resp, ok
}

func (s *Session) CacheResponse(key, response string) {
	s.responseCache[key] = response
}
