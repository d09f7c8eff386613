package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/jungle-hr/pulse-match-service/internal/models"
)

// MemoryStore is the in-process session slot used in demo mode and tests.
// Values are stored serialized, same as the Redis store, so malformed-data
// handling takes the same path.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
	}
}

func (s *MemoryStore) Get(_ context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrNoSession
	}

	s.mu.RLock()
	entry, ok := s.entries[token]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrNoSession
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, token)
		s.mu.Unlock()
		return nil, ErrNoSession
	}

	var user models.User
	if err := json.Unmarshal(entry.data, &user); err != nil {
		s.mu.Lock()
		delete(s.entries, token)
		s.mu.Unlock()
		return nil, ErrNoSession
	}
	if !user.Role.IsValid() {
		return nil, ErrNoSession
	}

	return &user, nil
}

func (s *MemoryStore) Set(_ context.Context, token string, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	var expiresAt time.Time
	if s.ttl > 0 {
		expiresAt = time.Now().Add(s.ttl)
	}

	s.mu.Lock()
	s.entries[token] = memoryEntry{data: data, expiresAt: expiresAt}
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, token string) error {
	s.mu.Lock()
	delete(s.entries, token)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }

// SetRaw stores raw bytes under a token, bypassing serialization. Used by
// tests to simulate a corrupt slot.
func (s *MemoryStore) SetRaw(token string, data []byte) {
	s.mu.Lock()
	s.entries[token] = memoryEntry{data: data}
	s.mu.Unlock()
}
