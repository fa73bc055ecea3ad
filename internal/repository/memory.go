package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// memorySession stores encoded sessions so callers never share a pointer with the store.
type memorySession struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemorySessionRepository(ttl time.Duration) SessionRepository {
	return newMemorySessionRepository(ttl, time.Now)
}

func newMemorySessionRepository(ttl time.Duration, now func() time.Time) *memorySession {
	return &memorySession{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     now,
	}
}

func (that *memorySession) CreateOrUpdate(_ context.Context, session *entity.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("could not marshal session: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	that.evictExpired()
	that.entries[session.ID] = memoryEntry{
		data:      data,
		expiresAt: that.now().Add(that.ttl),
	}

	return nil
}

func (that *memorySession) GetByID(_ context.Context, id string) (*entity.Session, error) {
	that.mu.RLock()
	entry, ok := that.entries[id]
	that.mu.RUnlock()

	if !ok || !that.now().Before(entry.expiresAt) {
		return nil, apperror.ErrSessionNotFound
	}

	var existingSession entity.Session
	if err := json.Unmarshal(entry.data, &existingSession); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &existingSession, nil
}

func (that *memorySession) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	entry, ok := that.entries[id]
	if !ok || !that.now().Before(entry.expiresAt) {
		delete(that.entries, id)
		return apperror.ErrSessionNotFound
	}

	delete(that.entries, id)

	return nil
}

func (that *memorySession) Ping(context.Context) error {
	return nil
}

// evictExpired must be called with the write lock held.
func (that *memorySession) evictExpired() {
	now := that.now()
	for id, entry := range that.entries {
		if !now.Before(entry.expiresAt) {
			delete(that.entries, id)
		}
	}
}
