package sessions

import (
	"context"
	"errors"
	"sync"
	"time"

	"shipment-tracker-web/internal/domain"
)

// MemorySessionStore keeps sessions in process memory. Sessions are lost on
// restart; suitable for a single instance.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]domain.Session)}
}

func (m *MemorySessionStore) Create(ctx context.Context, s *domain.Session) error {
	if s == nil || s.ID == "" {
		return errors.New("create session: id must not be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = *s
	return nil
}

func (m *MemorySessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if s.Expired(time.Now()) {
		_ = m.Delete(ctx, id)
		return nil, nil
	}
	return &s, nil
}

func (m *MemorySessionStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
