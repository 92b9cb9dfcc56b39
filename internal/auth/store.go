package auth

import (
	"context"
	"errors"
	"sync"

	"github.com/R3E-Network/wallet_layer/internal/api"
)

// ErrSessionNotFound is returned when no session is stored for a domain.
var ErrSessionNotFound = errors.New("session not found")

// Store persists one session per backend domain.
// Implementations: Redis (shared), YAML file (CLI), in-memory (test).
type Store interface {
	// Get returns the stored session or ErrSessionNotFound.
	Get(ctx context.Context, domain api.Domain) (api.Session, error)
	// Put replaces the session for domain.
	Put(ctx context.Context, domain api.Domain, session api.Session) error
	// Delete removes the session for domain. Deleting a missing session is not an error.
	Delete(ctx context.Context, domain api.Domain) error
	// DeleteAll removes every stored session.
	DeleteAll(ctx context.Context) error
}

// MemoryStore keeps sessions in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[api.Domain]api.Session
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[api.Domain]api.Session)}
}

// Get returns the stored session.
func (m *MemoryStore) Get(_ context.Context, domain api.Domain) (api.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[domain]
	if !ok {
		return api.Session{}, ErrSessionNotFound
	}
	return s, nil
}

// Put stores session for domain.
func (m *MemoryStore) Put(_ context.Context, domain api.Domain, session api.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[domain] = session
	return nil
}

// Delete removes the session for domain.
func (m *MemoryStore) Delete(_ context.Context, domain api.Domain) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, domain)
	return nil
}

// DeleteAll removes every session.
func (m *MemoryStore) DeleteAll(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions = make(map[api.Domain]api.Session)
	return nil
}
