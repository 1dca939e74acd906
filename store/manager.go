package store

import "sync"

// Manager hands out one Store per user, creating it on first use.
// Store lifetime matches the process; there is no eviction.
type Manager struct {
	mu     sync.Mutex
	stores map[string]*Store
}

func NewManager() *Manager {
	return &Manager{stores: make(map[string]*Store)}
}

func (m *Manager) ForUser(userID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.stores[userID]
	if !ok {
		s = New()
		m.stores[userID] = s
	}
	return s
}
