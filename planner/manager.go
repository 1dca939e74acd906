package planner

import "sync"

// Manager hands out one Planner per user, wired to that user's sink.
type Manager struct {
	mu       sync.Mutex
	gateway  Gateway
	planners map[string]*Planner
}

func NewManager(gw Gateway) *Manager {
	return &Manager{gateway: gw, planners: make(map[string]*Planner)}
}

func (m *Manager) ForUser(userID string, sink Sink) *Planner {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.planners[userID]
	if !ok {
		p = New(m.gateway, sink)
		m.planners[userID] = p
	}
	return p
}
