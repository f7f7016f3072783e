package server

import (
	"errors"
	"sync"

	"draughts/engine"

	"github.com/google/uuid"
)

var ErrUnknownGame = errors.New("game not found")

// Manager holds the running sessions by id.
type Manager struct {
	sessions map[uuid.UUID]*engine.Session
	mu       sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[uuid.UUID]*engine.Session)}
}

func (m *Manager) Add(s *engine.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
}

func (m *Manager) Get(id string) (*engine.Session, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrUnknownGame
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[parsed]
	if !ok {
		return nil, ErrUnknownGame
	}
	return s, nil
}

func (m *Manager) Remove(id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return ErrUnknownGame
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[parsed]; !ok {
		return ErrUnknownGame
	}
	delete(m.sessions, parsed)
	return nil
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
