package assistant

import (
	"fmt"
	"sync"

	appointmentRepo "voicebook/database/repository/appointment"
	"voicebook/services/scheduling"
	"voicebook/services/summary"
)

// Manager tracks the live conversations of this process, one Assistant per
// session id. The realtime transport opens a session when a call connects
// and closes it when the call drops.
type Manager struct {
	Engine  scheduling.Engine
	Repo    appointmentRepo.AppointmentRepository
	Summary *summary.Publisher
	Speaker Speaker

	mu       sync.Mutex
	sessions map[string]*Assistant
}

func NewManager(engine scheduling.Engine, repo appointmentRepo.AppointmentRepository, pub *summary.Publisher) *Manager {
	return &Manager{
		Engine:   engine,
		Repo:     repo,
		Summary:  pub,
		sessions: make(map[string]*Assistant),
	}
}

// Open starts a conversation under the given id. Opening an id that is
// already live is an error; ids are minted per call.
func (m *Manager) Open(id string) (*Assistant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[id]; exists {
		return nil, fmt.Errorf("session %s is already open", id)
	}

	a := NewAssistant(m.Engine, m.Repo, m.Summary, m.Speaker)
	a.OnClose = func() {
		m.mu.Lock()
		delete(m.sessions, id)
		m.mu.Unlock()
	}
	m.sessions[id] = a
	return a, nil
}

// Get returns the live assistant for id, if any.
func (m *Manager) Get(id string) (*Assistant, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.sessions[id]
	return a, ok
}

// Close tears down the conversation with the given id immediately.
func (m *Manager) Close(id string) bool {
	m.mu.Lock()
	a, ok := m.sessions[id]
	m.mu.Unlock()
	if !ok {
		return false
	}
	a.Close()
	return true
}

// Live reports how many conversations are currently open.
func (m *Manager) Live() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
