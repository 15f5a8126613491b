package session

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrUnsupported   = errors.New("session: immersive mode not supported")
	ErrSessionActive = errors.New("session: immersive session already active")
	ErrNoSession     = errors.New("session: no active immersive session")
)

// ID identifies one immersive session.
type ID = uuid.UUID

// Manager tracks the immersive session lifecycle and delivers the "started" and
// "ended" signals. Listeners run synchronously on the caller's goroutine in the
// order they were added. Not safe for concurrent use.
type Manager struct {
	supported bool
	active    bool
	id        ID
	onStart   []func(ID)
	onEnd     []func(ID)
}

// NewManager returns an idle manager. When supported is false every Request fails
// with ErrUnsupported.
func NewManager(supported bool) *Manager {
	return &Manager{supported: supported}
}

// Supported reports whether immersive sessions can be requested.
func (m *Manager) Supported() bool {
	return m.supported
}

// Active reports whether a session is running.
func (m *Manager) Active() bool {
	return m.active
}

// ID returns the running session's ID, or uuid.Nil when idle.
func (m *Manager) ID() ID {
	if !m.active {
		return uuid.Nil
	}
	return m.id
}

// OnStart adds a listener for the "session started" signal.
func (m *Manager) OnStart(fn func(ID)) {
	m.onStart = append(m.onStart, fn)
}

// OnEnd adds a listener for the "session ended" signal.
func (m *Manager) OnEnd(fn func(ID)) {
	m.onEnd = append(m.onEnd, fn)
}

// Request starts a new session and fires the started listeners.
func (m *Manager) Request() (ID, error) {
	if !m.supported {
		return uuid.Nil, ErrUnsupported
	}
	if m.active {
		return m.id, ErrSessionActive
	}
	m.id = uuid.New()
	m.active = true
	for _, fn := range m.onStart {
		fn(m.id)
	}
	return m.id, nil
}

// End stops the running session and fires the ended listeners.
func (m *Manager) End() error {
	if !m.active {
		return ErrNoSession
	}
	id := m.id
	m.active = false
	for _, fn := range m.onEnd {
		fn(id)
	}
	return nil
}

// Toggle ends a running session or requests a new one.
func (m *Manager) Toggle() error {
	if m.active {
		return m.End()
	}
	_, err := m.Request()
	return err
}
