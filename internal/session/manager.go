// Package session keeps one upload form per browser session.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"pdf-upload-form/internal/domain"
	"pdf-upload-form/internal/uploadform"
)

// FormFactory mounts a fresh form.
type FormFactory func() *uploadform.Form

// Manager owns the mounted forms, keyed by session ID.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	newForm  FormFactory
	ttl      time.Duration
	now      func() time.Time
	logger   domain.Logger
}

type entry struct {
	form         *uploadform.Form
	lastAccessed time.Time
}

// NewManager creates a manager that discards forms idle for longer than ttl.
func NewManager(newForm FormFactory, ttl time.Duration, logger domain.Logger) *Manager {
	return &Manager{
		sessions: make(map[string]*entry),
		newForm:  newForm,
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
	}
}

// Create mounts a new form under a fresh session ID.
func (m *Manager) Create() (string, *uploadform.Form) {
	id := uuid.New().String()
	form := m.newForm()

	m.mu.Lock()
	m.sessions[id] = &entry{form: form, lastAccessed: m.now()}
	m.mu.Unlock()

	m.logger.Debug("Form mounted", "session", id)
	return id, form
}

// Get returns the form for id and marks the session as used.
func (m *Manager) Get(id string) (*uploadform.Form, bool) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, false
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	e.lastAccessed = m.now()
	return e.form, true
}

// GetOrCreate returns the form for id, mounting a new session when id is unknown.
func (m *Manager) GetOrCreate(id string) (string, *uploadform.Form, bool) {
	if form, ok := m.Get(id); ok {
		return id, form, false
	}
	newID, form := m.Create()
	return newID, form, true
}

// Reset remounts the form for id. A submission still running on the old form
// settles into the discarded instance.
func (m *Manager) Reset(id string) (*uploadform.Form, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	e.form = m.newForm()
	e.lastAccessed = m.now()
	m.logger.Debug("Form remounted", "session", id)
	return e.form, nil
}

// Len returns the number of mounted forms.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// ExpireIdle unmounts forms idle for longer than the TTL. Forms with an
// upload in flight are kept.
func (m *Manager) ExpireIdle() int {
	cutoff := m.now().Add(-m.ttl)

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, e := range m.sessions {
		if e.lastAccessed.After(cutoff) {
			continue
		}
		if e.form.State().IsUploading {
			continue
		}
		delete(m.sessions, id)
		removed++
	}
	return removed
}

// Run expires idle forms every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := m.ExpireIdle(); n > 0 {
				m.logger.Info("Expired idle forms", "count", n, "remaining", m.Len())
			}
		}
	}
}
