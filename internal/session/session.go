// Package session owns the visitor's bearer token for the scoring API.
// Consumers take a *Manager explicitly instead of reading session keys
// themselves, and can subscribe to token changes (login, logout, forced
// clear on an upstream 401).
package session

import (
	"sync"

	"github.com/gin-gonic/gin"

	"bandly/internal/statestore"
)

// ChangeListener is invoked after the token changes. The new token is
// empty when the session was cleared.
type ChangeListener func(c *gin.Context, token string)

// Manager reads and writes the visitor's bearer token through the
// session state store and notifies subscribers of changes.
type Manager struct {
	store *statestore.Store

	mu        sync.RWMutex
	listeners []ChangeListener
}

// NewManager creates a Manager backed by the given state store.
func NewManager(store *statestore.Store) *Manager {
	return &Manager{store: store}
}

// Token returns the current bearer token, or ("", false) when the
// visitor is not authenticated.
func (m *Manager) Token(c *gin.Context) (string, bool) {
	token, ok := m.store.GetString(c, statestore.KeyToken)
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

// SetToken stores a new bearer token and notifies subscribers.
func (m *Manager) SetToken(c *gin.Context, token string) {
	m.store.PutString(c, statestore.KeyToken, token)
	m.notify(c, token)
}

// Clear removes the bearer token and notifies subscribers with an
// empty token.
func (m *Manager) Clear(c *gin.Context) {
	m.store.Delete(c, statestore.KeyToken)
	m.notify(c, "")
}

// Subscribe registers a listener invoked on every token change.
// Listeners run synchronously in registration order on the goroutine
// that changed the token.
func (m *Manager) Subscribe(fn ChangeListener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

func (m *Manager) notify(c *gin.Context, token string) {
	m.mu.RLock()
	listeners := make([]ChangeListener, len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.RUnlock()

	for _, fn := range listeners {
		fn(c, token)
	}
}
