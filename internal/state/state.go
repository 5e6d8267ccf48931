// Package state provides thread-safe ownership of the current entity set.
// The fetch loop writes batches here; the UI reads consistent snapshots.
package state

import (
	"sync"
	"time"

	"github.com/litescript/ls-starfield/internal/scene"
)

// Snapshot is a consistent read of the current application state.
type Snapshot struct {
	Entities []scene.StarEntity
	Dropped  int // records dropped by validation or estimation in the last batch
	Batch    uint64

	LastFetch     time.Time
	LastError     error
	FetchDuration time.Duration
	NextRefresh   time.Time
}

// Manager handles shared application state with thread-safe access. Entity
// sets are replaced wholesale, never patched: a reader either sees the old
// batch or the new one, complete.
type Manager struct {
	mu sync.RWMutex

	entities []scene.StarEntity
	dropped  int
	batch    uint64 // increments on every Replace, so consumers can detect swaps

	lastFetch     time.Time
	lastError     error
	fetchDuration time.Duration

	refreshInterval time.Duration
}

// Config holds configuration for the state manager.
type Config struct {
	RefreshInterval time.Duration
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		RefreshInterval: 5 * time.Minute,
	}
}

// NewManager creates a new state manager.
func NewManager(cfg Config) *Manager {
	return &Manager{
		refreshInterval: cfg.RefreshInterval,
	}
}

// Replace atomically swaps in a fresh entity batch. In-flight camera and
// selection state is the UI's concern; it watches the batch counter and
// resets itself on change.
func (m *Manager) Replace(entities []scene.StarEntity, dropped int, fetchDuration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entities = entities
	m.dropped = dropped
	m.batch++
	m.lastFetch = time.Now()
	m.lastError = nil
	m.fetchDuration = fetchDuration
}

// SetError records a failed fetch without touching the current entity set.
func (m *Manager) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastFetch = time.Now()
	m.lastError = err
}

// Snapshot returns a consistent copy of the current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return Snapshot{
		Entities:      m.entities,
		Dropped:       m.dropped,
		Batch:         m.batch,
		LastFetch:     m.lastFetch,
		LastError:     m.lastError,
		FetchDuration: m.fetchDuration,
		NextRefresh:   m.lastFetch.Add(m.refreshInterval),
	}
}

// RefreshInterval returns the configured refresh interval.
func (m *Manager) RefreshInterval() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refreshInterval
}
