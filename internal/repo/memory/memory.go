package memory

import (
	"context"
	"sync"

	"github.com/soul23/healthchecker/internal/domain"
)

// Store holds the most recent report in process memory.
type Store struct {
	mu     sync.RWMutex
	latest domain.Report
	has    bool
}

func New() *Store {
	return &Store{}
}

func (m *Store) Put(ctx context.Context, r domain.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	// a slower run finishing late must not replace a newer report
	if m.has && r.Timestamp.Before(m.latest.Timestamp) {
		return nil
	}
	m.latest = r
	m.has = true
	return nil
}

func (m *Store) Latest(ctx context.Context) (domain.Report, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.latest, m.has, nil
}
