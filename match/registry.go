package match

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Registry stores live matches by id.
type Registry interface {
	Put(m *Match)
	Get(id uuid.UUID) (*Match, error)
	Delete(id uuid.UUID)
	List() []*Match
	// Sweep removes matches that have been idle longer than idle and returns their ids.
	Sweep(idle time.Duration, now time.Time) []uuid.UUID
}

type MemoryRegistry struct {
	matches map[uuid.UUID]*Match
	mu      sync.RWMutex
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{matches: make(map[uuid.UUID]*Match)}
}

func (r *MemoryRegistry) Put(m *Match) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.matches[m.ID] = m
}

func (r *MemoryRegistry) Get(id uuid.UUID) (*Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.matches[id]
	if !ok {
		return nil, ErrNotFound
	}
	return m, nil
}

func (r *MemoryRegistry) Delete(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.matches, id)
}

func (r *MemoryRegistry) List() []*Match {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Match, 0, len(r.matches))
	for _, m := range r.matches {
		out = append(out, m)
	}
	return out
}

func (r *MemoryRegistry) Sweep(idle time.Duration, now time.Time) []uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()
	var removed []uuid.UUID
	for id, m := range r.matches {
		if m.Idle(now, idle) {
			delete(r.matches, id)
			removed = append(removed, id)
		}
	}
	if len(removed) > 0 {
		log.Info().Int("count", len(removed)).Msg("Swept idle matches")
	}
	return removed
}
