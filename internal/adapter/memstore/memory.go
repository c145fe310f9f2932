package memstore

import (
	"fmt"
	"sort"
	"sync"

	"syllabus/internal/domain"
)

// MemoryStore is an in-memory CollectionStore used by tests and one-shot
// checks that never touch disk.
type MemoryStore struct {
	mu    sync.RWMutex
	units map[string]domain.Unit
	order []string
	stats domain.Stats
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		units: make(map[string]domain.Unit),
	}
}

func (s *MemoryStore) PutUnit(unit domain.Unit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.units[unit.Slug] = unit
	return nil
}

func (s *MemoryStore) GetUnit(slug string) (domain.Unit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	unit, ok := s.units[slug]
	if !ok {
		return domain.Unit{}, fmt.Errorf("unit not found: %s", slug)
	}
	return unit, nil
}

func (s *MemoryStore) DeleteUnit(slug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.units, slug)
	return nil
}

func (s *MemoryStore) ListUnits() ([]domain.Unit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	units := make([]domain.Unit, 0, len(s.units))
	for _, u := range s.units {
		u.Body = ""
		units = append(units, u)
	}
	sort.Slice(units, func(i, j int) bool {
		return units[i].Position < units[j].Position
	})
	return units, nil
}

func (s *MemoryStore) PutOrder(slugs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = append([]string(nil), slugs...)
	return nil
}

func (s *MemoryStore) GetOrder() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.order...), nil
}

func (s *MemoryStore) GetStats() (domain.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats, nil
}

func (s *MemoryStore) UpdateStats(stats domain.Stats) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats = stats
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.units = make(map[string]domain.Unit)
	s.order = nil
	s.stats = domain.Stats{}
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
