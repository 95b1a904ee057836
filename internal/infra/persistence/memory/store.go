// Package memory provides an in-memory snapshot store used for tests and
// ephemeral environments.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"beamcore/pkg/domain"
)

// Compile-time contract assertion.
var _ domain.Store = (*Store)(nil)

// Store keeps encoded snapshots in process memory. Snapshots are stored as
// their JSON encoding so loads return values isolated from the caller's.
type Store struct {
	mu    sync.RWMutex
	lists map[string][]byte
}

// New constructs an empty in-memory store.
func New() *Store {
	return &Store{lists: make(map[string][]byte)}
}

// SaveList writes the snapshot under id, replacing any previous one.
func (s *Store) SaveList(_ context.Context, id string, snap domain.Snapshot) error {
	if id == "" {
		return fmt.Errorf("empty list id")
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	s.mu.Lock()
	s.lists[id] = data
	s.mu.Unlock()
	return nil
}

// LoadList reads the snapshot stored under id.
func (s *Store) LoadList(_ context.Context, id string) (domain.Snapshot, bool, error) {
	s.mu.RLock()
	data, ok := s.lists[id]
	s.mu.RUnlock()
	if !ok {
		return domain.Snapshot{}, false, nil
	}
	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return domain.Snapshot{}, false, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, true, nil
}

// ListIDs returns the stored ids in ascending order.
func (s *Store) ListIDs(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.lists))
	for id := range s.lists {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}

// DeleteList removes the snapshot stored under id.
func (s *Store) DeleteList(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.lists[id]; !ok {
		return false, nil
	}
	delete(s.lists, id)
	return true, nil
}
