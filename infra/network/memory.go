package network

import (
	"context"
	"sync"

	"github.com/kilianp07/infrasavings/core/model"
)

// MemoryStore keeps networks in memory for testing or dry runs.
type MemoryStore struct {
	mu   sync.RWMutex
	nets map[model.NetworkKey]*model.NetworkResult
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nets: map[model.NetworkKey]*model.NetworkResult{}}
}

// Save stores n under key, replacing any previous entry.
func (s *MemoryStore) Save(_ context.Context, key model.NetworkKey, n *model.NetworkResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *n
	cp.Key = key
	s.nets[key] = &cp
	return nil
}

// Load returns the network for key or nil.
func (s *MemoryStore) Load(_ context.Context, key model.NetworkKey) (*model.NetworkResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nets[key], nil
}
