package store

import (
	"context"
	"sync"
)

// MemStore is an in-memory KV used in tests as a stand-in for Redis.
// It mirrors the adapter contract exactly, including the removal
// indicator on Delete.
type MemStore struct {
	mu   sync.RWMutex
	data map[string]string

	// FailWith, when set, is returned by every call. Tests use it to
	// simulate an unreachable store.
	FailWith error
}

var _ KV = (*MemStore)(nil)

// NewMemStore returns an empty in-memory store
func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string]string)}
}

func (s *MemStore) Get(ctx context.Context, key string) (string, bool, error) {
	if s.FailWith != nil {
		return "", false, s.FailWith
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.data[key]
	return val, ok, nil
}

func (s *MemStore) Set(ctx context.Context, key, value string) error {
	if s.FailWith != nil {
		return s.FailWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *MemStore) SetNX(ctx context.Context, key, value string) (bool, error) {
	if s.FailWith != nil {
		return false, s.FailWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[key]; ok {
		return false, nil
	}
	s.data[key] = value
	return true, nil
}

func (s *MemStore) Exists(ctx context.Context, key string) (bool, error) {
	if s.FailWith != nil {
		return false, s.FailWith
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.data[key]
	return ok, nil
}

func (s *MemStore) Delete(ctx context.Context, key string) (bool, error) {
	if s.FailWith != nil {
		return false, s.FailWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[key]; !ok {
		return false, nil
	}
	delete(s.data, key)
	return true, nil
}

func (s *MemStore) Ping(ctx context.Context) error {
	if s.FailWith != nil {
		return s.FailWith
	}
	return nil
}

func (s *MemStore) Close() error {
	return nil
}

// Len returns the number of stored keys
func (s *MemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
