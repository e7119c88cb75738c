package kv

import (
	"sync"

	"github.com/edunova/colegio/core"
)

// Memory is an in-process KVStore for tests and ephemeral runs.
type Memory struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

var _ core.KVStore = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{docs: make(map[string][]byte)}
}

func (s *Memory) Get(key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[key]
	if !ok {
		return nil, false, nil
	}
	cpy := make([]byte, len(doc))
	copy(cpy, doc)
	return cpy, true, nil
}

func (s *Memory) Set(key string, doc []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cpy := make([]byte, len(doc))
	copy(cpy, doc)
	s.docs[key] = cpy
	return nil
}

func (s *Memory) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.docs, key)
	return nil
}
