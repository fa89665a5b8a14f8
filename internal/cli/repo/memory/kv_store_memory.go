package memory

import (
	"sync"

	"PolicyDesk/internal/cli/repo"
)

// KVStoreMemory хранит значения в памяти процесса. Используется в тестах и при STORE_DRIVER=memory.
type KVStoreMemory struct {
	mu   sync.RWMutex
	data map[string]string
}

var _ repo.KVStore = (*KVStoreMemory)(nil)

// New возвращает пустое хранилище.
func New() *KVStoreMemory {
	return &KVStoreMemory{data: make(map[string]string)}
}

func (s *KVStoreMemory) Get(key string) (string, bool, error) {
	if key == "" {
		return "", false, repo.ErrEmptyKey
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *KVStoreMemory) Set(key, value string) error {
	if key == "" {
		return repo.ErrEmptyKey
	}
	s.mu.Lock()
	s.data[key] = value
	s.mu.Unlock()
	return nil
}

func (s *KVStoreMemory) Remove(key string) error {
	if key == "" {
		return repo.ErrEmptyKey
	}
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
	return nil
}
