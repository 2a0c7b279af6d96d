package storage

import "sort"

// MemoryStore is a Provider that never touches disk. Used by tests and dry runs.
type MemoryStore struct {
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init() error {
	if s.values == nil {
		s.values = map[string]string{}
	}
	return nil
}

func (s *MemoryStore) Load() error {
	return s.Init()
}

func (s *MemoryStore) Close() error {
	return nil
}

func (s *MemoryStore) Get(key string) (string, error) {
	if s.values == nil {
		return "", ErrNotLoaded
	}
	v, ok := s.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *MemoryStore) Set(key, value string) error {
	if s.values == nil {
		return ErrNotLoaded
	}
	s.values[key] = value
	return nil
}

func (s *MemoryStore) Delete(key string) error {
	if s.values == nil {
		return ErrNotLoaded
	}
	if _, ok := s.values[key]; !ok {
		return ErrNotFound
	}
	delete(s.values, key)
	return nil
}

func (s *MemoryStore) Keys() ([]string, error) {
	if s.values == nil {
		return nil, ErrNotLoaded
	}
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *MemoryStore) GetConfigPath() string {
	return "memory"
}
