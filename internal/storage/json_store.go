package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

const jsonStoreVersion = 1

type document struct {
	Version int               `json:"version"`
	Values  map[string]string `json:"values"`
}

// JSONStore keeps every key in one JSON document, rewritten in full on each change
type JSONStore struct {
	path string
	doc  *document
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	s.doc = &document{Version: jsonStoreVersion, Values: map[string]string{}}
	return s.save()
}

func (s *JSONStore) Load() error {
	if s.doc != nil {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	doc := &document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if doc.Version > jsonStoreVersion {
		return fmt.Errorf("storage file version (%d) is newer than supported version (%d) - please upgrade cortisol", doc.Version, jsonStoreVersion)
	}
	if doc.Values == nil {
		doc.Values = map[string]string{}
	}
	s.doc = doc
	return nil
}

func (s *JSONStore) Close() error {
	s.doc = nil
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	// Write to a sibling file first so a crash never leaves a truncated document
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace storage: %w", err)
	}
	return nil
}

func (s *JSONStore) Get(key string) (string, error) {
	if s.doc == nil {
		return "", ErrNotLoaded
	}
	value, ok := s.doc.Values[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (s *JSONStore) Set(key, value string) error {
	if s.doc == nil {
		return ErrNotLoaded
	}
	s.doc.Values[key] = value
	return s.save()
}

func (s *JSONStore) Delete(key string) error {
	if s.doc == nil {
		return ErrNotLoaded
	}
	if _, ok := s.doc.Values[key]; !ok {
		return ErrNotFound
	}
	delete(s.doc.Values, key)
	return s.save()
}

func (s *JSONStore) Keys() ([]string, error) {
	if s.doc == nil {
		return nil, ErrNotLoaded
	}
	keys := make([]string, 0, len(s.doc.Values))
	for k := range s.doc.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
