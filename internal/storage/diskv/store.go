// Package diskv stores each key as its own file under a directory.
package diskv

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"github.com/julianstephens/cortisol/internal/storage"
)

// Prefix selects this backend in a --config value
const Prefix = "diskv://"

const cacheSizeMax = 1024 * 1024 // 1MB

type Store struct {
	basePath string
	d        *diskv.Diskv
}

// New accepts either a bare directory or a diskv:// prefixed one
func New(path string) *Store {
	return &Store{basePath: strings.TrimPrefix(path, Prefix)}
}

func (s *Store) Init() error {
	if err := os.MkdirAll(s.basePath, 0700); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	s.open()
	return nil
}

func (s *Store) Load() error {
	if s.d != nil {
		return nil
	}
	info, err := os.Stat(s.basePath)
	if os.IsNotExist(err) {
		return storage.ErrNotInitialized
	}
	if err != nil {
		return fmt.Errorf("failed to access store directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("store path %s is not a directory", s.basePath)
	}
	s.open()
	return nil
}

func (s *Store) open() {
	if s.d != nil {
		return
	}
	s.d = diskv.New(diskv.Options{
		BasePath:     s.basePath,
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: cacheSizeMax,
		FilePerm:     0600,
		PathPerm:     0700,
	})
}

func (s *Store) Close() error {
	s.d = nil
	return nil
}

func validKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.HasPrefix(key, ".") {
		return fmt.Errorf("invalid key %q", key)
	}
	return nil
}

func (s *Store) Get(key string) (string, error) {
	if s.d == nil {
		return "", storage.ErrNotLoaded
	}
	if err := validKey(key); err != nil {
		return "", err
	}
	data, err := s.d.Read(key)
	if errors.Is(err, os.ErrNotExist) {
		return "", storage.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return string(data), nil
}

func (s *Store) Set(key, value string) error {
	if s.d == nil {
		return storage.ErrNotLoaded
	}
	if err := validKey(key); err != nil {
		return err
	}
	if err := s.d.WriteString(key, value); err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(key string) error {
	if s.d == nil {
		return storage.ErrNotLoaded
	}
	if err := validKey(key); err != nil {
		return err
	}
	if !s.d.Has(key) {
		return storage.ErrNotFound
	}
	if err := s.d.Erase(key); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

func (s *Store) Keys() ([]string, error) {
	if s.d == nil {
		return nil, storage.ErrNotLoaded
	}
	keys := []string{}
	for k := range s.d.Keys(nil) {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *Store) GetConfigPath() string {
	return Prefix + s.basePath
}
