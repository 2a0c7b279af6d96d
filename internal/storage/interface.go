package storage

import "errors"

var (
	// ErrNotFound is returned by Get and Delete when the key has no value
	ErrNotFound = errors.New("key not found")
	// ErrNotLoaded is returned when a store is used before Init or Load
	ErrNotLoaded = errors.New("storage not loaded")
	// ErrNotInitialized is returned by Load when the backing store does not exist yet
	ErrNotInitialized = errors.New("storage not initialized, run 'cortisol init' first")
)

// KV is the key-value surface the history and settings are persisted through
type KV interface {
	// Get returns ErrNotFound when the key is absent
	Get(key string) (string, error)
	// Set replaces the whole value stored under key
	Set(key, value string) error
}

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	KV
	Delete(key string) error
	Keys() ([]string, error)

	// Utils
	GetConfigPath() string
}
