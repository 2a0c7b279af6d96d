package history

import (
	"errors"
	"fmt"

	"github.com/julianstephens/cortisol/internal/constants"
	"github.com/julianstephens/cortisol/internal/engine"
	"github.com/julianstephens/cortisol/internal/logger"
	"github.com/julianstephens/cortisol/internal/models"
	"github.com/julianstephens/cortisol/internal/storage"
)

// Repository persists the whole history under one key
type Repository struct {
	kv     storage.KV
	key    string
	engine *engine.Engine
}

func NewRepository(kv storage.KV) *Repository {
	return NewRepositoryFor(kv, engine.Default())
}

// NewRepositoryFor creates a repository whose decoding scores entries with e
func NewRepositoryFor(kv storage.KV, e *engine.Engine) *Repository {
	return &Repository{kv: kv, key: constants.EntriesKey, engine: e}
}

// Key returns the storage key holding the history
func (r *Repository) Key() string {
	return r.key
}

// Load reads the history. A missing or malformed value yields an empty
// history; only a failure of the store itself is returned as an error.
func (r *Repository) Load() (models.History, error) {
	raw, err := r.kv.Get(r.key)
	if errors.Is(err, storage.ErrNotFound) {
		return models.History{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	h, err := DecodeFor([]byte(raw), r.engine)
	if err != nil {
		logger.Warn("Stored history is unreadable, starting empty", "key", r.key, "error", err)
		return models.History{}, nil
	}
	return h, nil
}

// Save rewrites the stored history in full
func (r *Repository) Save(h models.History) error {
	data, err := Encode(h)
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	if err := r.kv.Set(r.key, string(data)); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}
	logger.Debug("History saved", "entries", len(h))
	return nil
}
