// Package storagetest holds the behaviour every storage.Provider must share.
package storagetest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/cortisol/internal/storage"
)

// RunProviderTests exercises a provider returned by newProvider. Each subtest
// gets a fresh, uninitialized provider.
func RunProviderTests(t *testing.T, newProvider func(t *testing.T) storage.Provider) {
	t.Helper()

	open := func(t *testing.T) storage.Provider {
		p := newProvider(t)
		require.NoError(t, p.Init())
		t.Cleanup(func() { _ = p.Close() })
		return p
	}

	t.Run("get missing key", func(t *testing.T) {
		p := open(t)
		_, err := p.Get("cortisol_entries")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("set then get", func(t *testing.T) {
		p := open(t)
		require.NoError(t, p.Set("cortisol_entries", `[{"humeur":4}]`))

		got, err := p.Get("cortisol_entries")
		require.NoError(t, err)
		assert.Equal(t, `[{"humeur":4}]`, got)
	})

	t.Run("set overwrites", func(t *testing.T) {
		p := open(t)
		require.NoError(t, p.Set("k", "first"))
		require.NoError(t, p.Set("k", "second"))

		got, err := p.Get("k")
		require.NoError(t, err)
		assert.Equal(t, "second", got)
	})

	t.Run("empty value is stored", func(t *testing.T) {
		p := open(t)
		require.NoError(t, p.Set("k", ""))

		got, err := p.Get("k")
		require.NoError(t, err)
		assert.Equal(t, "", got)
	})

	t.Run("delete", func(t *testing.T) {
		p := open(t)
		require.NoError(t, p.Set("k", "v"))
		require.NoError(t, p.Delete("k"))

		_, err := p.Get("k")
		assert.ErrorIs(t, err, storage.ErrNotFound)
		assert.ErrorIs(t, p.Delete("k"), storage.ErrNotFound)
	})

	t.Run("keys are sorted", func(t *testing.T) {
		p := open(t)
		require.NoError(t, p.Set("cortisol_settings", "{}"))
		require.NoError(t, p.Set("cortisol_entries", "[]"))

		keys, err := p.Keys()
		require.NoError(t, err)
		assert.Equal(t, []string{"cortisol_entries", "cortisol_settings"}, keys)
	})

	t.Run("init is idempotent", func(t *testing.T) {
		p := open(t)
		require.NoError(t, p.Set("k", "kept"))
		require.NoError(t, p.Init())

		got, err := p.Get("k")
		require.NoError(t, err)
		assert.Equal(t, "kept", got)
	})
}
