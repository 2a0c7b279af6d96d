package diskv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/cortisol/internal/storage"
	"github.com/julianstephens/cortisol/internal/storage/storagetest"
)

func TestStore_Contract(t *testing.T) {
	storagetest.RunProviderTests(t, func(t *testing.T) storage.Provider {
		return New(filepath.Join(t.TempDir(), "kv"))
	})
}

func TestStore_PrefixAndFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "kv")
	s := New(Prefix + dir)
	assert.Equal(t, Prefix+dir, s.GetConfigPath())

	require.NoError(t, s.Init())
	require.NoError(t, s.Set("cortisol_entries", "[]"))

	data, err := os.ReadFile(filepath.Join(dir, "cortisol_entries"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestStore_LoadMissingDirectory(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "absent"))
	assert.ErrorIs(t, s.Load(), storage.ErrNotInitialized)
}

func TestStore_RejectsPathKeys(t *testing.T) {
	s := New(t.TempDir())
	require.NoError(t, s.Init())

	for _, key := range []string{"", "../escape", "a/b", ".hidden"} {
		assert.Error(t, s.Set(key, "v"), "key %q", key)
	}
}
