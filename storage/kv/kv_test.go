package kv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edunova/colegio/core"
)

func runKVSuite(t *testing.T, store core.KVStore) {
	t.Helper()

	t.Run("missing key", func(t *testing.T) {
		_, ok, err := store.Get("nope")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, store.Set("courses", []byte(`{"a":1}`)))

		doc, ok, err := store.Get("courses")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, []byte(`{"a":1}`), doc)
	})

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, store.Set("courses", []byte(`{"a":2}`)))

		doc, _, err := store.Get("courses")
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"a":2}`), doc)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.Delete("courses"))
		_, ok, err := store.Get("courses")
		require.NoError(t, err)
		assert.False(t, ok)

		// deleting a missing key is a no-op
		assert.NoError(t, store.Delete("courses"))
	})
}

func TestMemory(t *testing.T) {
	runKVSuite(t, NewMemory())

	t.Run("returned doc is a copy", func(t *testing.T) {
		store := NewMemory()
		require.NoError(t, store.Set("k", []byte("abc")))

		doc, _, err := store.Get("k")
		require.NoError(t, err)
		doc[0] = 'x'

		doc2, _, err := store.Get("k")
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), doc2)
	})
}

func TestFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFile(dir)
	require.NoError(t, err)

	runKVSuite(t, store)

	t.Run("survives reopening", func(t *testing.T) {
		require.NoError(t, store.Set("messages", []byte(`[]`)))

		reopened, err := NewFile(dir)
		require.NoError(t, err)
		doc, ok, err := reopened.Get("messages")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, []byte(`[]`), doc)
	})

	t.Run("keys cannot escape the root", func(t *testing.T) {
		require.NoError(t, store.Set("../evil", []byte("x")))

		if _, err := os.Stat(filepath.Join(dir, "..", "evil.json")); !os.IsNotExist(err) {
			t.Error("key escaped the storage root")
		}
	})
}

func TestSQLite(t *testing.T) {
	store, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer store.Close()

	runKVSuite(t, store)
}
