package blob

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStores(t *testing.T) map[string]Store {
	t.Helper()

	fs, err := NewFSStore(filepath.Join(t.TempDir(), "blobs"))
	require.NoError(t, err)

	sq, err := NewSQLiteStore(filepath.Join(t.TempDir(), "blobs.db"))
	require.NoError(t, err)

	stores := map[string]Store{"fs": fs, "sqlite": sq}
	t.Cleanup(func() {
		for _, s := range stores {
			s.Close()
		}
	})
	return stores
}

func TestStore_GetMissing(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Get(context.Background(), "memories/nobody.json")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStore_PutThenGet(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			key := "memories/user-1.json"
			payload := []byte(`{"version":2}`)

			require.NoError(t, store.Put(ctx, key, payload))

			got, err := store.Get(ctx, key)
			require.NoError(t, err)
			assert.Equal(t, payload, got)
		})
	}
}

func TestStore_PutOverwrites(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			key := "memories/user-1.json"

			require.NoError(t, store.Put(ctx, key, []byte("first")))
			require.NoError(t, store.Put(ctx, key, []byte("second")))

			got, err := store.Get(ctx, key)
			require.NoError(t, err)
			assert.Equal(t, []byte("second"), got)
		})
	}
}

func TestFSStore_NamespacedKeys(t *testing.T) {
	store, err := NewFSStore(filepath.Join(t.TempDir(), "blobs"))
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "memories/a/b/user.json", []byte("deep")))

	got, err := store.Get(ctx, "memories/a/b/user.json")
	require.NoError(t, err)
	assert.Equal(t, []byte("deep"), got)
}

func TestFSStore_CancelledContext(t *testing.T) {
	store, err := NewFSStore(filepath.Join(t.TempDir(), "blobs"))
	require.NoError(t, err)
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = store.Get(ctx, "memories/user.json")
	assert.ErrorIs(t, err, context.Canceled)
}
