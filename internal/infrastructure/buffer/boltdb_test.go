package buffer

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T, maxSize int) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "nested", "buffer.db"), "", maxSize)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_OrdersByPriorityThenTime(t *testing.T) {
	store := openStore(t, 0)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Enqueue(Item{ID: "late", Entity: EntityEmployees, Priority: 3, Timestamp: base.Add(time.Minute)}))
	require.NoError(t, store.Enqueue(Item{ID: "early", Entity: EntityEmployees, Priority: 3, Timestamp: base}))
	require.NoError(t, store.Enqueue(Item{ID: "urgent", Entity: EntityEmployees, Priority: 1, Timestamp: base.Add(time.Hour)}))

	items, err := store.GetBatch(10)
	require.NoError(t, err)
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []string{"urgent", "early", "late"}, ids)

	size, err := store.Size()
	require.NoError(t, err)
	assert.Equal(t, 3, size)
}

func TestStore_RemoveAndRequeue(t *testing.T) {
	store := openStore(t, 0)
	require.NoError(t, store.Enqueue(Item{ID: "a", Data: json.RawMessage(`[]`)}))
	require.NoError(t, store.Enqueue(Item{ID: "b", Data: json.RawMessage(`[]`)}))

	items, err := store.GetBatch(1)
	require.NoError(t, err)
	require.Len(t, items, 1)

	first := items[0]
	first.Retries++
	require.NoError(t, store.Requeue(first))

	items, err = store.GetBatch(10)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, first.ID, items[1].ID, "requeued item moves to the back")
	assert.Equal(t, 1, items[1].Retries)

	require.NoError(t, store.Remove(items[0]))
	require.NoError(t, store.Remove(Item{ID: items[1].ID}))
	size, err := store.Size()
	require.NoError(t, err)
	assert.Zero(t, size)
}

func TestStore_MaxSize(t *testing.T) {
	store := openStore(t, 1)
	require.NoError(t, store.Enqueue(Item{ID: "a"}))
	assert.ErrorIs(t, store.Enqueue(Item{ID: "b"}), ErrFull)
}

func TestStore_Cleanup(t *testing.T) {
	store := openStore(t, 0)
	now := time.Now()
	for i, ts := range []time.Time{now.Add(-48 * time.Hour), now.Add(-30 * time.Hour), now} {
		require.NoError(t, store.Enqueue(Item{ID: string(rune('a' + i)), Timestamp: ts}))
	}

	removed, err := store.Cleanup(now.Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	items, err := store.GetBatch(10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "c", items[0].ID)
}

func TestStore_NilIsClosed(t *testing.T) {
	var store *Store
	assert.Error(t, store.Enqueue(Item{}))
	assert.NoError(t, store.Close())
}
