package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/retailsheet/internal/domain/models"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "data", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(context.Background()) })
	return store
}

func TestInsertCountSelect(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	n, err := store.Count(ctx, "stock_items")
	require.NoError(t, err)
	assert.Zero(t, n)

	out, err := store.Insert(ctx, "stock_items", []models.Document{
		{"marka": "X", "envanter": "10"},
		{"marka": "Y", "envanter": "5"},
	})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, int64(1), out[0]["id"])
	assert.Equal(t, "X", out[0]["marka"])

	n, err = store.Count(ctx, "stock_items")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	docs, err := store.SelectRange(ctx, "stock_items", 0, 10)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	// Same batch, so the later id comes first.
	assert.Equal(t, "Y", docs[0]["marka"])
	assert.Equal(t, "X", docs[1]["marka"])
}

func TestSelectRangeNewestFirstAcrossBatches(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return base }
	_, err := store.Insert(ctx, "sales_items", []models.Document{{"marka": "old"}})
	require.NoError(t, err)

	store.now = func() time.Time { return base.Add(time.Minute) }
	_, err = store.Insert(ctx, "sales_items", []models.Document{{"marka": "new"}})
	require.NoError(t, err)

	first, err := store.SelectRange(ctx, "sales_items", 0, 1)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, "new", first[0]["marka"])

	second, err := store.SelectRange(ctx, "sales_items", 1, 1)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, "old", second[0]["marka"])

	beyond, err := store.SelectRange(ctx, "sales_items", 2, 1)
	require.NoError(t, err)
	assert.Empty(t, beyond)
}

func TestDeleteAll(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	require.NoError(t, store.DeleteAll(ctx, "personnel_data"))

	_, err := store.Insert(ctx, "personnel_data", []models.Document{{"personel_adi": "Ali", "satis_adeti": 3}})
	require.NoError(t, err)
	require.NoError(t, store.DeleteAll(ctx, "personnel_data"))

	n, err := store.Count(ctx, "personnel_data")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestNumbersComeBackAsJSONNumbers(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	_, err := store.Insert(ctx, "personnel_data", []models.Document{{"satis_adeti": 3, "satis_fiyati": 12.5}})
	require.NoError(t, err)

	docs, err := store.SelectRange(ctx, "personnel_data", 0, 1)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, float64(3), docs[0]["satis_adeti"])
	assert.Equal(t, 12.5, docs[0]["satis_fiyati"])
}

func TestRejectsUnsafeCollectionNames(t *testing.T) {
	store := newStore(t)
	_, err := store.Count(context.Background(), "stock; DROP TABLE x")
	require.Error(t, err)
}

func TestMemoryStore(t *testing.T) {
	store, err := NewStore(":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close(context.Background()) }()

	_, err = store.Insert(context.Background(), "stock_items", []models.Document{{"marka": "X"}})
	require.NoError(t, err)
	n, err := store.Count(context.Background(), "stock_items")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
