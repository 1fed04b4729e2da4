package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/retailsheet/internal/domain/models"
)

func decodeItem(doc models.Document) item {
	n, _ := doc["n"].(int)
	return item{N: n}
}

func seed(t *testing.T, n int) *fakeStore {
	t.Helper()
	store := &fakeStore{}
	_, err := Write(context.Background(), store, "c", items(n), encodeItem, 500, nil)
	require.NoError(t, err)
	return store
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, 0, PageCount(0, 1000))
	assert.Equal(t, 1, PageCount(1, 1000))
	assert.Equal(t, 1, PageCount(1000, 1000))
	assert.Equal(t, 2, PageCount(1001, 1000))
	assert.Equal(t, 3, PageCount(2500, 0))
}

func TestReadAllEmptyCollection(t *testing.T) {
	store := &fakeStore{}

	records, err := ReadAll(context.Background(), store, "c", decodeItem, 1000, nil)
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
	assert.Empty(t, store.ranges)
}

func TestReadAllPagesNewestFirst(t *testing.T) {
	store := seed(t, 2500)
	var events []models.ProgressEvent

	records, err := ReadAll(context.Background(), store, "c", decodeItem, 1000, func(e models.ProgressEvent) {
		events = append(events, e)
	})
	require.NoError(t, err)

	assert.Equal(t, [][2]int{{0, 1000}, {1000, 1000}, {2000, 1000}}, store.ranges)
	require.Len(t, records, 2500)
	assert.Equal(t, 2499, records[0].N)
	assert.Equal(t, 0, records[2499].N)

	require.Len(t, events, 4)
	assert.Equal(t, StageCount, events[0].Stage)
	assert.Equal(t, 2500, events[0].Total)
	assert.Equal(t, 2500, events[3].Done)
}

func TestReadAllDiscardsPrefixOnPageFailure(t *testing.T) {
	store := seed(t, 2500)
	store.failPageAt = 2

	records, err := ReadAll(context.Background(), store, "c", decodeItem, 1000, nil)
	require.Error(t, err)
	assert.Nil(t, records)

	var readErr *ReadError
	require.ErrorAs(t, err, &readErr)
	assert.Equal(t, 1, readErr.Page)
	assert.Contains(t, err.Error(), "page 1")
	assert.Len(t, store.ranges, 2)
}

func TestReadAllCountFailure(t *testing.T) {
	store := &fakeStore{countErr: errors.New("permission denied")}

	_, err := ReadAll(context.Background(), store, "c", decodeItem, 1000, nil)
	var readErr *ReadError
	require.ErrorAs(t, err, &readErr)
	assert.Equal(t, -1, readErr.Page)
	assert.Equal(t, "error while counting records: permission denied", err.Error())
}

func TestReadAllShortPagesAreAppended(t *testing.T) {
	store := seed(t, 10)
	// Rows removed between the count and the page reads.
	store.countShift = 5

	records, err := ReadAll(context.Background(), store, "c", decodeItem, 4, nil)
	require.NoError(t, err)
	assert.Len(t, store.ranges, 4)
	assert.Len(t, records, 10)
}

func TestClear(t *testing.T) {
	t.Run("empty collection", func(t *testing.T) {
		store := &fakeStore{}
		require.NoError(t, Clear(context.Background(), store, "c", nil))
		assert.Equal(t, 1, store.deletes)
	})

	t.Run("failure", func(t *testing.T) {
		store := &fakeStore{deleteErr: errors.New("rls violation")}
		err := Clear(context.Background(), store, "c", nil)

		var deleteErr *DeleteError
		require.ErrorAs(t, err, &deleteErr)
		assert.Equal(t, "error while deleting data: rls violation", err.Error())
	})
}
