package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/retailsheet/internal/domain/models"
)

type item struct{ N int }

func encodeItem(it item) models.Document { return models.Document{"n": it.N} }

func items(n int) []item {
	out := make([]item, n)
	for i := range out {
		out[i] = item{N: i}
	}
	return out
}

func TestChunks(t *testing.T) {
	tests := []struct {
		length int
		size   int
		want   []int
	}{
		{0, 500, []int{}},
		{1, 500, []int{1}},
		{500, 500, []int{500}},
		{501, 500, []int{500, 1}},
		{1250, 500, []int{500, 500, 250}},
		{7, 3, []int{3, 3, 1}},
	}

	for _, tt := range tests {
		chunks := Chunks(items(tt.length), tt.size)
		sizes := make([]int, 0, len(chunks))
		var joined []item
		for _, c := range chunks {
			sizes = append(sizes, len(c))
			joined = append(joined, c...)
		}
		assert.Equal(t, tt.want, sizes, "length %d size %d", tt.length, tt.size)
		if tt.length > 0 {
			assert.Equal(t, items(tt.length), joined)
		}
	}
}

func TestChunksDefaultsSize(t *testing.T) {
	assert.Len(t, Chunks(items(1001), 0), 3)
}

func TestWriteIssuesOneInsertPerChunk(t *testing.T) {
	store := &fakeStore{}
	var events []models.ProgressEvent

	out, err := Write(context.Background(), store, "stock_items", items(1234), encodeItem, 500, func(e models.ProgressEvent) {
		events = append(events, e)
	})
	require.NoError(t, err)

	assert.Equal(t, []int{500, 500, 234}, store.insertSizes)
	require.Len(t, out, 1234)
	for i, doc := range out {
		assert.Equal(t, i, doc["n"])
	}

	require.Len(t, events, 3)
	assert.Equal(t, StageWrite, events[2].Stage)
	assert.Equal(t, 1234, events[2].Done)
	assert.Equal(t, 1234, events[2].Total)
}

func TestWriteAbortsOnFirstFailedChunk(t *testing.T) {
	store := &fakeStore{failInsertAt: 2}

	out, err := Write(context.Background(), store, "sales_items", items(1200), encodeItem, 500, nil)
	require.Error(t, err)
	assert.Nil(t, out)

	var writeErr *WriteError
	require.ErrorAs(t, err, &writeErr)
	assert.Equal(t, 1, writeErr.Chunk)
	assert.Equal(t, 500, writeErr.Committed)
	assert.Equal(t, "error while inserting data: duplicate key value", err.Error())

	// Third chunk never sent, first chunk stays persisted.
	assert.Equal(t, []int{500, 500}, store.insertSizes)
	assert.Len(t, store.rows, 500)
}

func TestWriteNothing(t *testing.T) {
	store := &fakeStore{}
	out, err := Write(context.Background(), store, "stock_items", nil, encodeItem, 500, nil)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Empty(t, store.insertSizes)
}
