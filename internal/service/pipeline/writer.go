package pipeline

import (
	"context"
	"fmt"

	"github.com/mamadbah2/retailsheet/internal/domain/models"
	"github.com/mamadbah2/retailsheet/internal/repository/tablestore"
)

// DefaultChunkSize is the number of rows sent per insert call.
const DefaultChunkSize = 500

// Chunks splits items into consecutive slices of at most size elements. The returned
// slices share the backing array of items.
func Chunks[T any](items []T, size int) [][]T {
	if size <= 0 {
		size = DefaultChunkSize
	}

	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		chunks = append(chunks, items[start:end])
	}
	return chunks
}

// Write encodes records and inserts them chunk by chunk, waiting for each insert before
// sending the next. The first failing chunk aborts the write; earlier chunks are not
// rolled back. On success every inserted row is returned in chunk order.
func Write[T any](ctx context.Context, store tablestore.Store, collection string, records []T, encode func(T) models.Document, chunkSize int, progress ProgressFunc) ([]models.Document, error) {
	chunks := Chunks(records, chunkSize)
	inserted := make([]models.Document, 0, len(records))
	written := 0

	for i, chunk := range chunks {
		docs := make([]models.Document, len(chunk))
		for j, record := range chunk {
			docs[j] = encode(record)
		}

		out, err := store.Insert(ctx, collection, docs)
		if err != nil {
			return nil, &WriteError{Collection: collection, Chunk: i, Committed: written, Err: err}
		}

		inserted = append(inserted, out...)
		written += len(chunk)
		progress.emit(StageWrite, written, len(records), fmt.Sprintf("%d/%d records written to %s", written, len(records), collection))
	}

	return inserted, nil
}
