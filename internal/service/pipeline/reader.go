package pipeline

import (
	"context"
	"fmt"

	"github.com/mamadbah2/retailsheet/internal/domain/models"
	"github.com/mamadbah2/retailsheet/internal/repository/tablestore"
)

// DefaultPageSize is the number of rows requested per range query.
const DefaultPageSize = 1000

// PageCount returns how many pages of pageSize are needed to cover total rows.
func PageCount(total, pageSize int) int {
	if total <= 0 {
		return 0
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return (total + pageSize - 1) / pageSize
}

// ReadAll counts the collection and then fetches it page by page, newest first,
// decoding every row. Any failure discards what was already fetched.
func ReadAll[T any](ctx context.Context, store tablestore.Store, collection string, decode func(models.Document) T, pageSize int, progress ProgressFunc) ([]T, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	total, err := store.Count(ctx, collection)
	if err != nil {
		return nil, &ReadError{Collection: collection, Page: -1, Err: err}
	}
	progress.emit(StageCount, 0, total, fmt.Sprintf("Total records in %s: %d", collection, total))

	if total == 0 {
		return []T{}, nil
	}

	records := make([]T, 0, total)
	for page := 0; page < PageCount(total, pageSize); page++ {
		docs, err := store.SelectRange(ctx, collection, page*pageSize, pageSize)
		if err != nil {
			return nil, &ReadError{Collection: collection, Page: page, Err: err}
		}

		for _, doc := range docs {
			records = append(records, decode(doc))
		}
		progress.emit(StageRead, len(records), total, fmt.Sprintf("Fetched %d/%d records from %s", len(records), total, collection))
	}

	return records, nil
}

// Clear deletes every row of the collection. An empty collection is not an error.
func Clear(ctx context.Context, store tablestore.Store, collection string, progress ProgressFunc) error {
	if err := store.DeleteAll(ctx, collection); err != nil {
		return &DeleteError{Collection: collection, Err: err}
	}
	progress.emit(StageClear, 0, 0, fmt.Sprintf("All records removed from %s", collection))
	return nil
}
