// Package tablestore defines the remote table store surface the import and load
// pipeline depends on.
package tablestore

import (
	"context"

	"github.com/mamadbah2/retailsheet/internal/domain/models"
)

// Store is a named-collection table store. Implementations return inserted and selected
// rows keyed by storage column name.
type Store interface {
	// Count returns the number of rows in the collection without transferring them.
	Count(ctx context.Context, collection string) (int, error)
	// Insert stores docs in a single call and returns the rows as stored.
	Insert(ctx context.Context, collection string, docs []models.Document) ([]models.Document, error)
	// SelectRange returns at most limit rows starting at offset, newest first.
	SelectRange(ctx context.Context, collection string, offset, limit int) ([]models.Document, error)
	// DeleteAll removes every row of the collection.
	DeleteAll(ctx context.Context, collection string) error
}

// Closer is implemented by stores holding connections that must be released.
type Closer interface {
	Close(ctx context.Context) error
}
