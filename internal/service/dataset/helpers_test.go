package dataset

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/retailsheet/internal/domain/models"
	"github.com/mamadbah2/retailsheet/internal/repository/sqlite"
	"github.com/mamadbah2/retailsheet/internal/repository/tablestore"
)

// countingStore records the calls made against an underlying store.
type countingStore struct {
	tablestore.Store
	counts    int
	inserts   []int
	ranges    [][2]int
	deletes   int
	insertErr error
}

func (s *countingStore) Count(ctx context.Context, collection string) (int, error) {
	s.counts++
	return s.Store.Count(ctx, collection)
}

func (s *countingStore) Insert(ctx context.Context, collection string, docs []models.Document) ([]models.Document, error) {
	s.inserts = append(s.inserts, len(docs))
	if s.insertErr != nil {
		return nil, s.insertErr
	}
	return s.Store.Insert(ctx, collection, docs)
}

func (s *countingStore) SelectRange(ctx context.Context, collection string, offset, limit int) ([]models.Document, error) {
	s.ranges = append(s.ranges, [2]int{offset, limit})
	return s.Store.SelectRange(ctx, collection, offset, limit)
}

func (s *countingStore) DeleteAll(ctx context.Context, collection string) error {
	s.deletes++
	return s.Store.DeleteAll(ctx, collection)
}

func newCountingStore(t *testing.T) *countingStore {
	t.Helper()
	store, err := sqlite.NewStore(filepath.Join(t.TempDir(), "dataset.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(context.Background()) })
	return &countingStore{Store: store}
}

// fakeSheets is an in-memory sheets.Repository.
type fakeSheets struct {
	rows    []models.Row
	readErr error

	sheet   string
	header  []string
	written [][]interface{}
}

func (f *fakeSheets) ReadRows(_ context.Context, sheetRange string) ([]models.Row, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	if sheetRange == "" {
		return nil, errors.New("empty range")
	}
	return f.rows, nil
}

func (f *fakeSheets) ReplaceRows(_ context.Context, sheet string, header []string, rows [][]interface{}) error {
	f.sheet = sheet
	f.header = header
	f.written = rows
	return nil
}

func stockRows() []models.Row {
	return []models.Row{
		{"Marka": "X", "Envanter": "10"},
		{"Marka": "Y", "Envanter": "5"},
		{"Marka": "X", "Envanter": "3"},
	}
}
