package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/mamadbah2/retailsheet/internal/domain/models"
)

// fakeStore keeps rows in insertion order and serves them newest first, recording the
// calls made against it.
type fakeStore struct {
	rows        []models.Document
	insertSizes []int
	ranges      [][2]int
	deletes     int

	failInsertAt int // 1-based insert call that fails, 0 for never
	failPageAt   int // 1-based range call that fails, 0 for never
	countErr     error
	deleteErr    error
	countShift   int
}

func (f *fakeStore) Count(_ context.Context, _ string) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return len(f.rows) + f.countShift, nil
}

func (f *fakeStore) Insert(_ context.Context, _ string, docs []models.Document) ([]models.Document, error) {
	f.insertSizes = append(f.insertSizes, len(docs))
	if f.failInsertAt == len(f.insertSizes) {
		return nil, errors.New("duplicate key value")
	}

	out := make([]models.Document, 0, len(docs))
	for _, doc := range docs {
		row := models.Document{"id": len(f.rows) + 1}
		for k, v := range doc {
			row[k] = v
		}
		f.rows = append(f.rows, row)
		out = append(out, row)
	}
	return out, nil
}

func (f *fakeStore) SelectRange(_ context.Context, _ string, offset, limit int) ([]models.Document, error) {
	f.ranges = append(f.ranges, [2]int{offset, limit})
	if f.failPageAt == len(f.ranges) {
		return nil, fmt.Errorf("timeout on range %d", offset)
	}

	var out []models.Document
	for i := len(f.rows) - 1 - offset; i >= 0 && len(out) < limit; i-- {
		out = append(out, f.rows[i])
	}
	return out, nil
}

func (f *fakeStore) DeleteAll(_ context.Context, _ string) error {
	f.deletes++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.rows = nil
	return nil
}
