package dataset

import (
	"github.com/mamadbah2/retailsheet/internal/domain/models"
	"github.com/mamadbah2/retailsheet/internal/service/filter"
)

// Collection is a loaded, immutable set of records of one kind.
type Collection interface {
	Kind() models.Kind
	Len() int
	// Records returns the typed record slice, suitable for JSON encoding.
	Records() any
	Filter(c filter.Criteria) Collection
	Summary() any
	Header() []string
	Rows() [][]interface{}
}

// Records is the Collection implementation for one record type.
type Records[T models.Searchable] struct {
	def   *Definition[T]
	items []T
}

var _ Collection = (*Records[models.StockRecord])(nil)

// NewRecords wraps items. The slice must not be modified afterwards.
func NewRecords[T models.Searchable](def Definition[T], items []T) *Records[T] {
	if items == nil {
		items = []T{}
	}
	return &Records[T]{def: &def, items: items}
}

func (r *Records[T]) Kind() models.Kind { return r.def.Kind }

func (r *Records[T]) Len() int { return len(r.items) }

func (r *Records[T]) Records() any { return r.items }

// Items returns the typed records.
func (r *Records[T]) Items() []T { return r.items }

// Filter returns a new collection holding the matching records.
func (r *Records[T]) Filter(c filter.Criteria) Collection {
	return &Records[T]{def: r.def, items: filter.Apply(r.items, c)}
}

func (r *Records[T]) Summary() any { return r.def.Summarize(r.items) }

func (r *Records[T]) Header() []string { return r.def.Header }

func (r *Records[T]) Rows() [][]interface{} {
	rows := make([][]interface{}, 0, len(r.items))
	for _, item := range r.items {
		rows = append(rows, r.def.ToRow(item))
	}
	return rows
}
