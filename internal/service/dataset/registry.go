package dataset

import (
	"errors"

	"github.com/mamadbah2/retailsheet/internal/domain/models"
	"github.com/mamadbah2/retailsheet/internal/repository/tablestore"
)

// ErrUnknownKind is returned when a kind name does not match any dataset.
var ErrUnknownKind = errors.New("unknown record kind")

// Registry resolves datasets by kind.
type Registry struct {
	datasets map[models.Kind]Dataset
	order    []models.Kind
}

// NewRegistry indexes the given datasets. A later dataset replaces an earlier one of
// the same kind.
func NewRegistry(datasets ...Dataset) *Registry {
	r := &Registry{datasets: make(map[models.Kind]Dataset, len(datasets))}
	for _, d := range datasets {
		if _, exists := r.datasets[d.Kind()]; !exists {
			r.order = append(r.order, d.Kind())
		}
		r.datasets[d.Kind()] = d
	}
	return r
}

// NewDefaultRegistry builds the stock, sales and personnel datasets over one store.
func NewDefaultRegistry(store tablestore.Store, opts Options) *Registry {
	return NewRegistry(
		New(StockDefinition(), store, opts),
		New(SalesDefinition(), store, opts),
		New(PersonnelDefinition(), store, opts),
	)
}

// Get returns the dataset for kind.
func (r *Registry) Get(kind models.Kind) (Dataset, error) {
	d, ok := r.datasets[kind]
	if !ok {
		return nil, ErrUnknownKind
	}
	return d, nil
}

// Lookup resolves a kind or collection name.
func (r *Registry) Lookup(name string) (Dataset, error) {
	return r.Get(models.ParseKind(name))
}

// All returns the datasets in registration order.
func (r *Registry) All() []Dataset {
	out := make([]Dataset, 0, len(r.order))
	for _, k := range r.order {
		out = append(out, r.datasets[k])
	}
	return out
}
