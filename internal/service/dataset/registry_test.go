package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/retailsheet/internal/domain/models"
)

func TestRegistryLookup(t *testing.T) {
	registry := NewDefaultRegistry(newCountingStore(t), Options{})

	for _, name := range []string{"stock", "stock_items", "/Sales", "personnel_data"} {
		d, err := registry.Lookup(name)
		require.NoError(t, err, name)
		assert.Equal(t, models.ParseKind(name), d.Kind())
	}

	_, err := registry.Lookup("orders")
	assert.ErrorIs(t, err, ErrUnknownKind)

	kinds := make([]models.Kind, 0, 3)
	for _, d := range registry.All() {
		kinds = append(kinds, d.Kind())
	}
	assert.Equal(t, models.Kinds, kinds)
}
