// Package filter narrows loaded records by a free text query and an optional field
// constraint.
package filter

import (
	"strings"

	"github.com/mamadbah2/retailsheet/internal/domain/models"
)

// Criteria is the filter applied to a record view. Empty members match everything.
type Criteria struct {
	Query string `json:"query" form:"q"`
	Field string `json:"field" form:"field"`
	Value string `json:"value" form:"value"`
}

// IsZero reports whether the criteria leave records untouched.
func (c Criteria) IsZero() bool {
	return c.Query == "" && (c.Field == "" || c.Value == "")
}

// Apply returns the records matching the criteria. The query is a case-insensitive
// substring test against every field; the field constraint is a case-insensitive
// substring test against the named field only. A field the record does not know
// never matches. The input slice is not modified.
func Apply[T models.Searchable](records []T, c Criteria) []T {
	query := strings.ToLower(c.Query)
	field := c.Field
	value := strings.ToLower(c.Value)

	out := make([]T, 0, len(records))
	for _, r := range records {
		if query != "" && !matchesAny(r, query) {
			continue
		}
		if field != "" && value != "" && !matchesField(r, field, value) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesAny(r models.Searchable, query string) bool {
	for _, v := range r.Values() {
		if strings.Contains(strings.ToLower(v), query) {
			return true
		}
	}
	return false
}

func matchesField(r models.Searchable, field, value string) bool {
	v, ok := r.Field(field)
	if !ok {
		return false
	}
	return strings.Contains(strings.ToLower(v), value)
}
