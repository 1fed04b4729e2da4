package models

import "strings"

// Kind enumerates the record kinds handled by the service.
type Kind string

const (
	KindStock     Kind = "stock"
	KindSales     Kind = "sales"
	KindPersonnel Kind = "personnel"
	KindUnknown   Kind = "unknown"
)

// Collection names used by the remote table store, one per kind.
const (
	StockCollection     = "stock_items"
	SalesCollection     = "sales_items"
	PersonnelCollection = "personnel_data"
)

// Kinds lists every supported kind in display order.
var Kinds = []Kind{KindStock, KindSales, KindPersonnel}

// ParseKind derives a Kind from a route segment or CLI argument.
func ParseKind(value string) Kind {
	normalized := strings.TrimPrefix(strings.TrimSpace(strings.ToLower(value)), "/")

	switch normalized {
	case string(KindStock), StockCollection:
		return KindStock
	case string(KindSales), SalesCollection:
		return KindSales
	case string(KindPersonnel), PersonnelCollection:
		return KindPersonnel
	default:
		return KindUnknown
	}
}

// Collection returns the remote collection backing the kind.
func (k Kind) Collection() string {
	switch k {
	case KindStock:
		return StockCollection
	case KindSales:
		return SalesCollection
	case KindPersonnel:
		return PersonnelCollection
	default:
		return ""
	}
}
