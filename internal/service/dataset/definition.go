package dataset

import (
	"github.com/mamadbah2/retailsheet/internal/domain/models"
	"github.com/mamadbah2/retailsheet/internal/ingest"
	"github.com/mamadbah2/retailsheet/internal/service/reporting"
)

// Definition binds a record type to its spreadsheet, storage and reporting shapes.
type Definition[T models.Searchable] struct {
	Kind      models.Kind
	Header    []string
	Normalize func(models.Row) T
	Encode    func(T) models.Document
	Decode    func(models.Document) T
	ToRow     func(T) []any
	Summarize func([]T) any
}

// StockDefinition describes stock_items.
func StockDefinition() Definition[models.StockRecord] {
	return Definition[models.StockRecord]{
		Kind:      models.KindStock,
		Header:    ingest.StockHeaders,
		Normalize: ingest.NormalizeStock,
		Encode:    ingest.StockToDocument,
		Decode:    ingest.StockFromDocument,
		ToRow:     ingest.StockToRow,
		Summarize: func(r []models.StockRecord) any { return reporting.StockReport(r) },
	}
}

// SalesDefinition describes sales_items.
func SalesDefinition() Definition[models.SalesRecord] {
	return Definition[models.SalesRecord]{
		Kind:      models.KindSales,
		Header:    ingest.SalesHeaders,
		Normalize: ingest.NormalizeSales,
		Encode:    ingest.SalesToDocument,
		Decode:    ingest.SalesFromDocument,
		ToRow:     ingest.SalesToRow,
		Summarize: func(r []models.SalesRecord) any { return reporting.SalesReport(r) },
	}
}

// PersonnelDefinition describes personnel_data.
func PersonnelDefinition() Definition[models.PersonnelSaleRecord] {
	return Definition[models.PersonnelSaleRecord]{
		Kind:      models.KindPersonnel,
		Header:    ingest.PersonnelHeaders,
		Normalize: ingest.NormalizePersonnel,
		Encode:    ingest.PersonnelToDocument,
		Decode:    ingest.PersonnelFromDocument,
		ToRow:     ingest.PersonnelToRow,
		Summarize: func(r []models.PersonnelSaleRecord) any { return reporting.PersonnelReport(r) },
	}
}
