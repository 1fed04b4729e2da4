package ingest

import (
	"errors"

	"github.com/mamadbah2/retailsheet/internal/domain/models"
)

// ErrNoRows indicates the parsed sheet did not contain a single data row.
var ErrNoRows = errors.New("no rows found")

// Spreadsheet headers expected on uploaded stock and sales sheets.
const (
	HeaderBrand        = "Marka"
	HeaderProductGroup = "Ürün Grubu"
	HeaderProductCode  = "Ürün Kodu"
	HeaderColorCode    = "Renk Kodu"
	HeaderSize         = "Beden"
	HeaderInventory    = "Envanter"
	HeaderBarcode      = "Barkod"
	HeaderSeason       = "Sezon"
	HeaderQuantitySold = "Satış Miktarı"
	HeaderSaleValue    = "Satış (VD)"
)

// Spreadsheet headers expected on uploaded personnel sheets.
const (
	HeaderSalesperson       = "personelAdi"
	HeaderPersonnelBrand    = "marka"
	HeaderPersonnelProduct  = "urunKodu"
	HeaderPersonnelColor    = "renkKodu"
	HeaderPersonnelQuantity = "satisAdeti"
	HeaderPersonnelPrice    = "satisFiyati"
)

// StockHeaders is the column order used when exporting stock records.
var StockHeaders = []string{HeaderBrand, HeaderProductGroup, HeaderProductCode, HeaderColorCode, HeaderSize, HeaderInventory, HeaderBarcode, HeaderSeason}

// SalesHeaders is the column order used when exporting sales records.
var SalesHeaders = []string{HeaderBrand, HeaderProductGroup, HeaderProductCode, HeaderColorCode, HeaderSize, HeaderInventory, HeaderSeason, HeaderQuantitySold, HeaderSaleValue}

// PersonnelHeaders is the column order used when exporting personnel records.
var PersonnelHeaders = []string{HeaderSalesperson, HeaderPersonnelBrand, HeaderPersonnelProduct, HeaderPersonnelColor, HeaderPersonnelQuantity, HeaderPersonnelPrice}

// NormalizeStock converts a parsed row into a StockRecord.
func NormalizeStock(row models.Row) models.StockRecord {
	return models.StockRecord{
		Brand:        ToText(row[HeaderBrand]),
		ProductGroup: ToText(row[HeaderProductGroup]),
		ProductCode:  ToText(row[HeaderProductCode]),
		ColorCode:    ToText(row[HeaderColorCode]),
		Size:         ToText(row[HeaderSize]),
		Inventory:    ToText(row[HeaderInventory]),
		Barcode:      ToText(row[HeaderBarcode]),
		Season:       ToText(row[HeaderSeason]),
	}
}

// NormalizeSales converts a parsed row into a SalesRecord.
func NormalizeSales(row models.Row) models.SalesRecord {
	return models.SalesRecord{
		Brand:        ToText(row[HeaderBrand]),
		ProductGroup: ToText(row[HeaderProductGroup]),
		ProductCode:  ToText(row[HeaderProductCode]),
		ColorCode:    ToText(row[HeaderColorCode]),
		Size:         ToText(row[HeaderSize]),
		Inventory:    ToText(row[HeaderInventory]),
		Season:       ToText(row[HeaderSeason]),
		QuantitySold: ToInt(row[HeaderQuantitySold]),
		SaleValue:    ToText(row[HeaderSaleValue]),
	}
}

// NormalizePersonnel converts a parsed row into a PersonnelSaleRecord.
func NormalizePersonnel(row models.Row) models.PersonnelSaleRecord {
	return models.PersonnelSaleRecord{
		Salesperson:  ToText(row[HeaderSalesperson]),
		Brand:        ToText(row[HeaderPersonnelBrand]),
		ProductCode:  ToText(row[HeaderPersonnelProduct]),
		ColorCode:    ToText(row[HeaderPersonnelColor]),
		QuantitySold: ToInt(row[HeaderPersonnelQuantity]),
		SalePrice:    ToNumber(row[HeaderPersonnelPrice]),
	}
}

// NormalizeAll applies fn to every row. It only fails when there is nothing to import;
// malformed cells degrade to default values instead.
func NormalizeAll[T any](rows []models.Row, fn func(models.Row) T) ([]T, error) {
	if len(rows) == 0 {
		return nil, ErrNoRows
	}

	records := make([]T, 0, len(rows))
	for _, row := range rows {
		records = append(records, fn(row))
	}
	return records, nil
}
