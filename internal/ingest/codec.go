package ingest

import "github.com/mamadbah2/retailsheet/internal/domain/models"

// Storage column names shared by the remote collections.
const (
	ColumnID           = "id"
	ColumnCreatedAt    = "created_at"
	ColumnBrand        = "marka"
	ColumnProductGroup = "urun_grubu"
	ColumnProductCode  = "urun_kodu"
	ColumnColorCode    = "renk_kodu"
	ColumnSize         = "beden"
	ColumnInventory    = "envanter"
	ColumnBarcode      = "barkod"
	ColumnSeason       = "sezon"
	ColumnQuantitySold = "satis_miktari"
	ColumnSaleValue    = "satis_vd"
	ColumnSalesperson  = "personel_adi"
	ColumnQuantity     = "satis_adeti"
	ColumnSalePrice    = "satis_fiyati"
)

// StockToDocument maps a StockRecord onto the stock_items columns.
func StockToDocument(r models.StockRecord) models.Document {
	return models.Document{
		ColumnBrand:        r.Brand,
		ColumnProductGroup: r.ProductGroup,
		ColumnProductCode:  r.ProductCode,
		ColumnColorCode:    r.ColorCode,
		ColumnSize:         r.Size,
		ColumnInventory:    r.Inventory,
		ColumnBarcode:      r.Barcode,
		ColumnSeason:       r.Season,
	}
}

// StockFromDocument maps a stock_items row back onto a StockRecord.
func StockFromDocument(doc models.Document) models.StockRecord {
	return models.StockRecord{
		Brand:        ToText(doc[ColumnBrand]),
		ProductGroup: ToText(doc[ColumnProductGroup]),
		ProductCode:  ToText(doc[ColumnProductCode]),
		ColorCode:    ToText(doc[ColumnColorCode]),
		Size:         ToText(doc[ColumnSize]),
		Inventory:    ToText(doc[ColumnInventory]),
		Barcode:      ToText(doc[ColumnBarcode]),
		Season:       ToText(doc[ColumnSeason]),
	}
}

// SalesToDocument maps a SalesRecord onto the sales_items columns.
func SalesToDocument(r models.SalesRecord) models.Document {
	return models.Document{
		ColumnBrand:        r.Brand,
		ColumnProductGroup: r.ProductGroup,
		ColumnProductCode:  r.ProductCode,
		ColumnColorCode:    r.ColorCode,
		ColumnSize:         r.Size,
		ColumnInventory:    r.Inventory,
		ColumnSeason:       r.Season,
		ColumnQuantitySold: r.QuantitySold,
		ColumnSaleValue:    r.SaleValue,
	}
}

// SalesFromDocument maps a sales_items row back onto a SalesRecord.
func SalesFromDocument(doc models.Document) models.SalesRecord {
	return models.SalesRecord{
		Brand:        ToText(doc[ColumnBrand]),
		ProductGroup: ToText(doc[ColumnProductGroup]),
		ProductCode:  ToText(doc[ColumnProductCode]),
		ColorCode:    ToText(doc[ColumnColorCode]),
		Size:         ToText(doc[ColumnSize]),
		Inventory:    ToText(doc[ColumnInventory]),
		Season:       ToText(doc[ColumnSeason]),
		QuantitySold: ToInt(doc[ColumnQuantitySold]),
		SaleValue:    ToText(doc[ColumnSaleValue]),
	}
}

// PersonnelToDocument maps a PersonnelSaleRecord onto the personnel_data columns.
func PersonnelToDocument(r models.PersonnelSaleRecord) models.Document {
	return models.Document{
		ColumnSalesperson: r.Salesperson,
		ColumnBrand:       r.Brand,
		ColumnProductCode: r.ProductCode,
		ColumnColorCode:   r.ColorCode,
		ColumnQuantity:    r.QuantitySold,
		ColumnSalePrice:   r.SalePrice,
	}
}

// PersonnelFromDocument maps a personnel_data row back onto a PersonnelSaleRecord.
func PersonnelFromDocument(doc models.Document) models.PersonnelSaleRecord {
	return models.PersonnelSaleRecord{
		Salesperson:  ToText(doc[ColumnSalesperson]),
		Brand:        ToText(doc[ColumnBrand]),
		ProductCode:  ToText(doc[ColumnProductCode]),
		ColorCode:    ToText(doc[ColumnColorCode]),
		QuantitySold: ToInt(doc[ColumnQuantity]),
		SalePrice:    ToNumber(doc[ColumnSalePrice]),
	}
}

// StockToRow renders a StockRecord as an export row in StockHeaders order.
func StockToRow(r models.StockRecord) []any {
	return []any{r.Brand, r.ProductGroup, r.ProductCode, r.ColorCode, r.Size, r.Inventory, r.Barcode, r.Season}
}

// SalesToRow renders a SalesRecord as an export row in SalesHeaders order.
func SalesToRow(r models.SalesRecord) []any {
	return []any{r.Brand, r.ProductGroup, r.ProductCode, r.ColorCode, r.Size, r.Inventory, r.Season, r.QuantitySold, r.SaleValue}
}

// PersonnelToRow renders a PersonnelSaleRecord as an export row in PersonnelHeaders order.
func PersonnelToRow(r models.PersonnelSaleRecord) []any {
	return []any{r.Salesperson, r.Brand, r.ProductCode, r.ColorCode, r.QuantitySold, r.SalePrice}
}
