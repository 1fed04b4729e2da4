package models

import "strconv"

// Searchable is implemented by every record kind so that the filter engine can reach
// field text without reflection.
type Searchable interface {
	// Values returns the text of every field in declaration order.
	Values() []string
	// Field returns the text of the named field using its JSON name.
	Field(name string) (string, bool)
}

// StockFields lists the filterable fields of StockRecord.
var StockFields = []string{"brand", "product_group", "product_code", "color_code", "size", "inventory", "barcode", "season"}

// SalesFields lists the filterable fields of SalesRecord.
var SalesFields = []string{"brand", "product_group", "product_code", "color_code", "size", "inventory", "season", "quantity_sold", "sale_value"}

// PersonnelFields lists the filterable fields of PersonnelSaleRecord.
var PersonnelFields = []string{"salesperson", "brand", "product_code", "color_code", "quantity_sold", "sale_price"}

func (r StockRecord) Values() []string {
	return []string{r.Brand, r.ProductGroup, r.ProductCode, r.ColorCode, r.Size, r.Inventory, r.Barcode, r.Season}
}

func (r StockRecord) Field(name string) (string, bool) {
	switch name {
	case "brand":
		return r.Brand, true
	case "product_group":
		return r.ProductGroup, true
	case "product_code":
		return r.ProductCode, true
	case "color_code":
		return r.ColorCode, true
	case "size":
		return r.Size, true
	case "inventory":
		return r.Inventory, true
	case "barcode":
		return r.Barcode, true
	case "season":
		return r.Season, true
	}
	return "", false
}

func (r SalesRecord) Values() []string {
	return []string{r.Brand, r.ProductGroup, r.ProductCode, r.ColorCode, r.Size, r.Inventory, r.Season, strconv.Itoa(r.QuantitySold), r.SaleValue}
}

func (r SalesRecord) Field(name string) (string, bool) {
	switch name {
	case "brand":
		return r.Brand, true
	case "product_group":
		return r.ProductGroup, true
	case "product_code":
		return r.ProductCode, true
	case "color_code":
		return r.ColorCode, true
	case "size":
		return r.Size, true
	case "inventory":
		return r.Inventory, true
	case "season":
		return r.Season, true
	case "quantity_sold":
		return strconv.Itoa(r.QuantitySold), true
	case "sale_value":
		return r.SaleValue, true
	}
	return "", false
}

func (r PersonnelSaleRecord) Values() []string {
	return []string{r.Salesperson, r.Brand, r.ProductCode, r.ColorCode, strconv.Itoa(r.QuantitySold), formatNumber(r.SalePrice)}
}

func (r PersonnelSaleRecord) Field(name string) (string, bool) {
	switch name {
	case "salesperson":
		return r.Salesperson, true
	case "brand":
		return r.Brand, true
	case "product_code":
		return r.ProductCode, true
	case "color_code":
		return r.ColorCode, true
	case "quantity_sold":
		return strconv.Itoa(r.QuantitySold), true
	case "sale_price":
		return formatNumber(r.SalePrice), true
	}
	return "", false
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
