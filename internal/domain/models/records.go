package models

// Row is one loosely typed spreadsheet row keyed by its header cell. Values may be
// strings, numbers or nil depending on the source.
type Row = map[string]any

// Document is one row as it is stored remotely, keyed by storage column name.
type Document = map[string]any

// StockRecord captures one inventory line for a product variant.
type StockRecord struct {
	Brand        string `json:"brand"`
	ProductGroup string `json:"product_group"`
	ProductCode  string `json:"product_code"`
	ColorCode    string `json:"color_code"`
	Size         string `json:"size"`
	Inventory    string `json:"inventory"`
	Barcode      string `json:"barcode"`
	Season       string `json:"season"`
}

// SalesRecord captures sales for a product variant over the reporting period.
type SalesRecord struct {
	Brand        string `json:"brand"`
	ProductGroup string `json:"product_group"`
	ProductCode  string `json:"product_code"`
	ColorCode    string `json:"color_code"`
	Size         string `json:"size"`
	Inventory    string `json:"inventory"`
	Season       string `json:"season"`
	QuantitySold int    `json:"quantity_sold"`
	SaleValue    string `json:"sale_value"`
}

// PersonnelSaleRecord captures what a salesperson sold of a product.
type PersonnelSaleRecord struct {
	Salesperson  string  `json:"salesperson"`
	Brand        string  `json:"brand"`
	ProductCode  string  `json:"product_code"`
	ColorCode    string  `json:"color_code"`
	QuantitySold int     `json:"quantity_sold"`
	SalePrice    float64 `json:"sale_price"`
}
