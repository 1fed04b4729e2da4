package models

import "time"

// GroupTotal is the summed value of one group in a group-by aggregation.
type GroupTotal struct {
	Key   string  `bson:"key" json:"key"`
	Value float64 `bson:"value" json:"value"`
}

// Share is a group total alongside its percentage of the grand total.
type Share struct {
	Key        string  `bson:"key" json:"key"`
	Value      float64 `bson:"value" json:"value"`
	Percentage float64 `bson:"percentage" json:"percentage"`
}

// SalespersonPerformance summarizes one salesperson across all their sales lines.
type SalespersonPerformance struct {
	Name           string  `bson:"name" json:"name"`
	TotalSales     float64 `bson:"total_sales" json:"total_sales"`
	TotalQuantity  float64 `bson:"total_quantity" json:"total_quantity"`
	Percentage     float64 `bson:"percentage" json:"percentage"`
	AveragePerUnit float64 `bson:"average_per_unit" json:"average_per_unit"`
}

// BrandLeader describes one of the best selling brands in the personnel report.
type BrandLeader struct {
	Brand             string  `bson:"brand" json:"brand"`
	Quantity          float64 `bson:"quantity" json:"quantity"`
	Percentage        float64 `bson:"percentage" json:"percentage"`
	Turnover          float64 `bson:"turnover" json:"turnover"`
	TopSeller         string  `bson:"top_seller" json:"top_seller"`
	TopSellerQuantity float64 `bson:"top_seller_quantity" json:"top_seller_quantity"`
}

// PersonnelSummary is the aggregate view over personnel sales records.
type PersonnelSummary struct {
	RecordCount       int                      `bson:"record_count" json:"record_count"`
	TotalSales        float64                  `bson:"total_sales" json:"total_sales"`
	TotalQuantity     float64                  `bson:"total_quantity" json:"total_quantity"`
	TopBrand          string                   `bson:"top_brand" json:"top_brand"`
	BrandDistribution []GroupTotal             `bson:"brand_distribution" json:"brand_distribution"`
	Performance       []SalespersonPerformance `bson:"performance" json:"performance"`
	TopBrands         []BrandLeader            `bson:"top_brands" json:"top_brands"`
}

// StockSummary is the aggregate view over inventory records.
type StockSummary struct {
	RecordCount    int          `bson:"record_count" json:"record_count"`
	TotalInventory float64      `bson:"total_inventory" json:"total_inventory"`
	ByBrand        []GroupTotal `bson:"by_brand" json:"by_brand"`
	ByProductGroup []GroupTotal `bson:"by_product_group" json:"by_product_group"`
	BySeason       []GroupTotal `bson:"by_season" json:"by_season"`
	TopBrands      []Share      `bson:"top_brands" json:"top_brands"`
}

// SalesSummary is the aggregate view over sales records.
type SalesSummary struct {
	RecordCount    int          `bson:"record_count" json:"record_count"`
	TotalQuantity  float64      `bson:"total_quantity" json:"total_quantity"`
	TotalValue     float64      `bson:"total_value" json:"total_value"`
	ByBrand        []GroupTotal `bson:"by_brand" json:"by_brand"`
	ByProductGroup []GroupTotal `bson:"by_product_group" json:"by_product_group"`
	TopBrands      []Share      `bson:"top_brands" json:"top_brands"`
}

// SummarySnapshot is a point-in-time copy of one kind's summary, persisted by the
// scheduler.
type SummarySnapshot struct {
	Kind      Kind      `bson:"kind" json:"kind"`
	Summary   any       `bson:"summary" json:"summary"`
	Records   int       `bson:"records" json:"records"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
