package reporting

import (
	"sort"

	"github.com/mamadbah2/retailsheet/internal/domain/models"
	"github.com/mamadbah2/retailsheet/internal/ingest"
)

const (
	topBrandCount = 5
	noTopBrand    = "-"
)

// StockReport summarizes inventory records. Inventory is stored as text and is parsed
// leniently, so unreadable counts contribute zero.
func StockReport(records []models.StockRecord) models.StockSummary {
	inventory := func(r models.StockRecord) float64 { return ingest.ToNumber(r.Inventory) }
	total := Sum(records, inventory)
	byBrand := GroupSum(records, func(r models.StockRecord) string { return r.Brand }, inventory)

	return models.StockSummary{
		RecordCount:    len(records),
		TotalInventory: total,
		ByBrand:        byBrand,
		ByProductGroup: GroupSum(records, func(r models.StockRecord) string { return r.ProductGroup }, inventory),
		BySeason:       GroupSum(records, func(r models.StockRecord) string { return r.Season }, inventory),
		TopBrands:      Shares(TopN(byBrand, topBrandCount), total),
	}
}

// SalesReport summarizes sales records by quantity sold.
func SalesReport(records []models.SalesRecord) models.SalesSummary {
	quantity := func(r models.SalesRecord) float64 { return float64(r.QuantitySold) }
	total := Sum(records, quantity)
	byBrand := GroupSum(records, func(r models.SalesRecord) string { return r.Brand }, quantity)

	return models.SalesSummary{
		RecordCount:    len(records),
		TotalQuantity:  total,
		TotalValue:     Sum(records, func(r models.SalesRecord) float64 { return ingest.ToNumber(r.SaleValue) }),
		ByBrand:        byBrand,
		ByProductGroup: GroupSum(records, func(r models.SalesRecord) string { return r.ProductGroup }, quantity),
		TopBrands:      Shares(TopN(byBrand, topBrandCount), total),
	}
}

func personnelQuantity(r models.PersonnelSaleRecord) float64 { return float64(r.QuantitySold) }
func personnelPrice(r models.PersonnelSaleRecord) float64    { return r.SalePrice }
func personnelBrand(r models.PersonnelSaleRecord) string     { return r.Brand }
func personnelName(r models.PersonnelSaleRecord) string      { return r.Salesperson }

// PersonnelReport builds the salesperson and brand breakdowns for personnel sales.
func PersonnelReport(records []models.PersonnelSaleRecord) models.PersonnelSummary {
	totalQuantity := Sum(records, personnelQuantity)
	brandQuantity := GroupSum(records, personnelBrand, personnelQuantity)

	topBrand := noTopBrand
	if ranked := Rank(brandQuantity); len(ranked) > 0 {
		topBrand = ranked[0].Key
	}

	return models.PersonnelSummary{
		RecordCount:       len(records),
		TotalSales:        Sum(records, personnelPrice),
		TotalQuantity:     totalQuantity,
		TopBrand:          topBrand,
		BrandDistribution: brandDistribution(brandQuantity),
		Performance:       performance(records),
		TopBrands:         brandLeaders(records, brandQuantity, totalQuantity),
	}
}

// brandDistribution keeps named brands that actually sold, highest first.
func brandDistribution(brandQuantity []models.GroupTotal) []models.GroupTotal {
	out := make([]models.GroupTotal, 0, len(brandQuantity))
	for _, g := range Rank(brandQuantity) {
		if g.Value > 0 {
			out = append(out, g)
		}
	}
	return out
}

// performance ranks salespeople by sales amount. Amounts are rounded to cents before
// shares are taken so the shares match the displayed amounts.
func performance(records []models.PersonnelSaleRecord) []models.SalespersonPerformance {
	sales := GroupSum(records, personnelName, personnelPrice)
	quantities := GroupSum(records, personnelName, personnelQuantity)

	rows := make([]models.SalespersonPerformance, 0, len(sales))
	for i, g := range sales {
		qty := quantities[i].Value
		if g.Key == "" || (g.Value <= 0 && qty <= 0) {
			continue
		}
		rows = append(rows, models.SalespersonPerformance{
			Name:          g.Key,
			TotalSales:    roundTo(g.Value, 2),
			TotalQuantity: qty,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TotalSales > rows[j].TotalSales
	})

	var totalAmount float64
	for _, r := range rows {
		totalAmount += r.TotalSales
	}
	for i := range rows {
		rows[i].Percentage = Percentage(rows[i].TotalSales, totalAmount)
		rows[i].AveragePerUnit = AveragePerUnit(rows[i].TotalSales, rows[i].TotalQuantity)
	}
	return rows
}

// brandLeaders details the best selling brands by quantity with their turnover and
// strongest salesperson.
func brandLeaders(records []models.PersonnelSaleRecord, brandQuantity []models.GroupTotal, totalQuantity float64) []models.BrandLeader {
	top := TopN(brandQuantity, topBrandCount)
	leaders := make([]models.BrandLeader, 0, len(top))

	for _, g := range top {
		var brandRecords []models.PersonnelSaleRecord
		for _, r := range records {
			if r.Brand == g.Key {
				brandRecords = append(brandRecords, r)
			}
		}

		leader := models.BrandLeader{
			Brand:      g.Key,
			Quantity:   g.Value,
			Percentage: Percentage(g.Value, totalQuantity),
			Turnover:   Sum(brandRecords, personnelPrice),
		}
		if sellers := Rank(GroupSum(brandRecords, personnelName, personnelQuantity)); len(sellers) > 0 {
			leader.TopSeller = sellers[0].Key
			leader.TopSellerQuantity = sellers[0].Value
		}
		leaders = append(leaders, leader)
	}
	return leaders
}
