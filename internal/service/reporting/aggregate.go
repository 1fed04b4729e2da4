// Package reporting computes summary statistics over loaded record collections. Every
// function is pure and emits groups in a deterministic order.
package reporting

import (
	"fmt"
	"math"
	"sort"

	"github.com/mamadbah2/retailsheet/internal/domain/models"
)

// Sum adds up value over every record.
func Sum[T any](records []T, value func(T) float64) float64 {
	var total float64
	for _, r := range records {
		total += value(r)
	}
	return total
}

// GroupSum partitions records by key and sums value per group. Groups come out in the
// order their key was first encountered; the empty key is kept so that the groups
// always add up to Sum.
func GroupSum[T any](records []T, key func(T) string, value func(T) float64) []models.GroupTotal {
	index := make(map[string]int)
	groups := make([]models.GroupTotal, 0)

	for _, r := range records {
		k := key(r)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, models.GroupTotal{Key: k})
		}
		groups[i].Value += value(r)
	}
	return groups
}

// Rank drops the empty key and orders groups by value, highest first. Equal values
// keep their input order.
func Rank(groups []models.GroupTotal) []models.GroupTotal {
	ranked := make([]models.GroupTotal, 0, len(groups))
	for _, g := range groups {
		if g.Key == "" {
			continue
		}
		ranked = append(ranked, g)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Value > ranked[j].Value
	})
	return ranked
}

// TopN returns the first n ranked groups.
func TopN(groups []models.GroupTotal, n int) []models.GroupTotal {
	ranked := Rank(groups)
	if n < 0 {
		n = 0
	}
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Percentage returns value as a share of total rounded to one decimal place. A zero
// total yields 0.
func Percentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return roundTo(value/total*100, 1)
}

// FormatPercentage renders a percentage the way it is displayed, e.g. "12.5%".
func FormatPercentage(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

// AveragePerUnit divides value by quantity. A zero quantity yields 0.
func AveragePerUnit(value, quantity float64) float64 {
	if quantity == 0 {
		return 0
	}
	return value / quantity
}

// Shares converts groups into shares of total.
func Shares(groups []models.GroupTotal, total float64) []models.Share {
	shares := make([]models.Share, 0, len(groups))
	for _, g := range groups {
		shares = append(shares, models.Share{Key: g.Key, Value: g.Value, Percentage: Percentage(g.Value, total)})
	}
	return shares
}

func roundTo(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}
