// Package stats computes aggregate summaries over a dataset: the headline
// purchase rate and means, plus the grouped breakdowns the dashboard charts
// are built from.
package stats

import (
	"math"
	"sort"

	"purchase-insight/internal/dataset"
)

// Summary holds the headline statistics for a dataset. The optional fields
// are invalid (not zero) when the dataset has no usable values for them, so
// an empty dataset is distinguishable from one that averages to zero.
type Summary struct {
	Total        int
	PurchaseRate dataset.OptFloat // percentage, rounded to one decimal
	AvgAge       dataset.OptFloat
	AvgSalary    dataset.OptFloat
}

// Summarize computes the purchase rate and the age and salary means.
// Records missing a salary still contribute to the age mean; each field's
// mean excludes only that field's missing values.
func Summarize(ds *dataset.Dataset) Summary {
	s := Summary{Total: ds.Len()}
	if ds.Len() == 0 {
		return s
	}

	purchased := 0
	ageSum := 0
	salarySum, salaryCount := 0, 0
	for _, r := range ds.Records() {
		if r.Purchased {
			purchased++
		}
		ageSum += r.Age
		if r.Salary.Valid {
			salarySum += r.Salary.Value
			salaryCount++
		}
	}

	rate := float64(purchased) / float64(ds.Len()) * 100
	s.PurchaseRate = dataset.OptFloat{Value: math.Round(rate*10) / 10, Valid: true}
	s.AvgAge = dataset.OptFloat{Value: float64(ageSum) / float64(ds.Len()), Valid: true}
	if salaryCount > 0 {
		s.AvgSalary = dataset.OptFloat{Value: float64(salarySum) / float64(salaryCount), Valid: true}
	}
	return s
}

// GroupRate is the purchase rate within one group of records.
type GroupRate struct {
	Group string
	Count int
	Rate  float64 // percentage
}

// ageGroups in display order.
var ageGroups = []struct {
	label string
	match func(age int) bool
}{
	{"18-24", func(a int) bool { return a < 25 }},
	{"25-34", func(a int) bool { return a < 35 }},
	{"35-44", func(a int) bool { return a < 45 }},
	{"45+", func(a int) bool { return true }},
}

// AgeGroupRates buckets records into the fixed age bands and reports the
// purchase rate per band. Empty bands are omitted.
func AgeGroupRates(ds *dataset.Dataset) []GroupRate {
	counts := make([]int, len(ageGroups))
	bought := make([]int, len(ageGroups))
	for _, r := range ds.Records() {
		for i, g := range ageGroups {
			if g.match(r.Age) {
				counts[i]++
				if r.Purchased {
					bought[i]++
				}
				break
			}
		}
	}

	var rates []GroupRate
	for i, g := range ageGroups {
		if counts[i] == 0 {
			continue
		}
		rates = append(rates, GroupRate{
			Group: g.label,
			Count: counts[i],
			Rate:  float64(bought[i]) / float64(counts[i]) * 100,
		})
	}
	return rates
}

// BrandCount is the number of records preferring one brand.
type BrandCount struct {
	Brand string
	Count int
}

// BrandDistribution counts records per brand preference, most popular
// first. Records with no brand are skipped; ties keep first-seen order.
func BrandDistribution(ds *dataset.Dataset) []BrandCount {
	counts := make(map[string]int)
	for _, r := range ds.Records() {
		if r.Brand == "" {
			continue
		}
		counts[r.Brand]++
	}

	dist := make([]BrandCount, 0, len(counts))
	for _, brand := range ds.Brands() {
		if n, ok := counts[brand]; ok {
			dist = append(dist, BrandCount{Brand: brand, Count: n})
		}
	}
	sort.SliceStable(dist, func(i, j int) bool { return dist[i].Count > dist[j].Count })
	return dist
}

// FactorRate is the purchase rate among records matching one behavioral
// factor.
type FactorRate struct {
	Name string
	Rate float64 // percentage; 0 when no record matches
}

// FactorRates reports the purchase rate within each of the fixed behavioral
// cohorts the dashboard compares.
func FactorRates(ds *dataset.Dataset) []FactorRate {
	factors := []struct {
		name  string
		match func(r dataset.Record) bool
	}{
		{"Tech Savvy", func(r dataset.Record) bool { return r.TechSavvy }},
		{"High Online Activity", func(r dataset.Record) bool {
			return r.OnlineActivity.Valid && r.OnlineActivity.Value > 75
		}},
		{"High Loyalty", func(r dataset.Record) bool {
			return r.LoyaltyScore.Valid && r.LoyaltyScore.Value >= 8
		}},
		{"Warranty Interest", func(r dataset.Record) bool { return r.WarrantyInterest }},
		{"Previous Purchases", func(r dataset.Record) bool {
			return r.PrevPurchases.Valid && r.PrevPurchases.Value >= 3
		}},
	}

	rates := make([]FactorRate, 0, len(factors))
	for _, f := range factors {
		matched, bought := 0, 0
		for _, r := range ds.Records() {
			if !f.match(r) {
				continue
			}
			matched++
			if r.Purchased {
				bought++
			}
		}
		rate := 0.0
		if matched > 0 {
			rate = float64(bought) / float64(matched) * 100
		}
		rates = append(rates, FactorRate{Name: f.name, Rate: rate})
	}
	return rates
}
