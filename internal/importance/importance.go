// Package importance ranks dataset attributes by how strongly they
// associate with the purchase outcome. Categorical fields are scored by the
// largest purchase-rate gap between one value and the rest; numerical
// fields by the absolute Pearson correlation with the outcome. Scores are
// comparable only within a single ranking.
package importance

import (
	"math"
	"sort"
	"strconv"

	"purchase-insight/internal/dataset"
)

// FieldSpec names a dataset column and its display label.
type FieldSpec struct {
	Column string
	Label  string
}

// FeatureScore is one ranked attribute. Importance is in [0, 1].
type FeatureScore struct {
	Feature    string
	Importance float64
}

// Policy decides whether a field is scored as categorical or numerical.
// A field is categorical when it has at most MaxDistinctValues observed
// values or its column name appears in CategoricalColumns. The allowlist is
// explicit so small-cardinality numeric fields such as a 1-10 loyalty score
// are not misclassified by arity alone.
type Policy struct {
	MaxDistinctValues  int
	CategoricalColumns []string
}

// DefaultPolicy returns the stock classification policy.
func DefaultPolicy() Policy {
	return Policy{
		MaxDistinctValues: 5,
		CategoricalColumns: []string{
			dataset.ColTechSavvy,
			dataset.ColOS,
			dataset.ColBrand,
			dataset.ColWarranty,
		},
	}
}

func (p Policy) isCategorical(column string, distinct int) bool {
	if distinct <= p.MaxDistinctValues {
		return true
	}
	for _, c := range p.CategoricalColumns {
		if c == column {
			return true
		}
	}
	return false
}

// DefaultFields is the attribute set ranked by the dashboard.
func DefaultFields() []FieldSpec {
	return []FieldSpec{
		{dataset.ColTechSavvy, "Tech Savvy"},
		{dataset.ColAge, "Age"},
		{dataset.ColOnlineActivity, "Online Activity"},
		{dataset.ColSalary, "Salary"},
		{dataset.ColLoyaltyScore, "Loyalty Score"},
		{dataset.ColPrevPurchases, "Previous Purchases"},
	}
}

// Rank scores each field and returns them in descending importance.
// Ties keep the input field order (stable sort). An empty dataset yields
// an empty ranking.
func Rank(ds *dataset.Dataset, fields []FieldSpec, policy Policy) []FeatureScore {
	if ds.Len() == 0 {
		return nil
	}

	scores := make([]FeatureScore, 0, len(fields))
	for _, f := range fields {
		scores = append(scores, FeatureScore{
			Feature:    f.Label,
			Importance: fieldImportance(ds, f.Column, policy),
		})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Importance > scores[j].Importance
	})
	return scores
}

func fieldImportance(ds *dataset.Dataset, column string, policy Policy) float64 {
	values := distinctValues(ds, column)
	if policy.isCategorical(column, len(values)) {
		return categoricalImportance(ds, column, values)
	}
	return numericalImportance(ds, column)
}

func distinctValues(ds *dataset.Dataset, column string) []string {
	seen := make(map[string]bool)
	var values []string
	for _, r := range ds.Records() {
		v := r.Fields[column]
		if !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	}
	return values
}

// categoricalImportance is the maximum absolute gap between the purchase
// rate among records holding a value and the rate among all other records.
// Values where either partition is empty are skipped.
func categoricalImportance(ds *dataset.Dataset, column string, values []string) float64 {
	var maxDiff float64
	for _, v := range values {
		withCount, withBought := 0, 0
		withoutCount, withoutBought := 0, 0
		for _, r := range ds.Records() {
			if r.Fields[column] == v {
				withCount++
				if r.Purchased {
					withBought++
				}
			} else {
				withoutCount++
				if r.Purchased {
					withoutBought++
				}
			}
		}
		if withCount == 0 || withoutCount == 0 {
			continue
		}

		rateWith := float64(withBought) / float64(withCount)
		rateWithout := float64(withoutBought) / float64(withoutCount)
		if diff := math.Abs(rateWith - rateWithout); diff > maxDiff {
			maxDiff = diff
		}
	}
	return maxDiff
}

// numericalImportance is the absolute Pearson correlation between the
// field's numeric values and the purchase outcome encoded 0/1. Records
// whose value does not parse are excluded pairwise so a missing salary
// never corrupts the correlation.
func numericalImportance(ds *dataset.Dataset, column string) float64 {
	var xs, ys []float64
	for _, r := range ds.Records() {
		v, err := strconv.ParseFloat(r.Fields[column], 64)
		if err != nil {
			continue
		}
		xs = append(xs, v)
		if r.Purchased {
			ys = append(ys, 1)
		} else {
			ys = append(ys, 0)
		}
	}
	return math.Abs(pearson(xs, ys))
}

// pearson returns the correlation coefficient of x and y, or 0 when either
// variable has zero variance. Zero variance is a defined result here, not
// an error.
func pearson(x, y []float64) float64 {
	n := len(x)
	if n == 0 || n != len(y) {
		return 0
	}

	var xMean, yMean float64
	for i := 0; i < n; i++ {
		xMean += x[i]
		yMean += y[i]
	}
	xMean /= float64(n)
	yMean /= float64(n)

	var num, xDen, yDen float64
	for i := 0; i < n; i++ {
		dx := x[i] - xMean
		dy := y[i] - yMean
		num += dx * dy
		xDen += dx * dx
		yDen += dy * dy
	}
	if xDen == 0 || yDen == 0 {
		return 0
	}
	return num / math.Sqrt(xDen*yDen)
}

// TopK returns the first k scores of an already-ranked list, or all of them
// when the list is shorter.
func TopK(scores []FeatureScore, k int) []FeatureScore {
	if k > len(scores) {
		k = len(scores)
	}
	if k < 0 {
		k = 0
	}
	return scores[:k]
}

// DisplayScore pairs a feature with its percentage relative to the most
// important feature in the selection.
type DisplayScore struct {
	Feature string
	Percent float64
}

// NormalizePercent rescales a selection so the top feature reads 100%.
// This is the presentation-layer renormalization; the raw importances in
// the ranking are untouched.
func NormalizePercent(scores []FeatureScore) []DisplayScore {
	var max float64
	for _, s := range scores {
		if s.Importance > max {
			max = s.Importance
		}
	}

	display := make([]DisplayScore, 0, len(scores))
	for _, s := range scores {
		pct := 0.0
		if max > 0 {
			pct = s.Importance / max * 100
		}
		display = append(display, DisplayScore{Feature: s.Feature, Percent: pct})
	}
	return display
}
