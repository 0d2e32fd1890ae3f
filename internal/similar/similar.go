// Package similar ranks dataset records by weighted similarity to a query
// attribute set, for nearest-neighbor display next to a prediction.
package similar

import (
	"sort"

	"purchase-insight/internal/dataset"
	"purchase-insight/internal/predict"
)

// MaxScore is the similarity score of a perfect match across all eight
// criteria.
const MaxScore = 10

// Match is one ranked neighbor with the fields the caller displays.
type Match struct {
	ID         string
	Similarity int
	Purchased  bool
	Age        int
	Brand      string
	Salary     dataset.OptInt
}

// MetricsTracker receives similarity-search counters.
type MetricsTracker interface {
	SimilarityQueriesInc()
}

// Similarity scores one record against the query: an integer sum over eight
// independent criteria. A record field that is missing fails its criterion;
// it is never treated as a wildcard.
//
//	age within 5 years        +1
//	same brand                +2
//	same OS                   +2
//	same tech-savvy flag      +1
//	loyalty within 2 points   +1
//	activity within 20 points +1
//	purchases within 2        +1
//	same warranty flag        +1
func Similarity(in predict.Input, r dataset.Record) int {
	score := 0

	if absInt(r.Age-in.Age) <= 5 {
		score++
	}
	if r.Brand == in.Brand {
		score += 2
	}
	if r.OS == in.OS {
		score += 2
	}
	if r.TechSavvy == in.TechSavvy {
		score++
	}
	if r.LoyaltyScore.Valid && absInt(r.LoyaltyScore.Value-in.LoyaltyScore) <= 2 {
		score++
	}
	if r.OnlineActivity.Valid && absInt(r.OnlineActivity.Value-in.OnlineActivity) <= 20 {
		score++
	}
	if r.PrevPurchases.Valid && absInt(r.PrevPurchases.Value-in.PrevPurchases) <= 2 {
		score++
	}
	if r.WarrantyInterest == in.WarrantyInterest {
		score++
	}
	return score
}

// FindNearest returns the top-k records most similar to the query, in
// descending similarity. Ties keep dataset insertion order, so rankings are
// deterministic. When the dataset has fewer than k records, all are
// returned.
func FindNearest(in predict.Input, ds *dataset.Dataset, k int) []Match {
	return FindNearestWithMetrics(in, ds, k, nil)
}

// FindNearestWithMetrics is FindNearest with the query reported to t.
func FindNearestWithMetrics(in predict.Input, ds *dataset.Dataset, k int, t MetricsTracker) []Match {
	if t != nil {
		t.SimilarityQueriesInc()
	}

	matches := make([]Match, 0, ds.Len())
	for _, r := range ds.Records() {
		matches = append(matches, Match{
			ID:         r.ID,
			Similarity: Similarity(in, r),
			Purchased:  r.Purchased,
			Age:        r.Age,
			Brand:      r.Brand,
			Salary:     r.Salary,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})

	if k < 0 {
		k = 0
	}
	if k > len(matches) {
		k = len(matches)
	}
	return matches[:k]
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
