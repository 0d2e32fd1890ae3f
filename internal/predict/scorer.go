// Package predict implements the rule-based purchase-likelihood scorer and
// its explanation generator. The point table is the model: the exact
// thresholds and weights below are the contract, and any change to them
// changes observable behavior.
package predict

import "fmt"

// MetricsTracker receives prediction counters. The metrics package provides
// the production implementation.
type MetricsTracker interface {
	PredictionsInc()
	PredictionScoreObserve(score float64)
}

// Score computes the purchase-likelihood score for a fully-populated input.
// The result is clamped to [0, 100]. The function is pure: identical input
// always yields an identical score, with no dataset dependency.
//
// Point table:
//
//	age        <30 +15, <40 +10, else +5
//	brand      Samsung/Apple +10, Xiaomi +15, other +8
//	os         Android +12, else +8
//	tech savvy +15
//	activity   +min(15, activity/7)
//	purchases  +min(10, purchases*3)
//	loyalty    +loyalty
//	influence  +min(10, influence/10)
//	warranty   +8
func Score(in Input) float64 {
	score := 0.0

	switch {
	case in.Age < 30:
		score += 15
	case in.Age < 40:
		score += 10
	default:
		score += 5
	}

	switch in.Brand {
	case "Samsung", "Apple":
		score += 10
	case "Xiaomi":
		score += 15
	default:
		score += 8
	}

	if in.OS == "Android" {
		score += 12
	} else {
		score += 8
	}

	if in.TechSavvy {
		score += 15
	}

	score += minFloat(15, float64(in.OnlineActivity/7))
	score += minFloat(10, float64(in.PrevPurchases*3))
	score += float64(in.LoyaltyScore)
	score += minFloat(10, float64(in.SocialInfluence/10))

	if in.WarrantyInterest {
		score += 8
	}

	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}

// ScoreWithMetrics is Score with the prediction reported to t.
func ScoreWithMetrics(in Input, t MetricsTracker) float64 {
	score := Score(in)
	if t != nil {
		t.PredictionsInc()
		t.PredictionScoreObserve(score)
	}
	return score
}

// maxFactors bounds how many explanatory statements a prediction carries.
const maxFactors = 4

// Explain lists the human-readable factors behind a score, in a fixed
// candidate order, truncated to four. When fewer than three conditions
// fire, one generic statement keyed on the score is appended for scores
// above 70 or below 40; the middle band stays silent.
func Explain(in Input, score float64) []string {
	var factors []string

	if in.TechSavvy {
		factors = append(factors, "Tech-savvy users are more likely to purchase smartphones")
	}
	if in.Age < 30 {
		factors = append(factors, "Younger users (under 30) show higher purchase rates")
	}
	if in.OnlineActivity > 70 {
		factors = append(factors, "High online activity correlates with smartphone purchases")
	}
	if in.Brand == "Samsung" || in.Brand == "Xiaomi" {
		factors = append(factors, fmt.Sprintf("%s has strong purchase conversion in this demographic", in.Brand))
	}
	if in.PrevPurchases >= 3 {
		factors = append(factors, "Users with 3+ previous purchases are likely repeat buyers")
	}
	if in.LoyaltyScore >= 7 {
		factors = append(factors, "High brand loyalty (7+) is a positive purchase indicator")
	}
	if in.WarrantyInterest {
		factors = append(factors, "Interest in warranty options indicates purchase intent")
	}
	if in.SocialInfluence > 80 {
		factors = append(factors, "High social media influence suggests purchase receptiveness")
	}

	if len(factors) < 3 {
		if score > 70 {
			factors = append(factors, "Overall profile matches high-likelihood purchaser patterns")
		} else if score < 40 {
			factors = append(factors, "Profile characteristics suggest lower purchase probability")
		}
	}

	if len(factors) > maxFactors {
		factors = factors[:maxFactors]
	}
	return factors
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
