// Package profile derives customer personas, segment cards, and marketing
// recommendations from record attributes via fixed threshold rules.
package profile

import "purchase-insight/internal/dataset"

// Persona labels, in evaluation order. The first matching rule wins.
const (
	PersonaBrandLoyalist   = "Brand Loyalist"
	PersonaTechEnthusiast  = "Tech Enthusiast"
	PersonaBargainHunter   = "Bargain Hunter"
	PersonaWarrantyFocused = "Warranty Focused"
	PersonaGeneralConsumer = "General Consumer"
)

// Persona classifies a record. Rules are checked in a fixed precedence
// order; a record missing the fields a rule needs simply fails that rule.
func Persona(r dataset.Record) string {
	switch {
	case r.LoyaltyScore.Valid && r.LoyaltyScore.Value >= 8:
		return PersonaBrandLoyalist
	case r.OnlineActivity.Valid && r.OnlineActivity.Value >= 80 && r.TechSavvy:
		return PersonaTechEnthusiast
	case r.Salary.Valid && r.Salary.Value <= 50000 && r.PrevPurchases.Valid && r.PrevPurchases.Value >= 2:
		return PersonaBargainHunter
	case r.WarrantyInterest && r.SessionTime.Valid && r.SessionTime.Value > 2:
		return PersonaWarrantyFocused
	default:
		return PersonaGeneralConsumer
	}
}

// maxRecommendations bounds the recommendation list per record.
const maxRecommendations = 3

// Recommendations produces marketing suggestions for a record: up to two
// persona-specific entries followed by attribute-triggered ones, truncated
// to three.
func Recommendations(r dataset.Record, persona string) []string {
	var recs []string

	switch persona {
	case PersonaBrandLoyalist:
		recs = append(recs,
			"Offer exclusive brand loyalty rewards and early access to new models",
			"Highlight brand-specific features and ecosystem benefits")
	case PersonaTechEnthusiast:
		recs = append(recs,
			"Focus on technical specifications and cutting-edge features",
			"Provide opportunities for beta testing and advanced user programs")
	case PersonaBargainHunter:
		recs = append(recs,
			"Emphasize value proposition and cost-effective options",
			"Create bundle offers with accessories or services")
	case PersonaWarrantyFocused:
		recs = append(recs,
			"Highlight extended warranty options and protection plans",
			"Emphasize durability and customer support benefits")
	}

	if r.SocialInfluence.Valid && r.SocialInfluence.Value > 70 {
		recs = append(recs, "Target with social media campaigns and influencer partnerships")
	}

	if r.Salary.Valid && r.Salary.Value > 65000 {
		recs = append(recs, "Present premium model options with advanced features")
	} else {
		recs = append(recs, "Highlight affordable models with good value-to-feature ratio")
	}

	if r.SessionTime.Valid && r.SessionTime.Value > 2.5 {
		recs = append(recs, "Emphasize battery life and display quality for heavy users")
	}

	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}

// Segment is one customer-segment card: how many records match the segment
// rule and how often they purchased.
type Segment struct {
	Name         string
	Icon         string
	Count        int
	PurchaseRate float64 // percentage
}

// Segments evaluates the fixed segment definitions over the dataset.
// Segments with no matching records are omitted. A record may belong to
// several segments; the cards are independent cohorts, not a partition.
func Segments(ds *dataset.Dataset) []Segment {
	defs := []struct {
		name  string
		icon  string
		match func(r dataset.Record) bool
	}{
		{"Tech Enthusiast", "💻", func(r dataset.Record) bool {
			return r.TechSavvy && r.OnlineActivity.Valid && r.OnlineActivity.Value >= 80
		}},
		{"Brand Loyalist", "🏆", func(r dataset.Record) bool {
			return r.LoyaltyScore.Valid && r.LoyaltyScore.Value >= 8
		}},
		{"Bargain Hunter", "🔍", func(r dataset.Record) bool {
			return r.Salary.Valid && r.Salary.Value < 50000 &&
				r.PrevPurchases.Valid && r.PrevPurchases.Value >= 2
		}},
		{"Premium Buyer", "💎", func(r dataset.Record) bool {
			return r.Salary.Valid && r.Salary.Value >= 65000 && r.WarrantyInterest
		}},
	}

	var segments []Segment
	for _, def := range defs {
		count, bought := 0, 0
		for _, r := range ds.Records() {
			if !def.match(r) {
				continue
			}
			count++
			if r.Purchased {
				bought++
			}
		}
		if count == 0 {
			continue
		}
		segments = append(segments, Segment{
			Name:         def.name,
			Icon:         def.icon,
			Count:        count,
			PurchaseRate: float64(bought) / float64(count) * 100,
		})
	}
	return segments
}
