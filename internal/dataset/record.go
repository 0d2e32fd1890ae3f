// Package dataset provides ingestion and storage for the customer purchase
// dataset. Raw delimited text is parsed once into typed, validated records;
// everything downstream operates on the typed values and never re-parses
// raw strings.
package dataset

import (
	"encoding/json"
	"strconv"
)

// Column names expected in the input header. Matching is case-sensitive.
const (
	ColID              = "User_ID"
	ColAge             = "Age"
	ColSalary          = "Salary"
	ColBrand           = "Brand_Preference"
	ColOS              = "Preferred_OS"
	ColTechSavvy       = "Tech_Savvy"
	ColOnlineActivity  = "Online_Activity_Score"
	ColPrevPurchases   = "Previous_Purchases"
	ColLoyaltyScore    = "Loyalty_Score"
	ColSessionTime     = "Avg_Session_Time"
	ColSocialInfluence = "Social_Media_Influence"
	ColWarranty        = "Warranty_Interest"
	ColPurchased       = "Purchased"
)

// OptInt is an integer field that may be absent. Missing values stay
// missing; they are never coerced to zero.
type OptInt struct {
	Value int
	Valid bool
}

// MarshalJSON encodes a missing value as null so API clients can tell
// "absent" from zero.
func (o OptInt) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// OptFloat is a float field that may be absent.
type OptFloat struct {
	Value float64
	Valid bool
}

func (o OptFloat) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Record is one customer observation with its purchase outcome.
// Age is always present; rows without a parseable age never make it
// into a Dataset. Fields retains the raw header-to-value mapping for
// table display and substring search.
type Record struct {
	ID               string
	Age              int
	Salary           OptInt
	Brand            string
	OS               string
	TechSavvy        bool
	OnlineActivity   OptInt
	PrevPurchases    OptInt
	LoyaltyScore     OptInt
	SessionTime      OptFloat
	SocialInfluence  OptInt
	WarrantyInterest bool
	Purchased        bool

	Fields map[string]string
}

// parseBool decodes the dataset's boolean encoding: the literal "1" is
// true, anything else is false.
func parseBool(s string) bool {
	return s == "1"
}

func parseOptInt(s string) OptInt {
	v, err := strconv.Atoi(s)
	if err != nil {
		return OptInt{}
	}
	return OptInt{Value: v, Valid: true}
}

func parseOptFloat(s string) OptFloat {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return OptFloat{}
	}
	return OptFloat{Value: v, Valid: true}
}
