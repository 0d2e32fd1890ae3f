package predict

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Input is the full attribute set the scorer requires. Every field must be
// supplied; the scorer never fills gaps on its own. Callers that want the
// what-if convenience defaults merge them explicitly via ApplyWhatIfDefaults.
type Input struct {
	Age              int     `json:"age" validate:"required,gt=0,lte=120"`
	Salary           int     `json:"salary" validate:"gte=0"`
	Brand            string  `json:"brand" validate:"required"`
	OS               string  `json:"os" validate:"required"`
	TechSavvy        bool    `json:"tech_savvy"`
	OnlineActivity   int     `json:"online_activity" validate:"gte=0,lte=100"`
	PrevPurchases    int     `json:"previous_purchases" validate:"gte=0"`
	LoyaltyScore     int     `json:"loyalty_score" validate:"required,gte=1,lte=10"`
	SessionTime      float64 `json:"session_time" validate:"gte=0"`
	SocialInfluence  int     `json:"social_influence" validate:"gte=0,lte=100"`
	WarrantyInterest bool    `json:"warranty_interest"`
}

// InputError reports a missing or out-of-range prediction input field.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("predict: invalid input field %s: %s", e.Field, e.Reason)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the input for completeness and plausible ranges. It
// returns an *InputError naming the first offending field, or nil.
func (in Input) Validate() error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		ve := verrs[0]
		reason := fmt.Sprintf("failed %q check", ve.Tag())
		if ve.Param() != "" {
			reason = fmt.Sprintf("failed %q=%s check", ve.Tag(), ve.Param())
		}
		return &InputError{Field: ve.Field(), Reason: reason}
	}
	return &InputError{Field: "input", Reason: err.Error()}
}

// WhatIfDefaults returns the attribute values the what-if explorer holds
// fixed while the caller varies the rest.
func WhatIfDefaults() Input {
	return Input{
		Brand:           "Samsung",
		OS:              "Android",
		PrevPurchases:   2,
		SessionTime:     2.0,
		SocialInfluence: 60,
	}
}

// ApplyWhatIfDefaults fills the zero-valued fields of in that the what-if
// form does not expose. This is the one sanctioned defaulting path; the
// scorer itself never defaults.
func ApplyWhatIfDefaults(in Input) Input {
	def := WhatIfDefaults()
	if in.Brand == "" {
		in.Brand = def.Brand
	}
	if in.OS == "" {
		in.OS = def.OS
	}
	if in.PrevPurchases == 0 {
		in.PrevPurchases = def.PrevPurchases
	}
	if in.SessionTime == 0 {
		in.SessionTime = def.SessionTime
	}
	if in.SocialInfluence == 0 {
		in.SocialInfluence = def.SocialInfluence
	}
	return in
}
