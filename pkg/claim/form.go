// Package claim turns collected claim details into a validated claim and
// the outbound analysis request.
package claim

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/helmcode/claimsafe/pkg/model"
)

// Form holds claim details as they were collected, before coercion.
type Form struct {
	TreatmentType string `yaml:"treatment_type" json:"treatment_type"`
	ClaimAmount   string `yaml:"claim_amount" json:"claim_amount"`
	PolicyAge     string `yaml:"policy_age_months" json:"policy_age_months"`
	IsPreExisting bool   `yaml:"is_pre_existing" json:"is_pre_existing"`
	WasDisclosed  bool   `yaml:"was_disclosed" json:"was_disclosed"`
	HospitalType  string `yaml:"hospital_type" json:"hospital_type"`
}

// Input validates the form and coerces numeric fields. An empty hospital
// type becomes "unknown"; an unrecognised one is rejected.
func (f Form) Input() (model.ClaimInput, error) {
	amount, err := ParseAmount(f.ClaimAmount)
	if err != nil {
		return model.ClaimInput{}, err
	}
	age, err := ParsePolicyAge(f.PolicyAge)
	if err != nil {
		return model.ClaimInput{}, err
	}

	hospital := model.HospitalUnknown
	if raw := strings.ToLower(strings.TrimSpace(f.HospitalType)); raw != "" {
		h, ok := model.ParseHospitalType(raw)
		if !ok {
			return model.ClaimInput{}, &model.ValidationError{
				Field:   "hospital type",
				Message: "must be one of network, non_network, unknown",
			}
		}
		hospital = h
	}

	in := model.ClaimInput{
		TreatmentType:   strings.TrimSpace(f.TreatmentType),
		ClaimAmount:     amount,
		PolicyAgeMonths: age,
		IsPreExisting:   f.IsPreExisting,
		WasDisclosed:    f.WasDisclosed,
		HospitalType:    hospital,
	}
	return in.Normalize(), nil
}

// MaxClaimAmount is the largest claim amount accepted, in rupees.
const MaxClaimAmount = 1e12

// plainAmount is a decimal number without exponent or base prefix.
var plainAmount = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)

// ParseAmount coerces a claim amount. Digit-group commas and a leading
// rupee sign are accepted; scientific and hex notation are not.
func ParseAmount(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "₹")
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, &model.ValidationError{Field: "claim amount", Message: "is required"}
	}
	if !plainAmount.MatchString(s) {
		return 0, &model.ValidationError{Field: "claim amount", Message: "must be a number, got " + strconv.Quote(raw)}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &model.ValidationError{Field: "claim amount", Message: "must be a number, got " + strconv.Quote(raw)}
	}
	if v < 0 {
		return 0, &model.ValidationError{Field: "claim amount", Message: "must not be negative"}
	}
	if v > MaxClaimAmount {
		return 0, &model.ValidationError{Field: "claim amount", Message: "must not exceed ₹10,00,00,00,00,000"}
	}
	return v, nil
}

// ParsePolicyAge coerces the policy age in whole months.
func ParsePolicyAge(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, &model.ValidationError{Field: "policy age", Message: "is required"}
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, &model.ValidationError{Field: "policy age", Message: "must be a whole number of months, got " + strconv.Quote(raw)}
	}
	if v < 0 {
		return 0, &model.ValidationError{Field: "policy age", Message: "must not be negative"}
	}
	return v, nil
}
