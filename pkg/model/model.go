package model

// SentinelPolicyID identifies "no policy uploaded". It is a valid policy id,
// not an error state.
const SentinelPolicyID = "policy_default"

// HospitalType is the network status of the treating hospital.
type HospitalType string

const (
	HospitalNetwork    HospitalType = "network"
	HospitalNonNetwork HospitalType = "non_network"
	HospitalUnknown    HospitalType = "unknown"
)

// ParseHospitalType accepts the wire values plus a few spellings people
// type at a prompt ("non-network", "not sure").
func ParseHospitalType(s string) (HospitalType, bool) {
	switch s {
	case "network":
		return HospitalNetwork, true
	case "non_network", "non-network", "nonnetwork":
		return HospitalNonNetwork, true
	case "unknown", "not sure", "not_sure":
		return HospitalUnknown, true
	}
	return "", false
}

// Label is the display name used in the claim summary.
func (h HospitalType) Label() string {
	switch h {
	case HospitalNetwork:
		return "Network Hospital"
	case HospitalNonNetwork:
		return "Non-Network Hospital"
	default:
		return "Not Sure"
	}
}

// ClaimInput is the validated claim the user wants to file.
type ClaimInput struct {
	TreatmentType   string       `json:"treatment_type" yaml:"treatment_type"`
	ClaimAmount     float64      `json:"claim_amount" yaml:"claim_amount"`
	PolicyAgeMonths int          `json:"policy_age_months" yaml:"policy_age_months"`
	IsPreExisting   bool         `json:"is_pre_existing" yaml:"is_pre_existing"`
	WasDisclosed    bool         `json:"was_disclosed" yaml:"was_disclosed"`
	HospitalType    HospitalType `json:"hospital_type" yaml:"hospital_type"`
}

// Normalize enforces that disclosure is only meaningful for pre-existing
// conditions.
func (c ClaimInput) Normalize() ClaimInput {
	if !c.IsPreExisting {
		c.WasDisclosed = false
	}
	if c.HospitalType == "" {
		c.HospitalType = HospitalUnknown
	}
	return c
}

// AnalyzeRequest is the body of POST /claim/analyze.
type AnalyzeRequest struct {
	PolicyID             string       `json:"policy_id"`
	TreatmentType        string       `json:"treatment_type"`
	ClaimAmount          float64      `json:"claim_amount"`
	PolicyAgeMonths      int          `json:"policy_age_months"`
	IsPreExisting        bool         `json:"is_pre_existing"`
	PreExistingDisclosed bool         `json:"pre_existing_disclosed"`
	HospitalType         HospitalType `json:"hospital_type"`
}

// ColorToken is the advisory colour the scoring service attaches to a score.
type ColorToken string

const (
	ColorGreen  ColorToken = "green"
	ColorOrange ColorToken = "orange"
	ColorRed    ColorToken = "red"
)

// RecommendationCategory tags a recommendation as boilerplate or specific.
type RecommendationCategory string

const (
	CategoryGenericDocs    RecommendationCategory = "GENERIC_DOCS"
	CategoryGenericPreauth RecommendationCategory = "GENERIC_PREAUTH"
	CategorySpecific       RecommendationCategory = "SPECIFIC"
)

// IsGeneric reports whether the category marks boilerplate advice.
func (c RecommendationCategory) IsGeneric() bool {
	return c == CategoryGenericDocs || c == CategoryGenericPreauth
}

// RiskAssessmentResult is the normalised reply of the scoring service.
// Slices are never nil after parsing.
type RiskAssessmentResult struct {
	RiskScore                int                      `json:"risk_score" yaml:"risk_score"`
	RiskLevel                string                   `json:"risk_level" yaml:"risk_level"`
	Color                    ColorToken               `json:"color" yaml:"color"`
	RiskFactors              []string                 `json:"risk_factors" yaml:"risk_factors"`
	ApprovalReasons          []string                 `json:"approval_reasons" yaml:"approval_reasons"`
	Recommendations          []string                 `json:"recommendations" yaml:"recommendations"`
	RecommendationCategories []RecommendationCategory `json:"recommendation_categories,omitempty" yaml:"recommendation_categories,omitempty"`
}
