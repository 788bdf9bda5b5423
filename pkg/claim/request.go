package claim

import (
	"strings"

	"github.com/helmcode/claimsafe/pkg/model"
)

// BuildRequest validates the form and assembles the analysis request. A
// blank policy id means the upload was skipped and maps to the sentinel.
func BuildRequest(f Form, policyID string) (model.AnalyzeRequest, error) {
	in, err := f.Input()
	if err != nil {
		return model.AnalyzeRequest{}, err
	}
	return RequestFor(in, policyID), nil
}

// RequestFor assembles the request for an already validated claim.
func RequestFor(in model.ClaimInput, policyID string) model.AnalyzeRequest {
	in = in.Normalize()
	return model.AnalyzeRequest{
		PolicyID:             PolicyIDOrSentinel(policyID),
		TreatmentType:        in.TreatmentType,
		ClaimAmount:          in.ClaimAmount,
		PolicyAgeMonths:      in.PolicyAgeMonths,
		IsPreExisting:        in.IsPreExisting,
		PreExistingDisclosed: in.WasDisclosed,
		HospitalType:         in.HospitalType,
	}
}

// PolicyIDOrSentinel returns id, or the sentinel when id is blank.
func PolicyIDOrSentinel(id string) string {
	if strings.TrimSpace(id) == "" {
		return model.SentinelPolicyID
	}
	return id
}
