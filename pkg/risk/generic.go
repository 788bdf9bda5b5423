package risk

import (
	"strings"

	"github.com/helmcode/claimsafe/pkg/model"
)

// GenericRecommendations is the reference pair of boilerplate advice the
// scoring service attaches to most claims.
var GenericRecommendations = [...]string{
	"Ensure all documents are submitted within policy timelines",
	"Obtain pre-authorization from insurer before treatment if required",
}

// IsOnlyGeneric reports whether every recommendation is boilerplate. Matching
// is containment in either direction so small phrasing changes on the
// service side still match. Any risk factor makes the answer false.
func IsOnlyGeneric(recommendations, riskFactors []string) bool {
	if len(recommendations) == 0 || len(riskFactors) > 0 {
		return false
	}
	for _, rec := range recommendations {
		if !matchesGeneric(rec) {
			return false
		}
	}
	return true
}

// IsOnlyGenericTagged is the category-based variant used when the service
// tags each recommendation. It returns ok=false when the tags cannot be
// used (missing or not one per recommendation) so the caller can fall back
// to IsOnlyGeneric.
func IsOnlyGenericTagged(recommendations []string, categories []model.RecommendationCategory, riskFactors []string) (generic, ok bool) {
	if len(categories) == 0 || len(categories) != len(recommendations) {
		return false, false
	}
	if len(riskFactors) > 0 {
		return false, true
	}
	for _, c := range categories {
		if !c.IsGeneric() {
			return false, true
		}
	}
	return true, true
}

// Generic decides using tags when they are usable and text matching
// otherwise.
func Generic(r model.RiskAssessmentResult) bool {
	if generic, ok := IsOnlyGenericTagged(r.Recommendations, r.RecommendationCategories, r.RiskFactors); ok {
		return generic
	}
	return IsOnlyGeneric(r.Recommendations, r.RiskFactors)
}

func matchesGeneric(rec string) bool {
	for _, gen := range GenericRecommendations {
		if strings.Contains(rec, gen) || strings.Contains(gen, rec) {
			return true
		}
	}
	return false
}
