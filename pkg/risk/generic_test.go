package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/helmcode/claimsafe/pkg/model"
)

const (
	docsRec    = "Ensure all documents are submitted within policy timelines"
	preauthRec = "Obtain pre-authorization from insurer before treatment if required"
)

func TestIsOnlyGeneric(t *testing.T) {
	tests := []struct {
		name    string
		recs    []string
		factors []string
		want    bool
	}{
		{"empty recommendations", nil, nil, false},
		{"empty slices", []string{}, []string{}, false},
		{"single canonical", []string{docsRec}, nil, true},
		{"both canonical", []string{docsRec, preauthRec}, nil, true},
		{"risk factor overrides", []string{docsRec}, []string{"Waiting period not met"}, false},
		{"canonical with suffix", []string{docsRec + " to avoid delays."}, nil, true},
		{"shortened phrasing", []string{"Obtain pre-authorization from insurer"}, nil, true},
		{"one specific", []string{docsRec, "Disclose your diabetes history to the insurer"}, nil, false},
		{"only specific", []string{"Choose a network hospital"}, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsOnlyGeneric(tt.recs, tt.factors))
		})
	}
}

func TestIsOnlyGenericTagged(t *testing.T) {
	recs := []string{"Submit papers on time", "Get approval first"}

	generic, ok := IsOnlyGenericTagged(recs, []model.RecommendationCategory{model.CategoryGenericDocs, model.CategoryGenericPreauth}, nil)
	assert.True(t, ok)
	assert.True(t, generic)

	generic, ok = IsOnlyGenericTagged(recs, []model.RecommendationCategory{model.CategoryGenericDocs, model.CategorySpecific}, nil)
	assert.True(t, ok)
	assert.False(t, generic)

	generic, ok = IsOnlyGenericTagged(recs, []model.RecommendationCategory{model.CategoryGenericDocs, model.CategoryGenericDocs}, []string{"Waiting period not met"})
	assert.True(t, ok)
	assert.False(t, generic)

	_, ok = IsOnlyGenericTagged(recs, []model.RecommendationCategory{model.CategoryGenericDocs}, nil)
	assert.False(t, ok, "length mismatch falls back")

	_, ok = IsOnlyGenericTagged(recs, nil, nil)
	assert.False(t, ok)
}

func TestGeneric_PrefersTagsThenText(t *testing.T) {
	tagged := model.RiskAssessmentResult{
		Recommendations:          []string{"Keep your discharge summary"},
		RecommendationCategories: []model.RecommendationCategory{model.CategoryGenericDocs},
	}
	assert.True(t, Generic(tagged))

	untagged := model.RiskAssessmentResult{Recommendations: []string{docsRec}}
	assert.True(t, Generic(untagged))

	mismatched := model.RiskAssessmentResult{
		Recommendations:          []string{"Choose a network hospital", docsRec},
		RecommendationCategories: []model.RecommendationCategory{model.CategoryGenericDocs},
	}
	assert.False(t, Generic(mismatched))
}
