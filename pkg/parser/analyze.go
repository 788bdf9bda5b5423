package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/helmcode/claimsafe/pkg/model"
)

// wireResult mirrors the analyze reply loosely so that missing fields can be
// told apart from zero values.
type wireResult struct {
	RiskScore                json.RawMessage `json:"risk_score"`
	RiskLevel                string          `json:"risk_level"`
	Color                    string          `json:"color"`
	RiskFactors              []string        `json:"risk_factors"`
	ApprovalReasons          []string        `json:"approval_reasons"`
	Recommendations          []string        `json:"recommendations"`
	RecommendationCategories []string        `json:"recommendation_categories"`
}

// ParseAnalyzeResponse normalises the body of POST /claim/analyze. Missing
// lists become empty lists. A missing, non-numeric, fractional or out of
// range score is a contract violation.
func ParseAnalyzeResponse(raw []byte) (*model.RiskAssessmentResult, error) {
	body := bytes.TrimSpace(raw)
	if len(body) == 0 {
		return nil, &model.ContractError{Message: "empty response body"}
	}

	var w wireResult
	if err := json.Unmarshal(body, &w); err != nil {
		return nil, &model.ContractError{Message: fmt.Sprintf("invalid JSON: %v", err)}
	}

	score, err := parseScore(w.RiskScore)
	if err != nil {
		return nil, err
	}

	recs := clean(w.Recommendations)
	return &model.RiskAssessmentResult{
		RiskScore:                score,
		RiskLevel:                strings.TrimSpace(w.RiskLevel),
		Color:                    model.ColorToken(strings.ToLower(strings.TrimSpace(w.Color))),
		RiskFactors:              clean(w.RiskFactors),
		ApprovalReasons:          clean(w.ApprovalReasons),
		Recommendations:          recs,
		RecommendationCategories: categories(w.RecommendationCategories, len(recs), len(w.Recommendations)),
	}, nil
}

func parseScore(raw json.RawMessage) (int, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, &model.ContractError{Field: "risk_score", Message: "missing"}
	}

	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, &model.ContractError{Field: "risk_score", Message: fmt.Sprintf("not a number: %s", raw)}
	}
	if math.Trunc(v) != v {
		return 0, &model.ContractError{Field: "risk_score", Message: fmt.Sprintf("not an integer: %s", raw)}
	}
	if v < 0 || v > 100 {
		return 0, &model.ContractError{Field: "risk_score", Message: fmt.Sprintf("out of range 0-100: %s", raw)}
	}
	return int(v), nil
}

// clean drops blank entries and surrounding whitespace, keeping order.
func clean(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// categories keeps the tags only if they still line up one-to-one with the
// recommendations after cleaning.
func categories(in []string, kept, original int) []model.RecommendationCategory {
	if len(in) == 0 || len(in) != original || kept != original {
		return nil
	}
	out := make([]model.RecommendationCategory, len(in))
	for i, c := range in {
		out[i] = model.RecommendationCategory(strings.ToUpper(strings.TrimSpace(c)))
	}
	return out
}
