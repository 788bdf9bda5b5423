// Package presentation derives the render-ready layout of a risk report
// from a scoring result.
package presentation

import (
	"slices"

	"github.com/helmcode/claimsafe/pkg/model"
	"github.com/helmcode/claimsafe/pkg/risk"
)

// BlockKind names a section of the report.
type BlockKind string

const (
	KindApproval        BlockKind = "approval"
	KindRiskFactors     BlockKind = "risk-factors"
	KindPositiveFactors BlockKind = "positive-factors"
	KindRecommendations BlockKind = "recommendations"
)

// Section titles.
const (
	TitleApproval       = "Why this claim is likely to be approved"
	TitleRejected       = "Why this claim is likely to be rejected"
	TitleReview         = "Why this claim needs review"
	TitlePositive       = "Positive factors"
	TitleBestPractices  = "Optional best practices"
	TitleImproveChances = "What you can do to improve approval chances"
)

// Block is one section of the report.
type Block struct {
	Kind  BlockKind  `json:"kind" yaml:"kind"`
	Style risk.Style `json:"style" yaml:"style"`
	Title string     `json:"title" yaml:"title"`
	Items []string   `json:"items" yaml:"items"`
	// Nested marks a sub-block rendered inside the preceding block.
	Nested bool `json:"nested,omitempty" yaml:"nested,omitempty"`
}

// State is the full layout of a report. It is rebuilt for every result and
// never modified afterwards.
type State struct {
	Score         int        `json:"score" yaml:"score"`
	Level         string     `json:"level" yaml:"level"`
	Tier          risk.Tier  `json:"tier" yaml:"tier"`
	Tone          risk.Style `json:"tone" yaml:"tone"`
	ProgressWidth int        `json:"progress_width" yaml:"progress_width"`
	Caption       string     `json:"caption" yaml:"caption"`
	Blocks        []Block    `json:"blocks" yaml:"blocks"`
}

// Derive builds the report layout. It is a pure function of r.
func Derive(r model.RiskAssessmentResult) State {
	tier := risk.Classify(r.RiskScore)

	st := State{
		Score:         r.RiskScore,
		Level:         r.RiskLevel,
		Tier:          tier,
		Tone:          risk.ResolveStyle(tier, r.Color),
		ProgressWidth: risk.ProgressWidth(r.RiskScore),
		Caption:       risk.Caption(tier),
		Blocks:        []Block{},
	}

	hasFactors := len(r.RiskFactors) > 0

	switch {
	case tier == risk.TierLow && !hasFactors:
		st.Blocks = append(st.Blocks, Block{
			Kind:  KindApproval,
			Style: risk.StylePositive,
			Title: TitleApproval,
			Items: items(r.ApprovalReasons),
		})
	case hasFactors:
		factors := Block{
			Kind:  KindRiskFactors,
			Style: risk.StyleCaution,
			Title: TitleReview,
			Items: items(r.RiskFactors),
		}
		if tier == risk.TierHigh {
			factors.Style = risk.StyleCritical
			factors.Title = TitleRejected
		}
		st.Blocks = append(st.Blocks, factors)

		if len(r.ApprovalReasons) > 0 {
			st.Blocks = append(st.Blocks, Block{
				Kind:   KindPositiveFactors,
				Style:  risk.StylePositive,
				Title:  TitlePositive,
				Items:  items(r.ApprovalReasons),
				Nested: true,
			})
		}
	}

	if len(r.Recommendations) > 0 {
		recs := Block{
			Kind:  KindRecommendations,
			Style: risk.StyleInfo,
			Title: TitleImproveChances,
			Items: items(r.Recommendations),
		}
		if risk.Generic(r) {
			recs.Style = risk.StyleNeutral
			recs.Title = TitleBestPractices
		}
		st.Blocks = append(st.Blocks, recs)
	}

	return st
}

// Block returns the first block of the given kind.
func (s State) Block(kind BlockKind) (Block, bool) {
	for _, b := range s.Blocks {
		if b.Kind == kind {
			return b, true
		}
	}
	return Block{}, false
}

// Kinds lists the block kinds in display order.
func (s State) Kinds() []BlockKind {
	kinds := make([]BlockKind, 0, len(s.Blocks))
	for _, b := range s.Blocks {
		kinds = append(kinds, b.Kind)
	}
	return kinds
}

func items(src []string) []string {
	if len(src) == 0 {
		return []string{}
	}
	return slices.Clone(src)
}
