// Package risk turns a numeric claim-rejection score into a tier, a display
// tone and a progress width, and decides whether recommendations are
// boilerplate.
package risk

import "github.com/helmcode/claimsafe/pkg/model"

// Tier is the risk band derived from the score alone.
type Tier string

const (
	TierLow    Tier = "low"
	TierMedium Tier = "medium"
	TierHigh   Tier = "high"
)

// Tier boundaries. LOW is strictly below lowCeiling, HIGH starts at
// highFloor inclusive.
const (
	lowCeiling = 30
	highFloor  = 70
)

// MinProgressWidth keeps a zero score visible as a sliver.
const MinProgressWidth = 5

// Style is the tone a section or indicator is rendered with.
type Style string

const (
	StylePositive Style = "positive"
	StyleCaution  Style = "caution"
	StyleCritical Style = "critical"
	StyleNeutral  Style = "neutral"
	StyleInfo     Style = "info"
)

// Classify maps a score in [0,100] to its tier.
func Classify(score int) Tier {
	switch {
	case score < lowCeiling:
		return TierLow
	case score >= highFloor:
		return TierHigh
	default:
		return TierMedium
	}
}

// ProgressWidth returns the bar width in percent for a score.
func ProgressWidth(score int) int {
	if score <= 0 {
		return MinProgressWidth
	}
	return max(score, MinProgressWidth)
}

// ResolveStyle picks the tone for the score indicator. The tier wins at both
// ends; the service colour only matters in the medium band.
func ResolveStyle(tier Tier, color model.ColorToken) Style {
	switch tier {
	case TierLow:
		return StylePositive
	case TierHigh:
		return StyleCritical
	}
	switch color {
	case model.ColorOrange:
		return StyleCaution
	case model.ColorGreen:
		return StylePositive
	default:
		return StyleNeutral
	}
}

// Caption is the one-line explanation shown under the score.
func Caption(tier Tier) string {
	switch tier {
	case TierLow:
		return "This claim meets standard policy conditions"
	case TierHigh:
		return "This claim has significant risk factors that may lead to rejection"
	default:
		return "Higher scores indicate greater likelihood of claim scrutiny"
	}
}
