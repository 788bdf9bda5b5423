package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/helmcode/claimsafe/pkg/model"
)

func TestClassify_Boundaries(t *testing.T) {
	tests := []struct {
		score int
		want  Tier
	}{
		{0, TierLow},
		{29, TierLow},
		{30, TierMedium},
		{50, TierMedium},
		{69, TierMedium},
		{70, TierHigh},
		{100, TierHigh},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.score), "score %d", tt.score)
	}
}

func TestClassify_AllScores(t *testing.T) {
	for s := 0; s <= 100; s++ {
		got := Classify(s)
		switch {
		case s < 30:
			assert.Equal(t, TierLow, got, "score %d", s)
		case s >= 70:
			assert.Equal(t, TierHigh, got, "score %d", s)
		default:
			assert.Equal(t, TierMedium, got, "score %d", s)
		}
	}
}

func TestProgressWidth(t *testing.T) {
	assert.Equal(t, 5, ProgressWidth(0))
	assert.Equal(t, 5, ProgressWidth(1))
	assert.Equal(t, 5, ProgressWidth(5))
	assert.Equal(t, 6, ProgressWidth(6))
	assert.Equal(t, 100, ProgressWidth(100))

	for s := 1; s <= 100; s++ {
		assert.Equal(t, max(s, 5), ProgressWidth(s))
	}
}

func TestResolveStyle_TierOverridesColor(t *testing.T) {
	for _, c := range []model.ColorToken{model.ColorGreen, model.ColorOrange, model.ColorRed, ""} {
		assert.Equal(t, StylePositive, ResolveStyle(TierLow, c), "low/%s", c)
		assert.Equal(t, StyleCritical, ResolveStyle(TierHigh, c), "high/%s", c)
	}
}

func TestResolveStyle_MediumUsesColor(t *testing.T) {
	assert.Equal(t, StyleCaution, ResolveStyle(TierMedium, model.ColorOrange))
	assert.Equal(t, StylePositive, ResolveStyle(TierMedium, model.ColorGreen))
	assert.Equal(t, StyleNeutral, ResolveStyle(TierMedium, model.ColorRed))
	assert.Equal(t, StyleNeutral, ResolveStyle(TierMedium, "purple"))
}

func TestCaption(t *testing.T) {
	assert.Contains(t, Caption(TierLow), "standard policy conditions")
	assert.Contains(t, Caption(TierHigh), "rejection")
	assert.Contains(t, Caption(TierMedium), "scrutiny")
}
