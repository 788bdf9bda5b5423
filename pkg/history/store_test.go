package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helmcode/claimsafe/pkg/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(context.Background(), filepath.Join(t.TempDir(), "nested", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	return st
}

func sampleResult(score int) model.RiskAssessmentResult {
	return model.RiskAssessmentResult{
		RiskScore:       score,
		RiskLevel:       "Medium Risk",
		Color:           model.ColorOrange,
		RiskFactors:     []string{"Hospital not in network"},
		ApprovalReasons: []string{},
		Recommendations: []string{"Choose a network hospital"},
	}
}

func TestSaveAndGet(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	in := model.ClaimInput{
		TreatmentType:   "Hernia repair",
		ClaimAmount:     80000,
		PolicyAgeMonths: 10,
		HospitalType:    model.HospitalNonNetwork,
	}
	rec, err := st.Save(ctx, "pol-1", in, sampleResult(55))
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)

	got, err := st.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "pol-1", got.PolicyID)
	assert.Equal(t, in, got.Claim)
	assert.Equal(t, sampleResult(55), got.Result)
	assert.WithinDuration(t, rec.CreatedAt, got.CreatedAt, time.Second)
}

func TestGet_NotFound(t *testing.T) {
	st := newTestStore(t)

	_, err := st.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList_NewestFirst(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	var ids []string
	for _, score := range []int{10, 50, 90} {
		rec, err := st.Save(ctx, model.SentinelPolicyID, model.ClaimInput{}, sampleResult(score))
		require.NoError(t, err)
		ids = append(ids, rec.ID)
		time.Sleep(2 * time.Millisecond)
	}

	recs, err := st.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, ids[2], recs[0].ID)
	assert.Equal(t, 90, recs[0].Result.RiskScore)
	assert.Equal(t, ids[0], recs[2].ID)

	limited, err := st.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestList_Empty(t *testing.T) {
	st := newTestStore(t)

	recs, err := st.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, recs)
}
