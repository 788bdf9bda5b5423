package claim

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helmcode/claimsafe/pkg/model"
)

func TestBuildRequest_WireShape(t *testing.T) {
	f := validForm()
	f.IsPreExisting = true
	f.WasDisclosed = true

	req, err := BuildRequest(f, "pol-123")
	require.NoError(t, err)

	data, err := json.Marshal(req)
	require.NoError(t, err)

	var wire map[string]any
	require.NoError(t, json.Unmarshal(data, &wire))
	assert.Equal(t, "pol-123", wire["policy_id"])
	assert.Equal(t, "Knee replacement", wire["treatment_type"])
	assert.InDelta(t, 150000, wire["claim_amount"], 0.001)
	assert.InDelta(t, 26, wire["policy_age_months"], 0.001)
	assert.Equal(t, true, wire["is_pre_existing"])
	assert.Equal(t, true, wire["pre_existing_disclosed"])
	assert.Equal(t, "network", wire["hospital_type"])
}

func TestBuildRequest_SentinelPolicy(t *testing.T) {
	req, err := BuildRequest(validForm(), "")
	require.NoError(t, err)
	assert.Equal(t, model.SentinelPolicyID, req.PolicyID)

	req, err = BuildRequest(validForm(), "   ")
	require.NoError(t, err)
	assert.Equal(t, model.SentinelPolicyID, req.PolicyID)
}

func TestBuildRequest_ValidationStopsEarly(t *testing.T) {
	f := validForm()
	f.ClaimAmount = "abc"

	req, err := BuildRequest(f, "pol-1")
	require.Error(t, err)
	assert.Equal(t, model.AnalyzeRequest{}, req)
}

func TestRequestFor_NormalizesInput(t *testing.T) {
	req := RequestFor(model.ClaimInput{WasDisclosed: true}, "p")
	assert.False(t, req.PreExistingDisclosed)
	assert.Equal(t, model.HospitalUnknown, req.HospitalType)
}
