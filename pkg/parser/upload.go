package parser

import (
	"encoding/json"
	"strings"

	"github.com/helmcode/claimsafe/pkg/model"
)

// ParseUploadResponse extracts the policy id from the body of
// POST /policy/upload-pdf. When no id can be read it returns the sentinel
// and extracted=false; the flow continues either way.
func ParseUploadResponse(raw []byte) (policyID string, extracted bool) {
	var resp struct {
		PolicyID any `json:"policy_id"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return model.SentinelPolicyID, false
	}
	id, ok := resp.PolicyID.(string)
	if !ok || strings.TrimSpace(id) == "" {
		return model.SentinelPolicyID, false
	}
	return strings.TrimSpace(id), true
}
