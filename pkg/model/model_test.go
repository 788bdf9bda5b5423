package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_ClearsDisclosureWithoutPreExisting(t *testing.T) {
	in := ClaimInput{IsPreExisting: false, WasDisclosed: true}
	out := in.Normalize()

	assert.False(t, out.WasDisclosed)
	assert.Equal(t, HospitalUnknown, out.HospitalType)
}

func TestNormalize_KeepsDisclosureForPreExisting(t *testing.T) {
	in := ClaimInput{IsPreExisting: true, WasDisclosed: true, HospitalType: HospitalNetwork}
	out := in.Normalize()

	assert.True(t, out.WasDisclosed)
	assert.Equal(t, HospitalNetwork, out.HospitalType)
}

func TestParseHospitalType(t *testing.T) {
	tests := []struct {
		in   string
		want HospitalType
		ok   bool
	}{
		{"network", HospitalNetwork, true},
		{"non_network", HospitalNonNetwork, true},
		{"non-network", HospitalNonNetwork, true},
		{"unknown", HospitalUnknown, true},
		{"not sure", HospitalUnknown, true},
		{"", "", false},
		{"private", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseHospitalType(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestHospitalLabel(t *testing.T) {
	assert.Equal(t, "Network Hospital", HospitalNetwork.Label())
	assert.Equal(t, "Non-Network Hospital", HospitalNonNetwork.Label())
	assert.Equal(t, "Not Sure", HospitalUnknown.Label())
	assert.Equal(t, "Not Sure", HospitalType("").Label())
}

func TestErrorMessages(t *testing.T) {
	v := &ValidationError{Field: "claim amount", Message: "must be a number"}
	assert.Equal(t, "invalid claim amount: must be a number", v.Error())

	c := &ContractError{Field: "risk_score", Message: "missing"}
	assert.Contains(t, c.Error(), "risk_score: missing")
	assert.NotContains(t, (&ContractError{Message: "empty body"}).Error(), ": :")
}
