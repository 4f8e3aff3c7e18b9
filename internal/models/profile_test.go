package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTier(t *testing.T) {
	tests := []struct {
		input string
		want  Tier
	}{
		{input: "none", want: TierNone},
		{input: "basic", want: TierBasic},
		{input: "Silver", want: TierSilver},
		{input: "GOLD", want: TierGold},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tier, err := ParseTier(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, tier)
		})
	}
}

func TestParseTier_Unknown(t *testing.T) {
	_, err := ParseTier("platinum")
	assert.Error(t, err)
}

func TestTier_Valid(t *testing.T) {
	assert.True(t, TierGold.Valid())
	assert.False(t, Tier("platinum").Valid())
}

func TestProfile_SameUsername(t *testing.T) {
	p := Profile{Username: "Alice"}

	assert.True(t, p.SameUsername("alice"))
	assert.True(t, p.SameUsername("ALICE"))
	assert.False(t, p.SameUsername("bob"))
}
