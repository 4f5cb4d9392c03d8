package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupCost(t *testing.T) {
	tests := []struct {
		model string
		want  *ModelCost
	}{
		{"gpt-4o-mini", &ModelCost{0.15, 0.6}},
		{"claude-sonnet-4-20250514", &ModelCost{3, 15}},
		{"claude-haiku-4-5-20251001", &ModelCost{1, 5}},
		{"google/gemini-3-flash-preview", &ModelCost{0.5, 3}},
		{"gemini-2.5-flash-preview-09-2025", &ModelCost{0.3, 2.5}},
		{"gpt-4o-2024-08-06", &ModelCost{2.5, 10}},
		{"GPT-4o", &ModelCost{2.5, 10}},
		{"meta-llama/llama-3-8b", nil},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			assert.Equal(t, tt.want, LookupCost(tt.model))
		})
	}
}

func TestModelCost_Cost(t *testing.T) {
	c := LookupCost("gpt-4o")
	require.NotNil(t, c)
	assert.InDelta(t, 0.0125, c.Cost(1000, 1000), 1e-9)
	assert.Zero(t, c.Cost(0, 0))
}
