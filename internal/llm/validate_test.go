package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// feedbackTestSchema is a cut-down coaching reply.
var feedbackTestSchema = &Schema{
	Name: "coaching-feedback",
	Definition: map[string]any{
		"type":     "object",
		"required": []any{"coachRecommendation", "updatedProfile"},
		"properties": map[string]any{
			"coachRecommendation": map[string]any{"type": "string"},
			"updatedProfile": map[string]any{
				"type":     "object",
				"required": []any{"cii", "scores"},
				"properties": map[string]any{
					"cii":           map[string]any{"type": "number"},
					"thinkingStyle": map[string]any{"type": "string", "enum": []any{"Analyst", "Strategist"}},
					"scores": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "number"},
					},
				},
			},
		},
	},
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"coachRecommendation":"Slow down","updatedProfile":{"cii":104,"thinkingStyle":"Analyst","scores":[50,60]}}`, false},
		{"optional field omitted", `{"coachRecommendation":"x","updatedProfile":{"cii":100,"scores":[]}}`, false},
		{"missing required", `{"coachRecommendation":"x"}`, true},
		{"missing nested required", `{"coachRecommendation":"x","updatedProfile":{"cii":100}}`, true},
		{"wrong type", `{"coachRecommendation":"x","updatedProfile":{"cii":"high","scores":[]}}`, true},
		{"enum violation", `{"coachRecommendation":"x","updatedProfile":{"cii":100,"thinkingStyle":"Dreamer","scores":[]}}`, true},
		{"wrong item type", `{"coachRecommendation":"x","updatedProfile":{"cii":100,"scores":["a"]}}`, true},
		{"empty", ``, true},
		{"truncated beyond repair of shape", `{"coachRecommendation":"x",`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := validateResponse(feedbackTestSchema, json.RawMessage(tt.raw))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var inv *ErrInvalidResponse
			assert.ErrorAs(t, err, &inv)
		})
	}
}

func TestValidateResponse_NilSchemaPassesThrough(t *testing.T) {
	got, err := validateResponse(nil, json.RawMessage(`not json at all`))
	require.NoError(t, err)
	assert.Equal(t, "not json at all", string(got))
}

func TestValidateResponse_Repairs(t *testing.T) {
	tests := map[string]string{
		"code fence":     "```json\n{\"coachRecommendation\":\"x\",\"updatedProfile\":{\"cii\":101,\"scores\":[1]}}\n```",
		"bare fence":     "```\n{\"coachRecommendation\":\"x\",\"updatedProfile\":{\"cii\":101,\"scores\":[1]}}\n```",
		"trailing comma": `{"coachRecommendation":"x","updatedProfile":{"cii":101,"scores":[1],},}`,
		"missing brace":  `{"coachRecommendation":"x","updatedProfile":{"cii":101,"scores":[1]}`,
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := validateResponse(feedbackTestSchema, json.RawMessage(raw))
			require.NoError(t, err)

			var v struct {
				UpdatedProfile struct {
					CII int `json:"cii"`
				} `json:"updatedProfile"`
			}
			require.NoError(t, json.Unmarshal(got, &v), "repaired content must be plain JSON")
			assert.Equal(t, 101, v.UpdatedProfile.CII)
		})
	}
}

func TestCompile_Cached(t *testing.T) {
	a, err := compile(feedbackTestSchema)
	require.NoError(t, err)
	b, err := compile(feedbackTestSchema)
	require.NoError(t, err)
	assert.Same(t, a, b)

	_, err = compile(&Schema{Name: "broken", Definition: map[string]any{"type": 12}})
	assert.Error(t, err)
}
