package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func geminiServer(t *testing.T, thinking int, handler http.HandlerFunc) *GeminiProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := newGeminiProvider(context.Background(),
		GeminiConfig{APIKey: "test-key", Model: "gemini-flash", ThinkingBudget: thinking},
		genai.HTTPOptions{BaseURL: server.URL})
	require.NoError(t, err)
	return p
}

func geminiReply(text, finish string) map[string]any {
	return map[string]any{
		"candidates": []map[string]any{{
			"content":      map[string]any{"role": "model", "parts": []map[string]any{{"text": text}}},
			"finishReason": finish,
		}},
		"usageMetadata": map[string]any{
			"promptTokenCount":     40,
			"candidatesTokenCount": 12,
			"totalTokenCount":      60,
		},
	}
}

func TestGeminiProvider_Generate(t *testing.T) {
	var (
		path string
		body map[string]any
	)
	p := geminiServer(t, 0, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&body)
		writeJSON(w, http.StatusOK, geminiReply(`{"id":3,"title":"Patterns"}`, "STOP"))
	})

	resp, err := p.Generate(context.Background(), Request{
		System: "You are an assessment designer.",
		Messages: []Message{
			{Role: RoleUser, Content: "Generate level 3."},
			{Role: RoleAssistant, Content: "{}"},
			{Role: RoleUser, Content: "Again."},
		},
		Schema:    levelTestSchema,
		MaxTokens: 512,
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{"id":3,"title":"Patterns"}`, string(resp.Content))
	assert.Equal(t, "end", resp.StopReason)
	assert.Equal(t, Usage{InputTokens: 40, OutputTokens: 12, TotalTokens: 60}, resp.Usage)
	assert.True(t, strings.HasSuffix(path, "/models/gemini-2.5-flash:generateContent"), path)

	contents, _ := body["contents"].([]any)
	require.Len(t, contents, 3)
	assert.Equal(t, "model", contents[1].(map[string]any)["role"])

	gen, _ := body["generationConfig"].(map[string]any)
	require.NotNil(t, gen)
	assert.Equal(t, "application/json", gen["responseMimeType"])
	assert.Equal(t, "object", gen["responseJsonSchema"].(map[string]any)["type"])
	assert.EqualValues(t, 512, gen["maxOutputTokens"])
	assert.EqualValues(t, 0, gen["thinkingConfig"].(map[string]any)["thinkingBudget"])
	assert.NotNil(t, body["systemInstruction"])
}

func TestGeminiProvider_DefaultThinking(t *testing.T) {
	var body map[string]any
	p := geminiServer(t, -1, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		writeJSON(w, http.StatusOK, geminiReply(`{"id":1,"title":"x"}`, "STOP"))
	})

	_, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
		Schema:   levelTestSchema,
	})
	require.NoError(t, err)
	gen, _ := body["generationConfig"].(map[string]any)
	assert.NotContains(t, gen, "thinkingConfig")
	assert.NotContains(t, gen, "maxOutputTokens")
}

func TestGeminiProvider_TruncatedOutput(t *testing.T) {
	p := geminiServer(t, 0, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, geminiReply(`{"id":1`, "MAX_TOKENS"))
	})

	_, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "Generate level 1."}},
		Schema:   levelTestSchema,
	})
	var maxTok *ErrMaxTokensExceeded
	require.ErrorAs(t, err, &maxTok)
}

func TestGeminiProvider_Errors(t *testing.T) {
	t.Run("quota exhausted", func(t *testing.T) {
		p := geminiServer(t, 0, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusTooManyRequests, map[string]any{"error": map[string]any{
				"code":    429,
				"message": "quota exceeded",
				"status":  "RESOURCE_EXHAUSTED",
				"details": []map[string]any{
					{"@type": "type.googleapis.com/google.rpc.RetryInfo", "retryDelay": "31s"},
				},
			}})
		})
		_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "x"}}})
		var rl *ErrRateLimit
		require.ErrorAs(t, err, &rl)
		assert.Equal(t, 31*time.Second, rl.RetryAfter)
	})

	t.Run("server error", func(t *testing.T) {
		p := geminiServer(t, 0, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{"error": map[string]any{
				"code": 503, "message": "overloaded", "status": "UNAVAILABLE",
			}})
		})
		_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "x"}}})
		var unavail *ErrProviderUnavailable
		require.ErrorAs(t, err, &unavail)
		assert.True(t, Transient(err))
	})
}

func TestGeminiRetryDelay(t *testing.T) {
	details := []map[string]any{
		{"@type": "type.googleapis.com/google.rpc.QuotaFailure"},
		{"@type": "type.googleapis.com/google.rpc.RetryInfo", "retryDelay": "1.5s"},
	}
	assert.Equal(t, 1500*time.Millisecond, geminiRetryDelay(details))
	assert.Zero(t, geminiRetryDelay(nil))
	assert.Zero(t, geminiRetryDelay([]map[string]any{
		{"@type": "type.googleapis.com/google.rpc.RetryInfo", "retryDelay": "soon"},
	}))
}

func TestGeminiModelMapping(t *testing.T) {
	tests := map[string]string{
		"gemini-flash":     "gemini-2.5-flash",
		"gemini-3-pro":     "gemini-3-pro-preview",
		"gemini-2.0-flash": "gemini-2.0-flash",
	}
	for in, want := range tests {
		assert.Equal(t, want, resolveModel(in, geminiModels), in)
	}
	_, err := NewGeminiProvider(context.Background(), GeminiConfig{})
	assert.Error(t, err)
}
