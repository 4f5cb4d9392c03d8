package llm

import (
	"context"
	"encoding/json"
	"fmt"
)

// Provider generates structured JSON from a prompt. Implementations map
// vendor failures onto ErrRateLimit, ErrProviderUnavailable,
// ErrInvalidResponse and ErrMaxTokensExceeded.
type Provider interface {
	// Generate returns Content that conforms to req.Schema when one is set.
	Generate(ctx context.Context, req Request) (*Response, error)

	ModelID() string
}

// Request is a single-turn (or short multi-turn) prompt.
type Request struct {
	System   string
	Messages []Message

	// Schema, when set, selects the vendor's structured output mode and
	// validates the reply. Nil means free text.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the vendor default.
	Temperature float64
}

type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema document. Name is kebab-case, e.g.
// "assessment-level", and doubles as the OpenAI schema name.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Response is a completed generation.
type Response struct {
	// Content is validated JSON when the request had a Schema.
	Content json.RawMessage
	Usage   Usage

	// Model is the model that served the request, which may differ from
	// ModelID when a gateway routes it.
	Model string

	// StopReason is "end" or "max_tokens".
	StopReason string
}

// Decode unmarshals Content into v.
func (r *Response) Decode(v any) error {
	if r == nil || len(r.Content) == 0 {
		return &ErrInvalidResponse{Err: fmt.Errorf("empty response")}
	}
	if err := json.Unmarshal(r.Content, v); err != nil {
		return &ErrInvalidResponse{Content: r.Content, Err: err}
	}
	return nil
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// finishResponse validates structured output and assembles the Response.
// Output that stopped at the token limit and does not validate is reported
// as ErrMaxTokensExceeded rather than as a malformed reply.
func finishResponse(req Request, content json.RawMessage, stop, model string, usage Usage) (*Response, error) {
	if req.Schema != nil {
		valid, err := validateResponse(req.Schema, content)
		if err != nil {
			if stop == "max_tokens" {
				return nil, &ErrMaxTokensExceeded{Content: content}
			}
			return nil, err
		}
		content = valid
	}
	if usage.TotalTokens == 0 {
		usage.TotalTokens = usage.InputTokens + usage.OutputTokens
	}
	return &Response{
		Content:    content,
		Usage:      usage,
		Model:      model,
		StopReason: stop,
	}, nil
}
