package store

import (
	"context"
	"time"
)

// QueryOpts filters QueryLLMEvents. Zero fields do not filter.
type QueryOpts struct {
	Limit     int
	Purpose   string
	SessionID string
	From, To  time.Time // inclusive bounds on the event timestamp
}

// LLMRequestEventData is one provider call as recorded by the logging
// decorator. Bodies are stored as text so `iq360 llm view` can show them.
type LLMRequestEventData struct {
	SessionID string
	Provider  string
	Model     string
	Purpose   string

	InputTokens  int
	OutputTokens int
	LatencyMs    int64

	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

type LLMRequestEvent struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo is the append-only LLM request log.
type EventRepo interface {
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns matching events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns nil, nil when id does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)

	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}
