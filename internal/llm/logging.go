package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/iq360/internal/store"
)

type eventLogger struct {
	next     Provider
	provider string
	repo     store.EventRepo
	logger   *zap.Logger
}

// WithLogging records one store event per request and logs it. A nil
// repo keeps only the log line.
func WithLogging(p Provider, providerName string, repo store.EventRepo, logger *zap.Logger) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &eventLogger{next: p, provider: providerName, repo: repo, logger: logger.Named("llm")}
}

func (l *eventLogger) ModelID() string { return l.next.ModelID() }

func (l *eventLogger) Generate(ctx context.Context, req Request) (*Response, error) {
	began := time.Now()
	resp, err := l.next.Generate(ctx, req)

	ev := store.LLMRequestEventData{
		SessionID:    SessionFrom(ctx),
		Provider:     l.provider,
		Model:        l.next.ModelID(),
		Purpose:      PurposeFrom(ctx),
		LatencyMs:    time.Since(began).Milliseconds(),
		Success:      err == nil,
		RequestBody:  transcript(req),
		ResponseBody: string(rawOutput(resp, err)),
	}
	if resp != nil {
		ev.InputTokens, ev.OutputTokens = resp.Usage.InputTokens, resp.Usage.OutputTokens
		if resp.Model != "" {
			ev.Model = resp.Model
		}
	}

	log := l.logger.With(
		zap.String("purpose", ev.Purpose),
		zap.String("model", ev.Model),
		zap.Int64("latency_ms", ev.LatencyMs),
		zap.Int("input_tokens", ev.InputTokens),
		zap.Int("output_tokens", ev.OutputTokens),
	)
	if err != nil {
		ev.ErrorMessage = err.Error()
		log.Warn("llm request failed", zap.Error(err))
	} else {
		log.Debug("llm request")
	}

	if l.repo != nil {
		if rerr := l.repo.AppendLLMRequest(context.WithoutCancel(ctx), ev); rerr != nil {
			l.logger.Warn("failed to record llm request event", zap.Error(rerr))
		}
	}
	return resp, err
}

// rawOutput returns what the model produced, including output that was
// rejected as invalid or truncated.
func rawOutput(resp *Response, err error) json.RawMessage {
	if resp != nil {
		return resp.Content
	}
	var (
		inv    *ErrInvalidResponse
		maxTok *ErrMaxTokensExceeded
	)
	switch {
	case errors.As(err, &inv):
		return inv.Content
	case errors.As(err, &maxTok):
		return maxTok.Content
	}
	return nil
}

// transcript renders a request as plain text for the event log.
func transcript(req Request) string {
	var b strings.Builder
	section := func(title, body string) {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", title, body)
	}
	if req.System != "" {
		section("system", req.System)
	}
	for _, m := range req.Messages {
		section(string(m.Role), m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			section("schema: "+req.Schema.Name, string(def))
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}
