package levelgen

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/iq360/internal/assessment"
	"github.com/abhisek/iq360/internal/llm"
	"github.com/abhisek/iq360/internal/profile"
)

// Purpose labels level generation requests in the LLM event log.
const Purpose = "level-gen"

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// levelOutput is the raw LLM response before validation. The level id
// arrives as a JSON number of unspecified kind.
type levelOutput struct {
	ID                   float64          `json:"id"`
	Title                string           `json:"title"`
	ScenarioIntroduction string           `json:"scenarioIntroduction"`
	Questions            []questionOutput `json:"questions"`
}

type questionOutput struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Type string `json:"type"`
}

// Generate produces level levelNumber for the given profile.
func (g *LLMGenerator) Generate(ctx context.Context, levelNumber int, p profile.Profile) (*assessment.Level, error) {
	ctx = llm.WithPurpose(ctx, Purpose)

	req := llm.Request{
		System: SystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(levelNumber, p)},
		},
		Schema:      LevelSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw levelOutput
	if err := resp.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	level := &assessment.Level{
		// The session owns level numbering; the echoed id is informational.
		ID:                   levelNumber,
		Title:                strings.TrimSpace(raw.Title),
		ScenarioIntroduction: strings.TrimSpace(raw.ScenarioIntroduction),
		Questions:            make([]assessment.Question, 0, len(raw.Questions)),
	}
	for _, q := range raw.Questions {
		if g.config.MaxQuestions > 0 && len(level.Questions) == g.config.MaxQuestions {
			break
		}
		level.Questions = append(level.Questions, assessment.Question{
			ID:   strings.TrimSpace(q.ID),
			Text: strings.TrimSpace(q.Text),
			Type: strings.TrimSpace(q.Type),
		})
	}

	if err := validateLevel(level); err != nil {
		return nil, err
	}
	return level, nil
}
