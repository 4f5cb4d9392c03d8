package coaching

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/abhisek/iq360/internal/assessment"
	"github.com/abhisek/iq360/internal/levelgen"
	"github.com/abhisek/iq360/internal/llm"
	"github.com/abhisek/iq360/internal/profile"
)

// Purpose labels evaluation requests in the LLM event log.
const Purpose = "evaluation"

// LLMEvaluator implements Evaluator using the LLM provider.
type LLMEvaluator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMEvaluator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMEvaluator {
	return &LLMEvaluator{provider: provider, config: cfg}
}

// feedbackOutput is the raw LLM response. Profile numbers arrive as
// arbitrary JSON numbers and every profile field is optional.
type feedbackOutput struct {
	ThinkingInsight      string         `json:"thinkingInsight"`
	LifeApplication      string         `json:"lifeApplication"`
	BusinessApplication  string         `json:"businessApplication"`
	CoachRecommendation  string         `json:"coachRecommendation"`
	LevelProgressSummary string         `json:"levelProgressSummary"`
	UpdatedProfile       *profileOutput `json:"updatedProfile"`
}

type profileOutput struct {
	CII           *float64            `json:"cii"`
	ThinkingStyle *string             `json:"thinkingStyle"`
	Scores        map[string]*float64 `json:"scores"`
}

// Evaluate scores the responses for level levelNumber.
func (e *LLMEvaluator) Evaluate(ctx context.Context, levelNumber int, responses []assessment.UserResponse, p profile.Profile) (*assessment.Feedback, error) {
	ctx = llm.WithPurpose(ctx, Purpose)

	req := llm.Request{
		System: levelgen.SystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(levelNumber, responses, p)},
		},
		Schema:      FeedbackSchema,
		MaxTokens:   e.config.MaxTokens,
		Temperature: e.config.Temperature,
	}

	resp, err := e.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM evaluation failed: %w", err)
	}

	var raw feedbackOutput
	if err := resp.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	fb := &assessment.Feedback{
		ThinkingInsight:      strings.TrimSpace(raw.ThinkingInsight),
		LifeApplication:      strings.TrimSpace(raw.LifeApplication),
		BusinessApplication:  strings.TrimSpace(raw.BusinessApplication),
		CoachRecommendation:  strings.TrimSpace(raw.CoachRecommendation),
		LevelProgressSummary: strings.TrimSpace(raw.LevelProgressSummary),
	}
	if raw.UpdatedProfile != nil {
		updated, err := raw.UpdatedProfile.toProfile()
		if err != nil {
			return nil, fmt.Errorf("updated profile: %w", err)
		}
		if err := updated.Validate(); err != nil {
			return nil, fmt.Errorf("updated profile: %w", err)
		}
		fb.UpdatedProfile = &updated
	}
	return fb, nil
}

// toProfile takes the patch as the replacement profile. Nothing is
// carried over from the current profile, so a patch missing any field is
// rejected.
func (o *profileOutput) toProfile() (profile.Profile, error) {
	var out profile.Profile
	if o.CII == nil {
		return out, fmt.Errorf("%w: cii missing", profile.ErrMalformed)
	}
	out.CII = int(math.Round(*o.CII))
	if o.ThinkingStyle == nil || strings.TrimSpace(*o.ThinkingStyle) == "" {
		return out, fmt.Errorf("%w: thinkingStyle missing", profile.ErrMalformed)
	}
	out.ThinkingStyle = strings.TrimSpace(*o.ThinkingStyle)

	s := &out.Scores
	targets := map[string]*float64{
		profile.KeyLogicalReasoning:    &s.LogicalReasoning,
		profile.KeyExecutiveFunction:   &s.ExecutiveFunction,
		profile.KeyInnovationIndex:     &s.InnovationIndex,
		profile.KeyEmotionalRegulation: &s.EmotionalRegulation,
		profile.KeyStrategicThinking:   &s.StrategicThinking,
		profile.KeyDecisionConsistency: &s.DecisionConsistency,
	}
	for _, k := range profile.DomainKeys {
		v := o.Scores[k]
		if v == nil {
			return out, fmt.Errorf("%w: %s missing", profile.ErrMalformed, k)
		}
		*targets[k] = *v
	}
	return out, nil
}

func buildUserMessage(levelNumber int, responses []assessment.UserResponse, p profile.Profile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze the user's responses for Level %d (tier: %s).\n",
		levelNumber, assessment.LevelTierName(levelNumber))

	b.WriteString("Responses:\n")
	enc, err := json.Marshal(responses)
	if err != nil {
		enc = []byte("[]")
	}
	b.Write(enc)

	b.WriteString("\nCurrent profile: ")
	b.WriteString(levelgen.ProfileJSON(p))
	b.WriteString("\n\nProvide coaching feedback and the complete updated cognitive profile. Return JSON.")
	return b.String()
}
