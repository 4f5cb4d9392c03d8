package cmd

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/abhisek/iq360/internal/assessment"
	"github.com/abhisek/iq360/internal/coaching"
	"github.com/abhisek/iq360/internal/levelgen"
	"github.com/abhisek/iq360/internal/llm"
	"github.com/abhisek/iq360/internal/profile"
	"github.com/abhisek/iq360/internal/store"
)

// newProvider builds the configured provider. The "mock" provider gets
// the demo script instead of an empty queue.
func newProvider(ctx context.Context, cfg llm.Config, repo store.EventRepo, logger *zap.Logger) (llm.Provider, error) {
	if cfg.Provider == "mock" {
		return llm.Wrap(demoProvider(), cfg, repo, logger), nil
	}
	return llm.NewProvider(ctx, cfg, repo, logger)
}

// demoProvider serves canned levels and coaching for
// IQ360_LLM_PROVIDER=mock, so the TUI can be tried without an API key.
// CII rises over the first few levels and then holds.
func demoProvider() *llm.MockProvider {
	mp := llm.NewMockProvider()
	mp.Fallback(levelgen.Purpose, llm.MockResponse{Content: mustJSON(demoLevel)})

	steps := []int{104, 108, 111, 113}
	for i, cii := range steps {
		resp := llm.MockResponse{Content: mustJSON(demoFeedback(cii, 50+float64(i+1)*4))}
		if i == len(steps)-1 {
			mp.Fallback(coaching.Purpose, resp)
			break
		}
		mp.Script(coaching.Purpose, resp)
	}
	return mp
}

var demoLevel = map[string]any{
	"id":    1,
	"title": "The Late Shipment",
	"scenarioIntroduction": "A supplier tells you on Friday that half of Monday's order will arrive a week late. " +
		"Your biggest customer is expecting all of it.",
	"questions": []map[string]any{
		{"id": "q1", "type": assessment.TypeLogic, "text": "What do you need to find out before deciding anything?"},
		{"id": "q2", "type": assessment.TypeExecutive, "text": "List the first three things you would do, in order."},
		{"id": "q3", "type": assessment.TypeInnovation, "text": "Describe one option nobody on the team has suggested yet."},
		{"id": "q4", "type": assessment.TypePsychological, "text": "The customer calls you angry. What do you say first?"},
	},
}

func demoFeedback(cii int, score float64) map[string]any {
	scores := make(map[string]float64, len(profile.DomainKeys))
	for _, k := range profile.DomainKeys {
		scores[k] = score
	}
	return map[string]any{
		"thinkingInsight":      "You gathered facts before acting and kept the customer in view throughout.",
		"lifeApplication":      "The same habit helps when plans change at home: ask what is fixed before negotiating what is not.",
		"businessApplication":  "Separating what you know from what you assume makes your escalations shorter and more credible.",
		"coachRecommendation":  "Next time, write down the one decision you are avoiding before listing options.",
		"levelProgressSummary": "Solid, structured answers with room for bolder alternatives.",
		"updatedProfile": map[string]any{
			"cii":           cii,
			"thinkingStyle": "Pragmatic Planner",
			"scores":        scores,
		},
	}
}

func mustJSON(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
