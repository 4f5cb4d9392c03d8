package coaching

import (
	"github.com/abhisek/iq360/internal/llm"
	"github.com/abhisek/iq360/internal/profile"
)

func numberProp(desc string) map[string]any {
	return map[string]any{"type": "number", "description": desc}
}

func stringProp(desc string) map[string]any {
	return map[string]any{"type": "string", "description": desc}
}

func scoresDefinition() map[string]any {
	props := make(map[string]any, len(profile.DomainKeys))
	required := make([]any, 0, len(profile.DomainKeys))
	for _, k := range profile.DomainKeys {
		props[k] = numberProp(profile.Label(k) + " score, 0 to 100")
		required = append(required, k)
	}
	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"required":             required,
		"additionalProperties": false,
	}
}

// FeedbackSchema defines the JSON schema for coaching responses.
var FeedbackSchema = &llm.Schema{
	Name:        "coaching-feedback",
	Description: "Coaching feedback for a completed level and the updated cognitive profile",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"thinkingInsight":      stringProp("What the answers reveal about how the user thinks"),
			"lifeApplication":      stringProp("How the pattern shows up in personal life"),
			"businessApplication":  stringProp("How the pattern shows up at work or in business"),
			"coachRecommendation":  stringProp("One concrete practice to try next"),
			"levelProgressSummary": stringProp("A one or two sentence summary of progress on this level"),
			"updatedProfile": map[string]any{
				"type":        "object",
				"description": "The complete cognitive profile after this level",
				"properties": map[string]any{
					"cii":           numberProp("Composite Intelligence Index, 70 to 145"),
					"thinkingStyle": stringProp("Short thinking style label"),
					"scores":        scoresDefinition(),
				},
				"required":             []any{"cii", "thinkingStyle", "scores"},
				"additionalProperties": false,
			},
		},
		"required": []any{
			"thinkingInsight", "lifeApplication", "businessApplication",
			"coachRecommendation", "levelProgressSummary", "updatedProfile",
		},
		"additionalProperties": false,
	},
}
