package levelgen

import "github.com/abhisek/iq360/internal/llm"

// LevelSchema defines the JSON schema for level generation responses.
var LevelSchema = &llm.Schema{
	Name:        "assessment-level",
	Description: "One assessment level: a scenario and its open-ended questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id": map[string]any{
				"type":        "number",
				"description": "The level number",
			},
			"title": map[string]any{
				"type":        "string",
				"description": "A short evocative title for the level",
			},
			"scenarioIntroduction": map[string]any{
				"type":        "string",
				"description": "The scenario the questions refer to, in plain language",
			},
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id": map[string]any{
							"type":        "string",
							"description": "Unique question id within the level, e.g. q1",
						},
						"text": map[string]any{
							"type":        "string",
							"description": "The question shown to the user",
						},
						"type": map[string]any{
							"type":        "string",
							"description": "Question type tag",
						},
					},
					"required":             []any{"id", "text", "type"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"id", "title", "scenarioIntroduction", "questions"},
		"additionalProperties": false,
	},
}
