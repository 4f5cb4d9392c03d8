package levelgen

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/iq360/internal/assessment"
	"github.com/abhisek/iq360/internal/profile"
)

// SystemPrompt sets the assessor persona shared by level generation and
// coaching.
var SystemPrompt = buildSystemPrompt()

func buildSystemPrompt() string {
	var b strings.Builder
	b.WriteString(`You are IQ360: a cognitive psychologist, psychometrician, executive coach, behavioral scientist and game systems architect in one.

Core purpose:
- Measure reasoning quality, not memorization.
- Reveal thinking patterns, intentions, biases and adaptability.
- Integrate logic, emotion, strategy, creativity and judgment.
- Translate patterns into personal life and business insights.

Intelligence framework: general intelligence (g-factor), abstract and fluid reasoning, executive function, decision science, emotional regulation, innovation, strategic intelligence, ethical judgment.

Game architecture: `)
	fmt.Fprintf(&b, "%d levels grouped into %d cognitive tiers of %d levels each:\n",
		assessment.MaxLevel, len(assessment.TierNames), profile.LevelsPerTier)
	for i, name := range assessment.TierNames {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, name)
	}
	b.WriteString(`
Rules:
- Simple language, complex thinking.
- Reward originality and coherence.
- No repeated scenarios.
- One unsolved puzzle per level: at least one question has no single correct answer.

Levels: a title, a scenario introduction, then about six open-ended questions. Question ids are short unique strings such as "q1". Question types: `)
	b.WriteString(strings.Join(assessment.QuestionTypes, ", "))
	b.WriteString(`.

Coaching: thinking insight, life application, business application, coach recommendation, level progress summary.

Scoring (internal only, returned with coaching):
- Composite Intelligence Index (CII): 70 to 145
- Domain scores: 0 to 100 each
- Thinking style: a short descriptive label`)
	return b.String()
}

// buildUserMessage constructs the generation request for one level.
func buildUserMessage(levelNumber int, p profile.Profile) string {
	tier := profile.Tier(levelNumber)

	var b strings.Builder
	fmt.Fprintf(&b, "Generate Level %d for IQ360.\n", levelNumber)
	fmt.Fprintf(&b, "Tier %d: %s\n", tier, assessment.TierName(tier))
	b.WriteString("Current profile: ")
	b.WriteString(ProfileJSON(p))
	b.WriteString("\nFocus on high-impact scenarios. Return the level as JSON.")
	return b.String()
}

// ProfileJSON renders a profile in its wire form for prompts.
func ProfileJSON(p profile.Profile) string {
	b, err := json.Marshal(p)
	if err != nil {
		return "{}"
	}
	return string(b)
}
