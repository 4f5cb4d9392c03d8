// Package assessment defines the level, response and feedback types
// exchanged between the session and its content/scoring collaborators.
package assessment

import (
	"github.com/abhisek/iq360/internal/profile"
)

// Question types the collaborator is prompted to use. The set is open:
// unknown types are carried through unchanged.
const (
	TypeLogic         = "logic"
	TypeScenario      = "scenario"
	TypeExecutive     = "executive"
	TypeInnovation    = "innovation"
	TypePsychological = "psychological"
	TypeLifeBusiness  = "life_business"
)

// QuestionTypes lists the known question type tags.
var QuestionTypes = []string{
	TypeLogic, TypeScenario, TypeExecutive,
	TypeInnovation, TypePsychological, TypeLifeBusiness,
}

// Level is one generated level. It lives only for the active session.
type Level struct {
	ID                   int        `json:"id"`
	Title                string     `json:"title"`
	ScenarioIntroduction string     `json:"scenarioIntroduction"`
	Questions            []Question `json:"questions"`
}

// Question is a single open-ended prompt within a level.
type Question struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Type string `json:"type"`
}

// HasQuestion reports whether id names a question of this level.
func (l *Level) HasQuestion(id string) bool {
	for _, q := range l.Questions {
		if q.ID == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy.
func (l *Level) Clone() *Level {
	if l == nil {
		return nil
	}
	out := *l
	out.Questions = append([]Question(nil), l.Questions...)
	return &out
}

// UserResponse is the free-text answer to one question.
type UserResponse struct {
	QuestionID string `json:"questionId"`
	Answer     string `json:"answer"`
}

// Feedback is the collaborator's evaluation of one completed level.
// UpdatedProfile, when present, replaces the current profile wholesale.
type Feedback struct {
	ThinkingInsight      string           `json:"thinkingInsight"`
	LifeApplication      string           `json:"lifeApplication"`
	BusinessApplication  string           `json:"businessApplication"`
	CoachRecommendation  string           `json:"coachRecommendation"`
	LevelProgressSummary string           `json:"levelProgressSummary"`
	UpdatedProfile       *profile.Profile `json:"updatedProfile,omitempty"`
}

// Clone returns a deep copy.
func (f *Feedback) Clone() *Feedback {
	if f == nil {
		return nil
	}
	out := *f
	if f.UpdatedProfile != nil {
		p := *f.UpdatedProfile
		out.UpdatedProfile = &p
	}
	return &out
}
