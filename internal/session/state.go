package session

import (
	"github.com/abhisek/iq360/internal/assessment"
	"github.com/abhisek/iq360/internal/history"
	"github.com/abhisek/iq360/internal/profile"
)

// State is the screen-level state of a session.
type State int

const (
	StateWelcome     State = iota // Choosing to start or resume a level
	StateLevelActive              // Answering the active level's questions
	StateCoaching                 // Reading feedback for the completed level
	StateDashboard                // Viewing the profile
	StateHistory                  // Browsing completed levels
)

func (s State) String() string {
	switch s {
	case StateWelcome:
		return "welcome"
	case StateLevelActive:
		return "level"
	case StateCoaching:
		return "coaching"
	case StateDashboard:
		return "dashboard"
	case StateHistory:
		return "history"
	}
	return "unknown"
}

// ViewModel is a read-only copy of the session for rendering. Mutating
// it has no effect on the machine.
type ViewModel struct {
	State State

	// Level is the active level in LevelActive, and the level just
	// completed in Coaching. Nil otherwise.
	Level *assessment.Level

	// LevelNumber is the level the next StartLevel requests, or the
	// active level while one is being answered.
	LevelNumber int
	Tier        int
	TierName    string

	Profile   profile.Profile
	History   []history.Entry
	Coaching  *assessment.Feedback
	Responses []assessment.UserResponse

	// Loading is true while a collaborator call is in flight.
	Loading    bool
	Generating bool
	Evaluating bool

	// Err is the last error worth showing the user, cleared by the next
	// successful operation.
	Err error

	// PersistenceDegraded reports that storage failed and progress is
	// held in memory only.
	PersistenceDegraded bool

	Loaded    bool
	SessionID string
}

// Resuming reports whether at least one level has been completed.
func (v ViewModel) Resuming() bool {
	return len(v.History) > 0
}

// Answer returns the recorded answer for a question of the active level.
func (v ViewModel) Answer(questionID string) string {
	a, _ := assessment.Lookup(v.Responses, questionID)
	return a
}

// LastEntry returns the most recent history entry.
func (v ViewModel) LastEntry() (history.Entry, bool) {
	if len(v.History) == 0 {
		return history.Entry{}, false
	}
	return v.History[len(v.History)-1], true
}
