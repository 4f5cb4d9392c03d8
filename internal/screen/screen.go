package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/iq360/internal/session"
	"github.com/abhisek/iq360/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StateScreen is implemented by screens that render one session state.
// The app swaps in a new screen whenever the session leaves that state.
type StateScreen interface {
	Screen
	State() session.State
}

// SessionMsg reports that a session operation finished. Err is nil on
// success.
type SessionMsg struct {
	Op  string
	Err error
}

// Run performs a session operation off the update loop and reports its
// outcome as a SessionMsg.
func Run(op string, fn func() error) tea.Cmd {
	return func() tea.Msg {
		return SessionMsg{Op: op, Err: fn()}
	}
}

// Changed reports a synchronous session change that has already happened.
func Changed(op string, err error) tea.Cmd {
	return func() tea.Msg {
		return SessionMsg{Op: op, Err: err}
	}
}
