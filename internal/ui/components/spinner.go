package components

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/iq360/internal/ui/theme"
)

const spinnerInterval = 120 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// SpinnerTickMsg advances every Spinner by one frame.
type SpinnerTickMsg time.Time

// Spinner is a small loading indicator driven by SpinnerTickMsg.
type Spinner struct {
	frame int
}

// Tick schedules the next frame.
func (s Spinner) Tick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return SpinnerTickMsg(t)
	})
}

// Update advances the frame on SpinnerTickMsg and schedules the next one
// while active is true.
func (s Spinner) Update(msg tea.Msg, active bool) (Spinner, tea.Cmd) {
	if _, ok := msg.(SpinnerTickMsg); !ok {
		return s, nil
	}
	s.frame = (s.frame + 1) % len(spinnerFrames)
	if !active {
		return s, nil
	}
	return s, s.Tick()
}

// View renders the current frame followed by label.
func (s Spinner) View(label string) string {
	return lipgloss.NewStyle().Foreground(theme.Accent).Render(spinnerFrames[s.frame]) +
		" " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(label)
}
