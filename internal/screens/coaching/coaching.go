// Package coaching renders the feedback for the level just completed.
package coaching

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/iq360/internal/profile"
	"github.com/abhisek/iq360/internal/screen"
	"github.com/abhisek/iq360/internal/session"
	"github.com/abhisek/iq360/internal/ui/layout"
	"github.com/abhisek/iq360/internal/ui/theme"
)

// CoachingScreen displays coaching feedback.
type CoachingScreen struct {
	machine *session.Machine
}

var _ screen.StateScreen = (*CoachingScreen)(nil)
var _ screen.KeyHintProvider = (*CoachingScreen)(nil)

// New creates a CoachingScreen.
func New(m *session.Machine) *CoachingScreen {
	return &CoachingScreen{machine: m}
}

func (s *CoachingScreen) Init() tea.Cmd {
	return nil
}

func (s *CoachingScreen) State() session.State {
	return session.StateCoaching
}

func (s *CoachingScreen) Title() string {
	return "Coaching"
}

func (s *CoachingScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "D", Description: "Dashboard"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *CoachingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter":
			return s, screen.Changed("proceed", s.machine.ProceedToNext())
		case "d":
			return s, screen.Changed("dashboard", s.machine.ShowDashboard())
		}
	}
	return s, nil
}

// ciiChange returns the CII before and after the last entry.
func ciiChange(v session.ViewModel) (before, after int) {
	after = v.Profile.CII
	before = profile.DefaultCII
	if n := len(v.History); n >= 2 {
		before = v.History[n-2].CII
	}
	return before, after
}

func (s *CoachingScreen) View(width, height int) string {
	v := s.machine.View()
	fb := v.Coaching
	if fb == nil {
		return ""
	}
	textWidth := min(width-8, 80)

	var b strings.Builder

	title := "Level complete"
	if e, ok := v.LastEntry(); ok {
		title = fmt.Sprintf("Level %d complete: %s", e.LevelNumber, e.Title)
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(title))
	b.WriteString("\n\n")

	before, after := ciiChange(v)
	delta := after - before
	deltaStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	switch {
	case delta > 0:
		deltaStyle = deltaStyle.Foreground(theme.Success)
	case delta < 0:
		deltaStyle = deltaStyle.Foreground(theme.Error)
	}
	ciiLine := lipgloss.NewStyle().Foreground(theme.Text).Render(fmt.Sprintf("CII %d ", after)) +
		deltaStyle.Render(fmt.Sprintf("(%+d)", delta)) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("   "+v.Profile.ThinkingStyle)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, ciiLine))
	b.WriteString("\n\n")

	sections := []struct{ heading, body string }{
		{"Thinking insight", fb.ThinkingInsight},
		{"In life", fb.LifeApplication},
		{"In business", fb.BusinessApplication},
		{"Coach recommends", fb.CoachRecommendation},
		{"Progress", fb.LevelProgressSummary},
	}
	for _, sec := range sections {
		if strings.TrimSpace(sec.body) == "" {
			continue
		}
		block := theme.Heading.Render(sec.heading) + "\n" +
			lipgloss.NewStyle().Width(textWidth).Foreground(theme.Text).Render(sec.body)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Width(textWidth).Render(block)))
		b.WriteString("\n\n")
	}

	if v.PersistenceDegraded {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Hint.Render("Progress is held in memory only this session.")))
	}

	return b.String()
}
