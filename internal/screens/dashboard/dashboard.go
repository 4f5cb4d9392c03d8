// Package dashboard renders the cognitive profile: CII, thinking style,
// the six domain scores and the CII trend.
package dashboard

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/iq360/internal/assessment"
	"github.com/abhisek/iq360/internal/history"
	"github.com/abhisek/iq360/internal/profile"
	"github.com/abhisek/iq360/internal/screen"
	"github.com/abhisek/iq360/internal/session"
	"github.com/abhisek/iq360/internal/ui/components"
	"github.com/abhisek/iq360/internal/ui/layout"
	"github.com/abhisek/iq360/internal/ui/theme"
)

// trendPoints is the number of most recent levels drawn in the trend.
const trendPoints = 30

// DashboardScreen displays the profile.
type DashboardScreen struct {
	machine *session.Machine
}

var _ screen.StateScreen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)

// New creates a DashboardScreen.
func New(m *session.Machine) *DashboardScreen {
	return &DashboardScreen{machine: m}
}

func (s *DashboardScreen) Init() tea.Cmd {
	return nil
}

func (s *DashboardScreen) State() session.State {
	return session.StateDashboard
}

func (s *DashboardScreen) Title() string {
	return "Dashboard"
}

func (s *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "esc", "enter", "q":
			return s, screen.Changed("back", s.machine.Back())
		}
	}
	return s, nil
}

func (s *DashboardScreen) View(width, height int) string {
	v := s.machine.View()
	cw := components.ContentWidth(width)
	shown := v.Profile.Clamped()

	var sections []string

	head := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render(fmt.Sprintf("CII %d", v.Profile.CII)) +
		"\n" + lipgloss.NewStyle().Foreground(theme.Text).Render(v.Profile.ThinkingStyle)
	sections = append(sections, head)

	var bars []string
	for _, d := range shown.Scores.Domains() {
		bar := components.NewProgressBar(d.Label, d.Value/profile.MaxScore, true, cw)
		bar.LabelWidth = 12
		bars = append(bars, bar.View())
	}
	sections = append(sections, strings.Join(bars, "\n"))

	progress := fmt.Sprintf("Level %d of %d   Sync %d%%\nTier %d: %s",
		min(v.LevelNumber, assessment.MaxLevel), assessment.MaxLevel,
		assessment.TierSync(v.LevelNumber), v.Tier, v.TierName)
	sections = append(sections, lipgloss.NewStyle().Foreground(theme.TextDim).Render(progress))

	if trend := history.CIITrend(v.History); len(trend) > 0 {
		line := theme.Heading.Render("CII trend") + "  " +
			components.Sparkline(trend, profile.MinCII, profile.MaxCII, trendPoints)
		sections = append(sections, line)
	} else {
		sections = append(sections, theme.Hint.Render("Complete a level to start your CII trend."))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		components.ArcadeCard(strings.Join(sections, "\n\n"), cw))
}
