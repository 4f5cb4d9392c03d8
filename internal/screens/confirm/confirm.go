// Package confirm asks the user to confirm a progress reset.
package confirm

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/iq360/internal/router"
	"github.com/abhisek/iq360/internal/screen"
	"github.com/abhisek/iq360/internal/session"
	"github.com/abhisek/iq360/internal/ui/components"
	"github.com/abhisek/iq360/internal/ui/layout"
	"github.com/abhisek/iq360/internal/ui/theme"
)

// ResetScreen is pushed over the current screen and pops itself once the
// user decides.
type ResetScreen struct {
	menu components.Menu
}

var _ screen.Screen = (*ResetScreen)(nil)
var _ screen.KeyHintProvider = (*ResetScreen)(nil)

// New creates a ResetScreen. Cancel is selected initially.
func New(ctx context.Context, m *session.Machine) *ResetScreen {
	pop := func() tea.Msg { return router.PopScreenMsg{} }
	items := []components.MenuItem{
		{Label: "Cancel", Action: func() tea.Cmd { return pop }},
		{Label: "Reset all progress", Action: func() tea.Cmd {
			return tea.Sequence(
				screen.Run("reset", func() error { return m.Reset(ctx) }),
				pop,
			)
		}},
	}
	return &ResetScreen{menu: components.NewMenu(items)}
}

func (r *ResetScreen) Init() tea.Cmd {
	return nil
}

func (r *ResetScreen) Title() string {
	return "Reset"
}

func (r *ResetScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Confirm"},
		{Key: "Esc", Description: "Cancel"},
	}
}

func (r *ResetScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	r.menu, cmd = r.menu.Update(msg)
	return r, cmd
}

func (r *ResetScreen) View(width, height int) string {
	warning := lipgloss.NewStyle().
		Foreground(theme.Error).
		Bold(true).
		Render("Reset all progress?")
	detail := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render("Your profile returns to CII 100 and every\ncompleted level is removed. This cannot be undone.")

	content := warning + "\n\n" + detail + "\n\n" + r.menu.View()

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		components.ArcadeCard(content, components.ContentWidth(width)))
}
