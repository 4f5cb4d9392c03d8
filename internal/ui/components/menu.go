package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/iq360/internal/ui/theme"
)

type MenuItem struct {
	Label    string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list of actions. The selection only ever rests on
// enabled items unless every item is disabled.
type Menu struct {
	Items    []MenuItem
	Selected int
}

func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items}
	if i := m.next(-1, 1); i >= 0 {
		m.Selected = i
	}
	return m
}

// next returns the first enabled index after from in direction dir, or -1.
func (m Menu) next(from, dir int) int {
	for i := from + dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			return i
		}
	}
	return -1
}

// Current returns the selected item when it can be activated.
func (m Menu) Current() (MenuItem, bool) {
	if m.Selected < 0 || m.Selected >= len(m.Items) || m.Items[m.Selected].Disabled {
		return MenuItem{}, false
	}
	return m.Items[m.Selected], true
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}
	dir := 0
	switch key.String() {
	case "up", "k", "shift+tab":
		dir = -1
	case "down", "j", "tab":
		dir = 1
	case "enter":
		if item, ok := m.Current(); ok && item.Action != nil {
			return m, item.Action()
		}
	}
	if dir != 0 {
		if i := m.next(m.Selected, dir); i >= 0 {
			m.Selected = i
		}
	}
	return m, nil
}

// View renders the items as plain lines with a cursor.
func (m Menu) View() string {
	var b strings.Builder
	for i, item := range m.Items {
		style, prefix := lipgloss.NewStyle().Foreground(theme.Text), "    "
		switch {
		case item.Disabled:
			style = style.Foreground(theme.TextDim)
		case i == m.Selected:
			style, prefix = style.Foreground(theme.Primary).Bold(true), "  ▸ "
		}
		b.WriteString(style.Render(prefix + item.Label))
		b.WriteByte('\n')
	}
	return b.String()
}

// Buttons renders the items as arcade buttons centered in width. Compact
// drops the borders for short terminals.
func (m Menu) Buttons(width int, compact bool) string {
	lines := make([]string, len(m.Items))
	for i, item := range m.Items {
		selected := i == m.Selected && !item.Disabled
		if compact {
			lines[i] = compactButton(item.Label, selected, item.Disabled)
		} else {
			lines[i] = ArcadeButton(item.Label, selected, item.Disabled)
		}
	}
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(strings.Join(lines, "\n"))
}

func compactButton(label string, selected, disabled bool) string {
	switch {
	case disabled:
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render("   " + label)
	case selected:
		return lipgloss.NewStyle().
			Foreground(theme.BgDark).
			Background(theme.ArcadeYellow).
			Bold(true).
			Render(" ▸ " + label + " ")
	}
	return lipgloss.NewStyle().Foreground(theme.Text).Render("   " + label)
}
