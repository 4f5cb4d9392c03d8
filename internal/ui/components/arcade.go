package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/iq360/internal/ui/theme"
)

// ContentWidth is the inner width shared by every card on a screen so
// their borders line up: the frame less its border and padding, kept
// between 20 and 60 columns.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 60)
}

// CabinetFrame draws the double border around the home screen and centers
// content inside it.
func CabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// ArcadeCard is a rounded, padded card cw columns wide.
func ArcadeCard(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw-2).
		Padding(1, 2).
		Align(lipgloss.Center).
		Render(content)
}

// buttonWidth fits the longest home label, "RESUME LEVEL 30".
const buttonWidth = 24

var buttonStyle = lipgloss.NewStyle().
	Width(buttonWidth).
	Align(lipgloss.Center).
	Foreground(theme.Text).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border).
	Padding(0, 1)

var selectedButtonStyle = buttonStyle.
	Bold(true).
	Foreground(theme.BgDark).
	Background(theme.ArcadeYellow).
	BorderForeground(theme.ArcadeYellow)

// ArcadeButton renders one bordered menu button.
func ArcadeButton(label string, selected, disabled bool) string {
	switch {
	case disabled:
		return buttonStyle.Foreground(theme.TextDim).Render(label)
	case selected:
		return selectedButtonStyle.Render("▸ " + label)
	}
	return buttonStyle.Render(label)
}
