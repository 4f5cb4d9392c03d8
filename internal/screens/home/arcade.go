package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/iq360/internal/ui/theme"
)

// Block-letter title (same art as splash/banner.go).
const arcadeTitleFull = ` ██╗ ██████╗ ██████╗  ██████╗  ██████╗
 ██║██╔═══██╗╚════██╗██╔════╝ ██╔═████╗
 ██║██║   ██║ █████╔╝███████╗ ██║██╔██║
 ██║██║▄▄ ██║ ╚═══██╗██╔═══██╗████╔╝██║
 ██║╚██████╔╝██████╔╝╚██████╔╝╚██████╔╝
 ╚═╝ ╚══▀▀═╝ ╚═════╝  ╚═════╝  ╚═════╝`

const arcadeTitleCompact = "I · Q · 3 · 6 · 0"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	title := arcadeTitleFull
	if compact {
		title = arcadeTitleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title))
}

// renderStatsBar renders CII, level and tier in a bordered box matching
// content width.
func renderStatsBar(cii, level int, tierName string, cw int, compact bool) string {
	ciiStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	levelStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	tierStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s",
			ciiStyle.Render(fmt.Sprintf("CII %d", cii)),
			levelStyle.Render(fmt.Sprintf("L%d", level)),
		)
	} else {
		stats = fmt.Sprintf("%s  %s\n%s",
			ciiStyle.Render(fmt.Sprintf("CII %d", cii)),
			levelStyle.Render(fmt.Sprintf("LEVEL %d", level)),
			tierStyle.Render(tierName),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw-2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// renderNotice renders a one-line centered notice in the given style.
func renderNotice(text string, style lipgloss.Style, cw int) string {
	return style.
		Width(cw).
		Align(lipgloss.Center).
		Render(text)
}
