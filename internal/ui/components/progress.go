package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/iq360/internal/ui/theme"
)

// percentWidth is the room taken by "  100%".
const percentWidth = 6

// ProgressBar is a labelled horizontal bar. Percent is a fraction in
// [0, 1]; values outside are drawn clamped but the label shows the raw
// figure, so an out-of-range score stays visible.
type ProgressBar struct {
	Label       string
	LabelWidth  int // pads the label so stacked bars align; 0 for none
	Percent     float64
	ShowPercent bool
	Width       int
}

func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{Label: label, Percent: percent, ShowPercent: showPercent, Width: width}
}

func (p ProgressBar) View() string {
	var b strings.Builder
	if p.Label != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Width(p.LabelWidth).Render(p.Label))
		b.WriteString("  ")
	}

	bar := p.Width - lipgloss.Width(b.String())
	if p.ShowPercent {
		bar -= percentWidth
	}
	bar = max(bar, 4)
	filled := min(max(int(float64(bar)*p.Percent), 0), bar)

	b.WriteString(theme.ProgressFilled.Render(strings.Repeat(" ", filled)))
	b.WriteString(theme.ProgressEmpty.Render(strings.Repeat(" ", bar-filled)))
	if p.ShowPercent {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("  %d%%", int(p.Percent*100))))
	}
	return b.String()
}
