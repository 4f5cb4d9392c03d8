package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/iq360/internal/ui/theme"
)

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// Sparkline renders values as a single line of block characters scaled
// between lo and hi. Values outside the range are clamped. Only the last
// maxPoints values are drawn.
func Sparkline(values []int, lo, hi, maxPoints int) string {
	if len(values) == 0 {
		return ""
	}
	if maxPoints > 0 && len(values) > maxPoints {
		values = values[len(values)-maxPoints:]
	}
	span := hi - lo
	if span <= 0 {
		span = 1
	}
	var b strings.Builder
	for _, v := range values {
		v = min(max(v, lo), hi)
		idx := (v - lo) * (len(sparkBlocks) - 1) / span
		b.WriteRune(sparkBlocks[idx])
	}
	return lipgloss.NewStyle().Foreground(theme.Secondary).Render(b.String())
}
