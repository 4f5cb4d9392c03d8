package splash

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/iq360/internal/ui/theme"
)

const bannerArt = `
 ██╗ ██████╗ ██████╗  ██████╗  ██████╗
 ██║██╔═══██╗╚════██╗██╔════╝ ██╔═████╗
 ██║██║   ██║ █████╔╝███████╗ ██║██╔██║
 ██║██║▄▄ ██║ ╚═══██╗██╔═══██╗████╔╝██║
 ██║╚██████╔╝██████╔╝╚██████╔╝╚██████╔╝
 ╚═╝ ╚══▀▀═╝ ╚═════╝  ╚═════╝  ╚═════╝`

const bannerCompact = "I Q 3 6 0"

// bannerMinWidth is the narrowest terminal that fits the full banner.
const bannerMinWidth = 42

// RenderBanner returns the IQ360 banner styled in the primary color.
// Uses a compact fallback for narrow terminals.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerMinWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
