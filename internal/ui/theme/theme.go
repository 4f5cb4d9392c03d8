// Package theme holds the palette and shared styles. The palette is tuned
// for dark terminals.
package theme

import (
	"charm.land/lipgloss/v2"
)

var (
	Primary      = lipgloss.Color("#6366F1")
	Secondary    = lipgloss.Color("#14B8A6")
	Accent       = lipgloss.Color("#F59E0B")
	Success      = lipgloss.Color("#22C55E")
	Error        = lipgloss.Color("#F43F5E")
	Text         = lipgloss.Color("#F8FAFC")
	TextDim      = lipgloss.Color("#94A3B8")
	BgDark       = lipgloss.Color("#0F172A")
	BgCard       = lipgloss.Color("#1E293B")
	Border       = lipgloss.Color("#334155")
	ArcadeYellow = lipgloss.Color("#FACC15")
	ArcadeCyan   = lipgloss.Color("#22D3EE")
)

var (
	Heading   = lipgloss.NewStyle().Foreground(Secondary).Bold(true)
	Hint      = lipgloss.NewStyle().Foreground(TextDim).Italic(true)
	Warning   = lipgloss.NewStyle().Foreground(Accent).Bold(true)
	ErrorText = lipgloss.NewStyle().Foreground(Error).Bold(true)

	ProgressFilled = lipgloss.NewStyle().Background(Secondary)
	ProgressEmpty  = lipgloss.NewStyle().Background(Border)
)

// CII bands. 100 is the starting index; 115 and above reads as strong.
const (
	ciiLow    = 90
	ciiStrong = 115
)

// CIIStyle colors a CII by band: dim below 90, teal through the middle,
// yellow from 115.
func CIIStyle(cii int) lipgloss.Style {
	s := lipgloss.NewStyle().Bold(true)
	switch {
	case cii < ciiLow:
		return s.Foreground(TextDim)
	case cii >= ciiStrong:
		return s.Foreground(ArcadeYellow)
	}
	return s.Foreground(Secondary)
}
