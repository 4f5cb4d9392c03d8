// Package splash shows the start-up animation while the saved session
// is loaded.
package splash

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/iq360/internal/router"
	"github.com/abhisek/iq360/internal/screen"
	"github.com/abhisek/iq360/internal/session"
	"github.com/abhisek/iq360/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 2500 * time.Millisecond
)

const emblemArt = `  ╭───────────╮
  │  ◆  ◇  ◆  │
  │  ◇  ◆  ◇  │
  │  ◆  ◇  ◆  │
  ╰───────────╯`

// pulse frames alternate beside the emblem
var pulseFrames = []string{"◆", "◇"}

type tickMsg time.Time

type loadedMsg struct{}

// SplashScreen loads the session and plays a short animation, then hands
// over to the screen produced by next.
type SplashScreen struct {
	ctx          context.Context
	machine      *session.Machine
	next         func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	loaded       bool
	transitioned bool
}

var _ screen.Screen = (*SplashScreen)(nil)

// New creates a SplashScreen. next is called once, after the session has
// loaded and the user presses a key.
func New(ctx context.Context, m *session.Machine, next func() screen.Screen) *SplashScreen {
	return &SplashScreen{ctx: ctx, machine: m, next: next}
}

func (s *SplashScreen) Title() string {
	return ""
}

func (s *SplashScreen) Init() tea.Cmd {
	load := func() tea.Msg {
		// Load never fails; storage problems degrade the session instead.
		_ = s.machine.Load(s.ctx)
		return loadedMsg{}
	}
	return tea.Batch(tick(), load)
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (s *SplashScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if s.elapsed < totalDur {
			s.elapsed += tickInterval
		}
		s.tickCount++
		return s, tick()

	case loadedMsg:
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		if s.ready() {
			return s, s.transition()
		}
		return s, nil
	}

	return s, nil
}

func (s *SplashScreen) ready() bool {
	return s.loaded && s.elapsed >= totalDur
}

func (s *SplashScreen) transition() tea.Cmd {
	if s.transitioned {
		return nil
	}
	s.transitioned = true
	next := s.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (s *SplashScreen) View(width, height int) string {
	var sections []string

	rendered := lipgloss.NewStyle().Foreground(theme.Primary).Render(emblemArt)

	if s.elapsed >= phase1End {
		frame := s.tickCount % len(pulseFrames)
		pulse := pulseFrames[frame]

		p1 := lipgloss.NewStyle().Foreground(theme.Accent).Render(pulse)
		p2 := lipgloss.NewStyle().Foreground(theme.Secondary).Render(pulse)

		lines := strings.Split(rendered, "\n")
		if len(lines) > 2 {
			lines[2] = p1 + "  " + lines[2] + "  " + p2
		}
		rendered = strings.Join(lines, "\n")
	}

	sections = append(sections, rendered)

	if s.elapsed >= phase2End {
		sections = append(sections, "", RenderBanner(width), "")

		tagline := lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("Thirty levels. Ten tiers. One profile.")
		sections = append(sections, tagline)
	}

	if s.ready() {
		sections = append(sections, "", lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("press any key to continue"))
	} else if s.elapsed >= phase2End {
		sections = append(sections, "", lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("loading your profile..."))
	}

	content := strings.Join(sections, "\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
