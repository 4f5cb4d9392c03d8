// Package home renders the Welcome state: start or resume the next level,
// open the dashboard or history, or reset progress.
package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/iq360/internal/assessment"
	"github.com/abhisek/iq360/internal/llm"
	"github.com/abhisek/iq360/internal/router"
	"github.com/abhisek/iq360/internal/screen"
	"github.com/abhisek/iq360/internal/screens/confirm"
	"github.com/abhisek/iq360/internal/session"
	"github.com/abhisek/iq360/internal/ui/components"
	"github.com/abhisek/iq360/internal/ui/layout"
	"github.com/abhisek/iq360/internal/ui/theme"
)

const (
	itemStart = iota
	itemDashboard
	itemHistory
	itemReset
	itemExit
)

// HomeScreen is the Welcome state screen.
type HomeScreen struct {
	ctx      context.Context
	machine  *session.Machine
	llmReady bool
	menu     components.Menu
	spinner  components.Spinner
	starting bool
}

var _ screen.StateScreen = (*HomeScreen)(nil)

// New creates a HomeScreen. When llmReady is false the start item is
// disabled and a configuration hint is shown.
func New(ctx context.Context, m *session.Machine, llmReady bool) *HomeScreen {
	h := &HomeScreen{ctx: ctx, machine: m, llmReady: llmReady}

	items := []components.MenuItem{
		itemStart:     {Label: "START", Action: h.start, Disabled: !llmReady},
		itemDashboard: {Label: "DASHBOARD", Action: h.showDashboard},
		itemHistory:   {Label: "HISTORY", Action: h.showHistory},
		itemReset:     {Label: "RESET PROGRESS", Action: h.confirmReset},
		itemExit:      {Label: "EXIT", Action: func() tea.Cmd { return tea.Quit }},
	}
	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) start() tea.Cmd {
	if h.starting {
		return nil
	}
	h.starting = true
	return tea.Batch(
		screen.Run("start", func() error { return h.machine.StartLevel(h.ctx) }),
		h.spinner.Tick(),
	)
}

func (h *HomeScreen) showDashboard() tea.Cmd {
	return screen.Changed("dashboard", h.machine.ShowDashboard())
}

func (h *HomeScreen) showHistory() tea.Cmd {
	return screen.Changed("history", h.machine.ShowHistory())
}

func (h *HomeScreen) confirmReset() tea.Cmd {
	c := confirm.New(h.ctx, h.machine)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: c}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) State() session.State {
	return session.StateWelcome
}

func (h *HomeScreen) Title() string {
	return "Welcome"
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.SessionMsg:
		if msg.Op == "start" {
			h.starting = false
		}
		return h, nil
	case components.SpinnerTickMsg:
		var cmd tea.Cmd
		h.spinner, cmd = h.spinner.Update(msg, h.starting)
		return h, cmd
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

// startLabel names the start item after the level it will request.
func startLabel(v session.ViewModel) string {
	if v.Resuming() {
		return fmt.Sprintf("RESUME LEVEL %d", v.LevelNumber)
	}
	return "START LEVEL 1"
}

func (h *HomeScreen) View(width, height int) string {
	v := h.machine.View()
	compact := layout.IsCompactHeight(height+8) || layout.IsCompactWidth(width)
	cw := components.ContentWidth(width)

	h.menu.Items[itemStart].Label = startLabel(v)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	sections = append(sections, renderStatsBar(v.Profile.CII, v.LevelNumber, v.TierName, cw, compact))

	if !compact {
		progress := components.NewProgressBar(
			fmt.Sprintf("Arc %d/%d", min(v.LevelNumber, assessment.MaxLevel), assessment.MaxLevel),
			assessment.Progress(v.LevelNumber), false, cw)
		progress.LabelWidth = 10
		sync := components.NewProgressBar("Tier sync",
			float64(assessment.TierSync(v.LevelNumber))/100, true, cw)
		sync.LabelWidth = 10
		sections = append(sections, progress.View()+"\n"+sync.View())
	}

	sections = append(sections, h.menu.Buttons(cw, compact))

	if status := h.status(v, cw); status != "" {
		sections = append(sections, status)
	}

	sep := "\n\n"
	if compact {
		sep = "\n"
	}
	return components.CabinetFrame(strings.Join(sections, sep), width, height)
}

func (h *HomeScreen) status(v session.ViewModel, cw int) string {
	var lines []string
	switch {
	case v.Generating || h.starting:
		lines = append(lines, h.spinner.View(fmt.Sprintf("Generating level %d...", v.LevelNumber)))
	case v.Err != nil:
		lines = append(lines, renderNotice("Could not start the level. "+llm.Describe(v.Err), theme.ErrorText, cw))
	}
	if !h.llmReady {
		lines = append(lines, renderNotice("Set an LLM API key to start (see iq360 --help)", theme.Warning, cw))
	}
	if v.PersistenceDegraded {
		lines = append(lines, renderNotice("Progress is not being saved this session", lipgloss.NewStyle().Foreground(theme.TextDim), cw))
	}
	return strings.Join(lines, "\n")
}
