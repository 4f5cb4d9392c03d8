package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/iq360/internal/router"
	"github.com/abhisek/iq360/internal/screen"
	"github.com/abhisek/iq360/internal/screens/coaching"
	"github.com/abhisek/iq360/internal/screens/dashboard"
	"github.com/abhisek/iq360/internal/screens/history"
	"github.com/abhisek/iq360/internal/screens/home"
	"github.com/abhisek/iq360/internal/screens/level"
	"github.com/abhisek/iq360/internal/screens/splash"
	"github.com/abhisek/iq360/internal/session"
	"github.com/abhisek/iq360/internal/ui/layout"
)

type Options struct {
	Ctx     context.Context
	Machine *session.Machine

	// LLMReady is false when no provider key was found. The home screen
	// then disables starting a level and explains why.
	LLMReady bool
}

// AppModel is the root Bubble Tea model. It owns the screen stack and
// keeps its root in step with the session state.
type AppModel struct {
	router   *router.Router
	machine  *session.Machine
	ctx      context.Context
	llmReady bool
	width    int
	height   int
}

// newAppModel creates an AppModel that opens on the splash screen.
func newAppModel(opts Options) AppModel {
	ctx := opts.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	m := AppModel{
		machine:  opts.Machine,
		ctx:      ctx,
		llmReady: opts.LLMReady,
	}
	next := func() screen.Screen {
		return m.screenFor(m.machine.View().State)
	}
	m.router = router.New(splash.New(ctx, opts.Machine, next))
	return m
}

// screenFor builds the screen that renders a session state.
func (m AppModel) screenFor(state session.State) screen.Screen {
	switch state {
	case session.StateLevelActive:
		return level.New(m.ctx, m.machine)
	case session.StateCoaching:
		return coaching.New(m.machine)
	case session.StateDashboard:
		return dashboard.New(m.machine)
	case session.StateHistory:
		return history.New(m.ctx, m.machine)
	default:
		return home.New(m.ctx, m.machine, m.llmReady)
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}

	case screen.SessionMsg, router.PopScreenMsg:
		cmd := m.router.Update(msg)
		return m, tea.Batch(cmd, m.sync())
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// sync rebuilds the stack when the session has moved to a state the root
// screen does not render. Open overlays are dropped with it. A root that is
// not tied to a state, such as the splash, is left alone.
func (m AppModel) sync() tea.Cmd {
	root, ok := m.router.Root().(screen.StateScreen)
	if !ok {
		return nil
	}
	state := m.machine.View().State
	if root.State() == state {
		return nil
	}
	return m.router.Rebase(m.screenFor(state))
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	switch {
	case m.width == 0 || m.height == 0:
		return v
	case layout.IsTooSmall(m.width, m.height):
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	var (
		title  string
		status layout.Status
	)
	active := m.router.Active()
	if active != nil {
		title = active.Title()
	}
	if vm := m.machine.View(); vm.Loaded {
		status = layout.Status{CII: vm.Profile.CII, Level: vm.LevelNumber, Unsaved: vm.PersistenceDegraded}
	}

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(m.hints(active), m.width)
	body := m.router.View(m.width, layout.BodyHeight(header, footer, m.height))
	v.SetContent(layout.RenderFrame(header, body, footer, m.width, m.height))
	return v
}

// hints prefers the active screen's own key hints.
func (m AppModel) hints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return p.KeyHints()
	}
	quit := layout.KeyHint{Key: "Ctrl+C", Description: "Quit"}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}, quit}
	}
	return []layout.KeyHint{{Key: "↑↓", Description: "Navigate"}, {Key: "Enter", Description: "Select"}, quit}
}

// Run blocks until the player quits.
func Run(opts Options) error {
	if _, err := tea.NewProgram(newAppModel(opts)).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
