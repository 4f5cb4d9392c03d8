// Package router keeps the screen stack: one root screen for the current
// session state, with overlays such as confirmation dialogs pushed above it.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/iq360/internal/screen"
)

// PushScreenMsg opens an overlay above the current screen.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg closes the top overlay.
type PopScreenMsg struct{}

// ReplaceScreenMsg swaps the top screen, e.g. splash for the first real screen.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// Router owns the stack. The bottom screen is never popped.
type Router struct {
	screens []screen.Screen
}

func New(root screen.Screen) *Router {
	return &Router{screens: []screen.Screen{root}}
}

func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.screens = append(r.screens, s)
	return s.Init()
}

func (r *Router) Pop() tea.Cmd {
	if n := len(r.screens); n > 1 {
		r.screens[n-1] = nil
		r.screens = r.screens[:n-1]
	}
	return nil
}

func (r *Router) Replace(s screen.Screen) tea.Cmd {
	if n := len(r.screens); n > 0 {
		r.screens[n-1] = s
	} else {
		r.screens = append(r.screens, s)
	}
	return s.Init()
}

// Rebase drops every overlay and makes s the only screen. Used when the
// session moves to a state the root does not render.
func (r *Router) Rebase(s screen.Screen) tea.Cmd {
	clear(r.screens)
	r.screens = append(r.screens[:0], s)
	return s.Init()
}

// Active is the top screen, the one receiving input.
func (r *Router) Active() screen.Screen {
	if len(r.screens) == 0 {
		return nil
	}
	return r.screens[len(r.screens)-1]
}

// Root is the bottom screen.
func (r *Router) Root() screen.Screen {
	if len(r.screens) == 0 {
		return nil
	}
	return r.screens[0]
}

func (r *Router) Depth() int { return len(r.screens) }

// Update applies navigation messages and forwards everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	}
	top := r.Active()
	if top == nil {
		return nil
	}
	next, cmd := top.Update(msg)
	r.screens[len(r.screens)-1] = next
	return cmd
}

func (r *Router) View(width, height int) string {
	if top := r.Active(); top != nil {
		return top.View(width, height)
	}
	return ""
}
