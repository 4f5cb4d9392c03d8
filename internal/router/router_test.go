package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/iq360/internal/screen"
)

// fakeScreen records what the router does to it.
type fakeScreen struct {
	name  string
	inits int
	seen  []tea.Msg
}

type tickMsg struct{}

func (f *fakeScreen) Init() tea.Cmd {
	f.inits++
	return func() tea.Msg { return tickMsg{} }
}

func (f *fakeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	f.seen = append(f.seen, msg)
	return f, nil
}

func (f *fakeScreen) View(int, int) string { return f.name }
func (f *fakeScreen) Title() string        { return f.name }

func TestRouter_OverlayLifecycle(t *testing.T) {
	home := &fakeScreen{name: "welcome"}
	r := New(home)

	dialog := &fakeScreen{name: "confirm reset"}
	cmd := r.Update(PushScreenMsg{Screen: dialog})
	require.NotNil(t, cmd, "push returns the overlay's Init")
	assert.Equal(t, 1, dialog.inits)
	assert.Equal(t, 2, r.Depth())
	assert.Same(t, dialog, r.Active())
	assert.Same(t, home, r.Root())
	assert.Equal(t, "confirm reset", r.View(80, 24))

	r.Update(tea.KeyPressMsg{Code: 'y', Text: "y"})
	assert.Len(t, dialog.seen, 1, "input goes to the top screen only")
	assert.Empty(t, home.seen)

	r.Update(PopScreenMsg{})
	assert.Equal(t, 1, r.Depth())
	assert.Same(t, home, r.Active())
}

func TestRouter_RootNeverPops(t *testing.T) {
	r := New(&fakeScreen{name: "welcome"})
	r.Pop()
	r.Update(PopScreenMsg{})
	assert.Equal(t, 1, r.Depth())
	assert.NotNil(t, r.Active())
}

func TestRouter_ReplaceTop(t *testing.T) {
	splash := &fakeScreen{name: "splash"}
	r := New(splash)

	welcome := &fakeScreen{name: "welcome"}
	r.Update(ReplaceScreenMsg{Screen: welcome})
	assert.Equal(t, 1, r.Depth())
	assert.Same(t, welcome, r.Root())
	assert.Equal(t, 1, welcome.inits)
	assert.Zero(t, splash.inits, "the replaced screen is not re-initialized")
}

func TestRouter_RebaseDropsOverlays(t *testing.T) {
	r := New(&fakeScreen{name: "welcome"})
	r.Push(&fakeScreen{name: "confirm reset"})
	r.Push(&fakeScreen{name: "help"})

	level := &fakeScreen{name: "level"}
	require.NotNil(t, r.Rebase(level))
	assert.Equal(t, 1, r.Depth())
	assert.Same(t, level, r.Active())
	assert.Same(t, level, r.Root())
}

func TestRouter_Empty(t *testing.T) {
	r := &Router{}
	assert.Nil(t, r.Active())
	assert.Nil(t, r.Root())
	assert.Nil(t, r.Update(tickMsg{}))
	assert.Empty(t, r.View(80, 24))
}
