package dashboard

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/iq360/internal/session"
)

func TestDashboardScreen_Display(t *testing.T) {
	m := session.New(nil, nil, nil)
	if err := m.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := m.ShowDashboard(); err != nil {
		t.Fatal(err)
	}
	view := New(m).View(100, 40)
	for _, want := range []string{"CII 100", "Developing Strategist", "Logic", "Consistency", "50%", "Level 1 of 30", "Complete a level"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestDashboardScreen_EscGoesBack(t *testing.T) {
	m := session.New(nil, nil, nil)
	if err := m.ShowDashboard(); err != nil {
		t.Fatal(err)
	}
	s := New(m)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command on Esc")
	}
	if m.View().State != session.StateWelcome {
		t.Errorf("state = %v, want welcome", m.View().State)
	}
}
