package confirm

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/iq360/internal/router"
	"github.com/abhisek/iq360/internal/session"
)

func TestCancelPops(t *testing.T) {
	r := New(context.Background(), session.New(nil, nil, nil))
	_, cmd := r.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("cancel should pop the screen")
	}
}

func TestResetSelected(t *testing.T) {
	m := session.New(nil, nil, nil)
	r := New(context.Background(), m)
	r.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if r.menu.Selected != 1 {
		t.Fatalf("selected = %d, want 1", r.menu.Selected)
	}
	_, cmd := r.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
}

func TestKeyHints(t *testing.T) {
	r := New(context.Background(), session.New(nil, nil, nil))
	if len(r.KeyHints()) != 3 {
		t.Errorf("KeyHints length = %d, want 3", len(r.KeyHints()))
	}
}
