package home

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/iq360/internal/assessment"
	"github.com/abhisek/iq360/internal/profile"
	"github.com/abhisek/iq360/internal/router"
	"github.com/abhisek/iq360/internal/screen"
	"github.com/abhisek/iq360/internal/session"
	"github.com/abhisek/iq360/internal/store"
)

type stubGenerator struct{}

func (stubGenerator) Generate(_ context.Context, n int, _ profile.Profile) (*assessment.Level, error) {
	return &assessment.Level{ID: n, Title: "Stub", Questions: []assessment.Question{{ID: "q1", Text: "?"}}}, nil
}

type stubEvaluator struct{}

func (stubEvaluator) Evaluate(context.Context, int, []assessment.UserResponse, profile.Profile) (*assessment.Feedback, error) {
	return &assessment.Feedback{}, nil
}

func TestHomeScreen_FreshStart(t *testing.T) {
	m := session.New(stubGenerator{}, stubEvaluator{}, store.NewMemoryStore(nil))
	if err := m.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	view := New(context.Background(), m, true).View(100, 40)
	if !strings.Contains(view, "START LEVEL 1") {
		t.Error("expected fresh start label")
	}
	if strings.Contains(view, "not being saved") {
		t.Error("unexpected degraded notice")
	}
}

func TestHomeScreen_ResumeLabel(t *testing.T) {
	ctx := context.Background()
	m := session.New(stubGenerator{}, stubEvaluator{}, nil)
	if err := m.StartLevel(ctx); err != nil {
		t.Fatal(err)
	}
	m.RecordResponse("q1", "yes")
	if err := m.SubmitAnswers(ctx); err != nil {
		t.Fatal(err)
	}
	if err := m.ProceedToNext(); err != nil {
		t.Fatal(err)
	}
	view := New(ctx, m, true).View(100, 40)
	if !strings.Contains(view, "RESUME LEVEL 2") {
		t.Error("expected resume label for level 2")
	}
	if !strings.Contains(view, "not being saved") {
		t.Error("expected degraded notice for a memory-only session")
	}
}

func TestHomeScreen_StartRunsStartLevel(t *testing.T) {
	m := session.New(stubGenerator{}, stubEvaluator{}, nil)
	h := New(context.Background(), m, true)
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil || !h.starting {
		t.Fatal("expected start command")
	}
	if err := m.StartLevel(context.Background()); err != nil {
		t.Fatal(err)
	}
	h.Update(screen.SessionMsg{Op: "start"})
	if h.starting {
		t.Error("starting should clear once the result arrives")
	}
}

func TestHomeScreen_WithoutLLM(t *testing.T) {
	m := session.New(nil, nil, nil)
	h := New(context.Background(), m, false)
	if h.menu.Selected != itemDashboard {
		t.Fatalf("selected = %d, want dashboard", h.menu.Selected)
	}
	if !strings.Contains(h.View(100, 40), "Set an LLM API key") {
		t.Error("expected configuration hint")
	}

	h.menu.Selected = itemStart
	if _, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter}); cmd != nil {
		t.Error("disabled start should not produce a command")
	}
}

func TestHomeScreen_Navigation(t *testing.T) {
	m := session.New(nil, nil, nil)
	h := New(context.Background(), m, false)
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if msg, ok := cmd().(screen.SessionMsg); !ok || msg.Err != nil {
		t.Fatalf("msg = %+v", msg)
	}
	if m.View().State != session.StateDashboard {
		t.Errorf("state = %v, want dashboard", m.View().State)
	}
}

func TestHomeScreen_ResetPushesConfirm(t *testing.T) {
	m := session.New(nil, nil, nil)
	h := New(context.Background(), m, true)
	h.menu.Selected = itemReset
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PushScreenMsg); !ok {
		t.Error("reset should push the confirmation screen")
	}
}
