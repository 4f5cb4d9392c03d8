package history

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/iq360/internal/assessment"
	"github.com/abhisek/iq360/internal/profile"
	"github.com/abhisek/iq360/internal/screen"
	"github.com/abhisek/iq360/internal/session"
)

type stubGenerator struct{}

func (stubGenerator) Generate(_ context.Context, n int, _ profile.Profile) (*assessment.Level, error) {
	return &assessment.Level{
		ID:        n,
		Title:     fmt.Sprintf("Level title %d", n),
		Questions: []assessment.Question{{ID: "q1", Text: "Why?"}},
	}, nil
}

type stubEvaluator struct{}

func (stubEvaluator) Evaluate(_ context.Context, n int, _ []assessment.UserResponse, _ profile.Profile) (*assessment.Feedback, error) {
	return &assessment.Feedback{LevelProgressSummary: fmt.Sprintf("summary %d", n)}, nil
}

func playedMachine(t *testing.T, levels int) *session.Machine {
	t.Helper()
	ctx := context.Background()
	m := session.New(stubGenerator{}, stubEvaluator{}, nil)
	if err := m.Load(ctx); err != nil {
		t.Fatal(err)
	}
	for range levels {
		if err := m.StartLevel(ctx); err != nil {
			t.Fatal(err)
		}
		m.RecordResponse("q1", "because")
		if err := m.SubmitAnswers(ctx); err != nil {
			t.Fatal(err)
		}
		if err := m.ProceedToNext(); err != nil {
			t.Fatal(err)
		}
	}
	if err := m.ShowHistory(); err != nil {
		t.Fatal(err)
	}
	return m
}

func TestHistoryScreen_NewestFirst(t *testing.T) {
	s := New(context.Background(), playedMachine(t, 3))
	view := s.View(100, 40)
	i3 := strings.Index(view, "Level title 3")
	i1 := strings.Index(view, "Level title 1")
	if i3 < 0 || i1 < 0 || i3 > i1 {
		t.Errorf("expected level 3 before level 1 in:\n%s", view)
	}
}

func TestHistoryScreen_Empty(t *testing.T) {
	s := New(context.Background(), playedMachine(t, 0))
	if !strings.Contains(s.View(100, 40), "No completed levels yet") {
		t.Error("expected empty message")
	}
}

func TestHistoryScreen_ExpandShowsSummary(t *testing.T) {
	s := New(context.Background(), playedMachine(t, 2))
	if strings.Contains(s.View(100, 40), "summary 2") {
		t.Error("summary should be hidden until expanded")
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !strings.Contains(s.View(100, 40), "summary 2") {
		t.Error("expanded entry should show its summary")
	}
}

func TestHistoryScreen_Navigation(t *testing.T) {
	s := New(context.Background(), playedMachine(t, 2))
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.selected != 1 {
		t.Errorf("selected = %d, want 1", s.selected)
	}
}

func TestHistoryScreen_StartLevel(t *testing.T) {
	m := playedMachine(t, 1)
	s := New(context.Background(), m)
	_, cmd := s.Update(tea.KeyPressMsg{Code: 's', Text: "s"})
	if cmd == nil || !s.starting {
		t.Fatal("expected start command")
	}
	if err := m.StartLevel(context.Background()); err != nil {
		t.Fatal(err)
	}
	s.Update(screen.SessionMsg{Op: "start"})
	if s.starting {
		t.Error("starting should clear on result")
	}
	if v := m.View(); v.State != session.StateLevelActive || v.LevelNumber != 2 {
		t.Errorf("state %v level %d", v.State, v.LevelNumber)
	}
}

func TestHistoryScreen_EscGoesBack(t *testing.T) {
	m := playedMachine(t, 1)
	s := New(context.Background(), m)
	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.View().State != session.StateWelcome {
		t.Error("expected welcome")
	}
}

func TestHistoryScreen_DetailFollowsSelection(t *testing.T) {
	s := New(context.Background(), playedMachine(t, 2))
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	view := s.View(100, 40)
	if !strings.Contains(view, "summary 1") || strings.Contains(view, "summary 2") {
		t.Errorf("expected only the older level's summary in:\n%s", view)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if !strings.Contains(s.View(100, 40), "summary 2") {
		t.Error("detail should follow the selection")
	}
}
