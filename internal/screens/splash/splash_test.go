package splash

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/iq360/internal/router"
	"github.com/abhisek/iq360/internal/screen"
	"github.com/abhisek/iq360/internal/session"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "home" }
func (s *stubScreen) Title() string                           { return "Home" }

func newTestSplash() (*SplashScreen, *int) {
	callCount := 0
	factory := func() screen.Screen {
		callCount++
		return &stubScreen{}
	}
	m := session.New(nil, nil, nil)
	return New(context.Background(), m, factory), &callCount
}

func sendTicks(s *SplashScreen, n int) {
	for i := 0; i < n; i++ {
		s.Update(tickMsg(time.Now()))
	}
}

func TestPhaseTransitions(t *testing.T) {
	s, _ := newTestSplash()

	if strings.Contains(s.View(80, 24), "One profile") {
		t.Error("tagline should not be visible at start")
	}

	sendTicks(s, 5)
	if s.elapsed != 500*time.Millisecond {
		t.Errorf("expected elapsed 500ms, got %v", s.elapsed)
	}

	sendTicks(s, 10)
	view := s.View(80, 24)
	if !strings.Contains(view, "One profile") {
		t.Error("tagline should be visible after phase 2")
	}
	if !strings.Contains(view, "loading your profile") {
		t.Error("expected loading hint before the session loads")
	}
}

func TestKeypressIgnoredUntilLoaded(t *testing.T) {
	s, callCount := newTestSplash()
	sendTicks(s, 30)

	if _, cmd := s.Update(tea.KeyPressMsg{Code: ' '}); cmd != nil {
		t.Error("keypress before load should not transition")
	}
	if *callCount != 0 {
		t.Errorf("factory called %d times before load", *callCount)
	}
}

func TestKeypressIgnoredDuringAnimation(t *testing.T) {
	s, _ := newTestSplash()
	s.Update(loadedMsg{})
	sendTicks(s, 3)

	if _, cmd := s.Update(tea.KeyPressMsg{Code: ' '}); cmd != nil {
		t.Error("keypress mid-animation should not transition")
	}
}

func TestKeypressAfterLoadEmitsReplace(t *testing.T) {
	s, callCount := newTestSplash()
	s.Update(loadedMsg{})
	sendTicks(s, 30)

	if !strings.Contains(s.View(80, 24), "press any key") {
		t.Error("expected continue hint once ready")
	}

	_, cmd := s.Update(tea.KeyPressMsg{Code: ' '})
	if cmd == nil {
		t.Fatal("expected a command from keypress after load")
	}
	replaceMsg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	if replaceMsg.Screen == nil {
		t.Error("replace screen should not be nil")
	}
	if *callCount != 1 {
		t.Errorf("factory should be called once, got %d", *callCount)
	}

	if _, cmd := s.Update(tea.KeyPressMsg{Code: 'b'}); cmd != nil {
		t.Error("second keypress should not produce a command")
	}
	if *callCount != 1 {
		t.Errorf("factory should be called exactly once, got %d", *callCount)
	}
}

func TestElapsedCapped(t *testing.T) {
	s, _ := newTestSplash()
	sendTicks(s, 45)
	if s.elapsed != totalDur {
		t.Errorf("expected elapsed capped at %v, got %v", totalDur, s.elapsed)
	}
}

func TestBannerCompact(t *testing.T) {
	if got := RenderBanner(30); !strings.Contains(got, bannerCompact) {
		t.Errorf("narrow banner = %q", got)
	}
}
