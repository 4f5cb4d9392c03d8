// Package level renders the active level: its scenario, one answer field
// per question, and submission.
package level

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/iq360/internal/assessment"
	"github.com/abhisek/iq360/internal/llm"
	"github.com/abhisek/iq360/internal/screen"
	"github.com/abhisek/iq360/internal/session"
	"github.com/abhisek/iq360/internal/ui/components"
	"github.com/abhisek/iq360/internal/ui/layout"
	"github.com/abhisek/iq360/internal/ui/theme"
)

// answerLimit bounds a single free-text answer.
const answerLimit = 1200

// LevelScreen collects answers for the active level.
type LevelScreen struct {
	ctx        context.Context
	machine    *session.Machine
	level      *assessment.Level
	inputs     []components.TextInput
	focus      int
	spinner    components.Spinner
	submitting bool
}

var _ screen.StateScreen = (*LevelScreen)(nil)
var _ screen.KeyHintProvider = (*LevelScreen)(nil)

// New creates a LevelScreen for the machine's active level, pre-filled
// with any answers already recorded.
func New(ctx context.Context, m *session.Machine) *LevelScreen {
	v := m.View()
	s := &LevelScreen{ctx: ctx, machine: m, level: v.Level}
	if s.level == nil {
		return s
	}
	for _, q := range s.level.Questions {
		s.inputs = append(s.inputs, components.NewTextInput("Your answer", v.Answer(q.ID), answerLimit))
	}
	return s
}

func (s *LevelScreen) Init() tea.Cmd {
	if len(s.inputs) == 0 {
		return nil
	}
	return s.inputs[0].Focus()
}

func (s *LevelScreen) State() session.State {
	return session.StateLevelActive
}

func (s *LevelScreen) Title() string {
	if s.level == nil {
		return "Level"
	}
	return fmt.Sprintf("Level %d", s.level.ID)
}

func (s *LevelScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab/↓", Description: "Next"},
		{Key: "Shift+Tab/↑", Description: "Previous"},
		{Key: "Ctrl+S", Description: "Submit"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *LevelScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.SessionMsg:
		if msg.Op == "submit" {
			s.submitting = false
		}
		return s, nil

	case components.SpinnerTickMsg:
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg, s.submitting)
		return s, cmd

	case tea.KeyPressMsg:
		if len(s.inputs) == 0 {
			return s, nil
		}
		switch msg.String() {
		case "tab", "down":
			return s, s.moveFocus(1)
		case "shift+tab", "up":
			return s, s.moveFocus(-1)
		case "ctrl+s":
			return s, s.submit()
		case "enter":
			if s.focus == len(s.inputs)-1 {
				return s, s.submit()
			}
			return s, s.moveFocus(1)
		}
		if s.submitting {
			return s, nil
		}
		return s, s.updateFocused(msg)
	}

	if len(s.inputs) == 0 {
		return s, nil
	}
	return s, s.updateFocused(msg)
}

// updateFocused feeds msg to the focused input and records the answer
// when it changed.
func (s *LevelScreen) updateFocused(msg tea.Msg) tea.Cmd {
	in := s.inputs[s.focus]
	before := in.Value()
	var cmd tea.Cmd
	in, cmd = in.Update(msg)
	s.inputs[s.focus] = in
	if in.Value() != before {
		s.machine.RecordResponse(s.level.Questions[s.focus].ID, in.Value())
	}
	return cmd
}

func (s *LevelScreen) moveFocus(delta int) tea.Cmd {
	next := s.focus + delta
	if next < 0 || next >= len(s.inputs) {
		return nil
	}
	s.inputs[s.focus].Blur()
	s.focus = next
	return s.inputs[s.focus].Focus()
}

func (s *LevelScreen) submit() tea.Cmd {
	if s.submitting {
		return nil
	}
	s.submitting = true
	return tea.Batch(
		screen.Run("submit", func() error { return s.machine.SubmitAnswers(s.ctx) }),
		s.spinner.Tick(),
	)
}

func (s *LevelScreen) View(width, height int) string {
	if s.level == nil {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  No active level.")
	}
	v := s.machine.View()
	textWidth := min(width-8, 90)

	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s", s.level.Title))
	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Tier %d: %s   %d/%d answered",
			v.Tier, v.TierName, s.answered(v), len(s.level.Questions)))

	infoLine := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	if s.level.ScenarioIntroduction != "" {
		scenario := lipgloss.NewStyle().
			Width(textWidth).
			Foreground(theme.Text).
			Italic(true).
			Render(s.level.ScenarioIntroduction)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, scenario))
		b.WriteString("\n\n")
	}

	for i, q := range s.level.Questions {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderQuestion(i, q, textWidth)))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.status(v)))
	return b.String()
}

func (s *LevelScreen) renderQuestion(i int, q assessment.Question, textWidth int) string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	if i == s.focus {
		labelStyle = labelStyle.Foreground(theme.Primary)
	}
	tag := lipgloss.NewStyle().Foreground(theme.TextDim).Render("[" + q.Type + "]")
	text := labelStyle.Width(textWidth).Render(fmt.Sprintf("%d. %s %s", i+1, q.Text, tag))
	return text + "\n" + "   " + s.inputs[i].View()
}

func (s *LevelScreen) answered(v session.ViewModel) int {
	return len(s.level.Questions) - len(assessment.Missing(s.level, v.Responses))
}

func (s *LevelScreen) status(v session.ViewModel) string {
	if v.Evaluating || s.submitting {
		return s.spinner.View("Evaluating your answers...")
	}
	var verr *session.ValidationError
	if errors.As(v.Err, &verr) {
		return theme.Warning.Render(fmt.Sprintf("Answer every question before submitting (%d left)", len(verr.Missing)))
	}
	var eerr *session.EvaluationError
	if errors.As(v.Err, &eerr) {
		return theme.ErrorText.Render(llm.Describe(eerr.Err) + " Press Ctrl+S to try again.")
	}
	return theme.Hint.Render("Press Enter on the last answer or Ctrl+S to submit")
}
