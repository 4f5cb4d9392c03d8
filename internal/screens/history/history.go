// Package history lists completed levels, newest first.
package history

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	hist "github.com/abhisek/iq360/internal/history"
	"github.com/abhisek/iq360/internal/llm"
	"github.com/abhisek/iq360/internal/profile"
	"github.com/abhisek/iq360/internal/screen"
	"github.com/abhisek/iq360/internal/session"
	"github.com/abhisek/iq360/internal/ui/components"
	"github.com/abhisek/iq360/internal/ui/layout"
	"github.com/abhisek/iq360/internal/ui/theme"
)

const titleWidth = 36

// HistoryScreen renders the History state: a table of completed levels
// with the selected level's summary underneath when expanded.
type HistoryScreen struct {
	ctx      context.Context
	machine  *session.Machine
	selected int // index into the newest-first list
	expanded bool
	spinner  components.Spinner
	starting bool
}

var (
	_ screen.StateScreen     = (*HistoryScreen)(nil)
	_ screen.KeyHintProvider = (*HistoryScreen)(nil)
)

func New(ctx context.Context, m *session.Machine) *HistoryScreen {
	return &HistoryScreen{ctx: ctx, machine: m}
}

func (s *HistoryScreen) Init() tea.Cmd        { return nil }
func (s *HistoryScreen) State() session.State { return session.StateHistory }
func (s *HistoryScreen) Title() string        { return "History" }

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Select"},
		{Key: "Enter", Description: "Details"},
		{Key: "S", Description: "Next level"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.SessionMsg:
		if msg.Op == "start" {
			s.starting = false
		}

	case components.SpinnerTickMsg:
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg, s.starting)
		return s, cmd

	case tea.KeyPressMsg:
		return s, s.handleKey(msg.String())
	}
	return s, nil
}

func (s *HistoryScreen) handleKey(key string) tea.Cmd {
	last := len(s.machine.View().History) - 1
	switch key {
	case "esc":
		return screen.Changed("back", s.machine.Back())
	case "up", "k":
		s.selected = max(s.selected-1, 0)
	case "down", "j":
		s.selected = max(min(s.selected+1, last), 0)
	case "enter":
		s.expanded = !s.expanded
	case "s":
		if s.starting {
			return nil
		}
		s.starting = true
		return tea.Batch(
			screen.Run("start", func() error { return s.machine.StartLevel(s.ctx) }),
			s.spinner.Tick(),
		)
	}
	return nil
}

func (s *HistoryScreen) View(width, height int) string {
	v := s.machine.View()
	center := func(str string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, str)
	}

	var blocks []string
	if len(v.History) == 0 {
		blocks = append(blocks, "", "",
			center(theme.Hint.Render("No completed levels yet. Press S to start level 1.")))
	} else {
		entries := hist.NewestFirst(v.History)
		blocks = append(blocks, "", center(s.levelTable(entries)))
		if s.expanded && s.selected < len(entries) {
			blocks = append(blocks, "", center(detail(entries[s.selected], min(width-12, 80))))
		}
	}

	switch {
	case s.starting || v.Generating:
		blocks = append(blocks, "", center(s.spinner.View(fmt.Sprintf("Generating level %d...", v.LevelNumber))))
	case v.Err != nil:
		blocks = append(blocks, "", center(theme.ErrorText.Render(llm.Describe(v.Err)+" Press S to try again.")))
	}
	return strings.Join(blocks, "\n")
}

// levelTable lists entries, which are newest first. The CII change is
// measured against the next older entry, or the starting profile.
func (s *HistoryScreen) levelTable(entries []hist.Entry) string {
	base := lipgloss.NewStyle().Padding(0, 1).Foreground(theme.Text)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers("LEVEL", "TITLE", "CII", "Δ", "DATE").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return base.Foreground(theme.Secondary).Bold(true)
			case row == s.selected:
				return base.Foreground(theme.Primary).Bold(true)
			}
			return base
		})

	for i, e := range entries {
		prev := profile.DefaultCII
		if i+1 < len(entries) {
			prev = entries[i+1].CII
		}
		t.Row(
			strconv.Itoa(e.LevelNumber),
			truncate(e.Title, titleWidth),
			theme.CIIStyle(e.CII).Render(strconv.Itoa(e.CII)),
			fmt.Sprintf("%+d", e.CII-prev),
			e.Time().Format("Jan 02, 2006"),
		)
	}
	return t.String()
}

func detail(e hist.Entry, width int) string {
	body := strings.TrimSpace(e.Feedback.LevelProgressSummary)
	if body == "" {
		body = "No summary recorded."
	}
	if rec := e.Feedback.CoachRecommendation; rec != "" {
		body += "\n\n" + theme.Heading.Render("Coach: ") + rec
	}
	return lipgloss.NewStyle().Width(width).Foreground(theme.TextDim).Render(body)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
