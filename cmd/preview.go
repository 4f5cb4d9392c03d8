package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/iq360/internal/assessment"
	"github.com/abhisek/iq360/internal/coaching"
	"github.com/abhisek/iq360/internal/config"
	"github.com/abhisek/iq360/internal/levelgen"
	"github.com/abhisek/iq360/internal/session"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Play one level in the terminal without saving anything",
	Long: `Generate the first level, answer it on stdin, and print the coaching.

This is a stateless developer tool: no database, no history, no events.
Useful for evaluating prompt quality against a provider.`,
	RunE: runPreview,
}

func runPreview(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	provider, err := newProvider(ctx, cfg.LLM, nil, zap.NewNop())
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}

	m := session.New(
		levelgen.New(provider, levelgen.DefaultConfig()),
		coaching.New(provider, coaching.DefaultConfig()),
		nil,
	)
	if err := m.Load(ctx); err != nil {
		return err
	}

	fmt.Printf("Generating level 1 with %s...\n\n", provider.ModelID())
	if err := m.StartLevel(ctx); err != nil {
		return err
	}

	v := m.View()
	fmt.Printf("── Level %d: %s ──\n", v.LevelNumber, v.Level.Title)
	fmt.Printf("Tier %d: %s\n\n", v.Tier, v.TierName)
	if v.Level.ScenarioIntroduction != "" {
		fmt.Println(v.Level.ScenarioIntroduction)
		fmt.Println()
	}

	scanner := bufio.NewScanner(os.Stdin)
	for i, q := range v.Level.Questions {
		fmt.Printf("%d/%d [%s] %s\n> ", i+1, len(v.Level.Questions), q.Type, q.Text)
		if !scanner.Scan() {
			return fmt.Errorf("input closed before question %d", i+1)
		}
		m.RecordResponse(q.ID, strings.TrimSpace(scanner.Text()))
		fmt.Println()
	}

	fmt.Println("Evaluating...")
	if err := m.SubmitAnswers(ctx); err != nil {
		return err
	}

	v = m.View()
	printFeedback(v.Coaching)
	fmt.Printf("\nCII: %d   Thinking style: %s\n", v.Profile.CII, v.Profile.ThinkingStyle)
	return nil
}

func printFeedback(fb *assessment.Feedback) {
	if fb == nil {
		return
	}
	for _, s := range []struct{ label, text string }{
		{"Thinking insight", fb.ThinkingInsight},
		{"In life", fb.LifeApplication},
		{"In business", fb.BusinessApplication},
		{"Coach", fb.CoachRecommendation},
		{"Progress", fb.LevelProgressSummary},
	} {
		if s.text == "" {
			continue
		}
		fmt.Printf("\n%s\n  %s\n", s.label, s.text)
	}
}
