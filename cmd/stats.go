package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/iq360/internal/assessment"
	"github.com/abhisek/iq360/internal/history"
	"github.com/abhisek/iq360/internal/profile"
	"github.com/abhisek/iq360/internal/session"
	"github.com/abhisek/iq360/internal/ui/components"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the cognitive profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := loadView(cmd)
		if err != nil {
			return err
		}

		p := v.Profile
		fmt.Printf("CII:            %d\n", p.CII)
		fmt.Printf("Thinking style: %s\n", p.ThinkingStyle)
		fmt.Printf("Next level:     %d of %d\n", v.LevelNumber, assessment.MaxLevel)
		fmt.Printf("Tier:           %d  %s (sync %d%%)\n", v.Tier, v.TierName, assessment.TierSync(v.LevelNumber))
		fmt.Printf("Completed:      %d levels\n", len(v.History))

		fmt.Println()
		fmt.Println(strings.Repeat("─", 40))
		for _, d := range p.Scores.Domains() {
			fmt.Printf("%-12s  %6.1f\n", d.Label, d.Value)
		}
		fmt.Println(strings.Repeat("─", 40))

		if trend := history.CIITrend(v.History); len(trend) > 0 {
			fmt.Printf("CII trend:  %s\n", components.Sparkline(trend, profile.MinCII, profile.MaxCII, 30))
		}
		if !p.InRange() {
			fmt.Println("\nSome values lie outside their nominal ranges and are shown as stored.")
		}
		return nil
	},
}

// loadView opens storage and returns the persisted session without
// contacting an LLM.
func loadView(cmd *cobra.Command) (session.ViewModel, error) {
	rt, err := openRuntime(cmd)
	if err != nil {
		return session.ViewModel{}, err
	}
	defer rt.Close()

	m := session.New(nil, nil, rt.snapshots)
	if err := m.Load(cmd.Context()); err != nil {
		return session.ViewModel{}, err
	}
	v := m.View()
	if v.PersistenceDegraded {
		return v, fmt.Errorf("storage unavailable; see the log for details")
	}
	return v, nil
}
