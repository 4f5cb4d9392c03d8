package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/iq360/internal/assessment"
	"github.com/abhisek/iq360/internal/profile"
)

var tiersCmd = &cobra.Command{
	Use:   "tiers",
	Short: "List the ten cognitive tiers and their levels",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%-4s  %-8s  %s\n", "Tier", "Levels", "Focus")
		for i, name := range assessment.TierNames {
			first := i*profile.LevelsPerTier + 1
			last := first + profile.LevelsPerTier - 1
			fmt.Printf("%-4d  %-8s  %s\n", i+1, fmt.Sprintf("%d-%d", first, last), name)
		}
	},
}
