package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/iq360/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List completed levels, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		verbose, _ := cmd.Flags().GetBool("verbose")

		v, err := loadView(cmd)
		if err != nil {
			return err
		}
		if len(v.History) == 0 {
			fmt.Println("No completed levels yet.")
			return nil
		}

		fmt.Printf("%-5s  %-16s  %-5s  %s\n", "Level", "Completed", "CII", "Title")
		fmt.Println(strings.Repeat("─", 72))

		for i, e := range history.NewestFirst(v.History) {
			if limit > 0 && i >= limit {
				break
			}
			fmt.Printf("%-5d  %-16s  %-5d  %s\n",
				e.LevelNumber, e.Time().Local().Format("2006-01-02 15:04"), e.CII, e.Title)
			if verbose {
				if s := e.Feedback.LevelProgressSummary; s != "" {
					fmt.Printf("       %s\n", s)
				}
				if r := e.Feedback.CoachRecommendation; r != "" {
					fmt.Printf("       Coach: %s\n", r)
				}
			}
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 10, "Number of levels to show (0 for all)")
	historyCmd.Flags().BoolP("verbose", "v", false, "Include summaries and coach recommendations")
}
