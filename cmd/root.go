// Package cmd wires the iq360 command line. Running iq360 with no
// subcommand opens the interactive session.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/iq360/internal/store"
)

var rootCmd = &cobra.Command{
	Use:          "iq360",
	Short:        "Interactive cognitive assessment in the terminal",
	Long:         "IQ360 guides you through thirty levels of open-ended reasoning challenges and coaches you after each one.",
	RunE:         func(cmd *cobra.Command, args []string) error { return runApp(cmd) },
	SilenceUsage: true,
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start or resume the interactive session (the default)",
	RunE:  func(cmd *cobra.Command, args []string) error { return runApp(cmd) },
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "SQLite database path (overrides IQ360_DB)")
	rootCmd.AddCommand(
		playCmd,
		statsCmd,
		historyCmd,
		tiersCmd,
		resetCmd,
		previewCmd,
		llmCmd,
		versionCmd,
	)
}

// resolveDBPath picks the database path: --db, then IQ360_DB, then the
// default under the XDG data directory. Parent directories are created.
func resolveDBPath(cmd *cobra.Command, fromEnv string) (string, error) {
	p, _ := cmd.Flags().GetString("db")
	if p == "" {
		p = fromEnv
	}
	if p == "" {
		return store.DefaultDBPath()
	}
	return p, store.EnsureDir(p)
}
