package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/iq360/internal/session"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase the profile and every completed level",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			fmt.Print("This erases your profile and history. Type 'reset' to confirm: ")
			scanner := bufio.NewScanner(os.Stdin)
			if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != "reset" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		m := session.New(nil, nil, rt.snapshots, session.WithLogger(rt.logger))
		if err := m.Load(cmd.Context()); err != nil {
			return err
		}
		if m.View().PersistenceDegraded {
			return errors.New("storage unavailable, nothing was reset")
		}
		if err := m.Reset(cmd.Context()); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
		if m.View().PersistenceDegraded {
			return errors.New("storage failed while clearing progress")
		}
		fmt.Println("Progress reset. Level 1 awaits.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
