package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the learner's schedule and history",
	Long:  "Removes the current user's revision schedule and all recorded events. Decks are kept.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return errors.New("reset deletes all schedule and history data for this user; pass --yes to confirm")
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Reset(cmd.Context(), cfg.User); err != nil {
			return fmt.Errorf("reset %s: %w", cfg.User, err)
		}
		logger.Info("learner data reset", "user", cfg.User)
		fmt.Fprintf(cmd.OutOrStdout(), "Reset schedule and history for %s.\n", cfg.User)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm the reset")
}
