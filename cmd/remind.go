package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/interleave/internal/reminder"
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Run the daily revision reminder",
	Long: "Runs in the foreground and logs, once a day, the items each user has due.\n" +
		"With --once it checks a single date for every user and exits.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		sched := reminder.New(st.ScheduleRepo(), st.EventRepo(), reminder.LogNotifier{Log: logger}, reminder.Options{
			At:  cfg.RemindAt,
			Log: logger,
			Now: nowFunc,
		})

		if once, _ := cmd.Flags().GetBool("once"); once {
			date, err := dateFlag(cmd)
			if err != nil {
				return err
			}
			sent, err := sched.RunOnce(ctx, date)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(sent) == 0 {
				fmt.Fprintf(out, "No revisions due on %s.\n", date)
				return nil
			}
			for _, r := range sent {
				fmt.Fprintf(out, "%s: %d due on %s (%s)\n", r.UserID, len(r.ItemIDs), r.Date, strings.Join(r.ItemIDs, ", "))
			}
			return nil
		}

		if err := sched.Start(); err != nil {
			return err
		}
		defer sched.Stop()
		logger.Info("reminder scheduler started", "at", cfg.RemindAt, "next_run", sched.NextRun())

		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()
		<-ctx.Done()
		logger.Info("reminder scheduler stopped")
		return nil
	},
}

func init() {
	f := remindCmd.Flags()
	f.Bool("once", false, "Check one date and exit instead of running daily")
	f.String("date", "", "Date to check with --once (YYYY-MM-DD, default today)")
	f.String("at", "", "Time of day to run, HH:MM (overrides INTERLEAVE_REMIND_AT)")
}
