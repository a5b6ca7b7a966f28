package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/interleave/internal/reminder"
	"github.com/abhisek/interleave/internal/spacedrep"
	"github.com/abhisek/interleave/internal/store"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Manage the revision schedule",
}

var scheduleEnableCmd = &cobra.Command{
	Use:   "enable <item-id>...",
	Short: "Start scheduling revisions for items",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := dateFlag(cmd)
		if err != nil {
			return err
		}
		return updateSchedule(cmd.Context(), func(sched spacedrep.Schedule) (spacedrep.Schedule, error) {
			for _, id := range args {
				sched, err = spacedrep.EnableScheduling(sched, id, date)
				if err != nil {
					return sched, err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "enabled %s\n", id)
			}
			return sched, nil
		})
	},
}

var scheduleDisableCmd = &cobra.Command{
	Use:   "disable <item-id>...",
	Short: "Stop scheduling revisions for items",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateSchedule(cmd.Context(), func(sched spacedrep.Schedule) (spacedrep.Schedule, error) {
			for _, id := range args {
				if _, ok := sched.Entry(id); !ok {
					fmt.Fprintf(cmd.OutOrStdout(), "%s is not scheduled\n", id)
					continue
				}
				sched = spacedrep.DisableScheduling(sched, id)
				fmt.Fprintf(cmd.OutOrStdout(), "disabled %s\n", id)
			}
			return sched, nil
		})
	},
}

var scheduleReviseCmd = &cobra.Command{
	Use:   "revise <item-id>...",
	Short: "Record a revision of items",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := dateFlag(cmd)
		if err != nil {
			return err
		}
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		entries, err := recordRevisions(cmd.Context(), st, cfg.User, args, date)
		if err != nil {
			return err
		}
		for _, id := range args {
			e, ok := entries[id]
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "%s marked revised on %s, schedule unchanged\n", id, date)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "revised %s, next revision %s\n", id, e.LastDate())
		}
		return nil
	},
}

var scheduleDueCmd = &cobra.Command{
	Use:   "due",
	Short: "List items due for revision",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := dateFlag(cmd)
		if err != nil {
			return err
		}
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		due, err := reminder.Due(cmd.Context(), st.ScheduleRepo(), st.EventRepo(), cfg.User, date)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(due) == 0 {
			fmt.Fprintf(out, "Nothing due on %s.\n", date)
			return nil
		}
		for _, id := range due {
			fmt.Fprintln(out, id)
		}
		return nil
	},
}

var scheduleShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show every scheduled item",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		sched, err := st.ScheduleRepo().Load(cmd.Context(), cfg.User)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if sched.Len() == 0 {
			fmt.Fprintf(out, "No items scheduled for %s.\n", cfg.User)
			return nil
		}

		fmt.Fprintf(out, "%-24s  %5s  %-12s  %-12s  %s\n", "Item", "Count", "Last", "Next", "Dates")
		fmt.Fprintln(out, strings.Repeat("─", 90))
		for _, e := range sched.Entries {
			last := e.LastRevised
			if last == "" {
				last = "-"
			}
			fmt.Fprintf(out, "%-24s  %5d  %-12s  %-12s  %s\n",
				e.ItemID, e.RevisionCount, last, e.LastDate(), strings.Join(e.RevisionDates, " "))
		}
		fmt.Fprintf(out, "\n%d items\n", sched.Len())
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{scheduleEnableCmd, scheduleReviseCmd, scheduleDueCmd} {
		c.Flags().String("date", "", "Calendar date as YYYY-MM-DD (default today)")
	}

	scheduleCmd.AddCommand(scheduleEnableCmd)
	scheduleCmd.AddCommand(scheduleDisableCmd)
	scheduleCmd.AddCommand(scheduleReviseCmd)
	scheduleCmd.AddCommand(scheduleDueCmd)
	scheduleCmd.AddCommand(scheduleShowCmd)
}

// dateFlag returns --date, or today's local date when unset.
func dateFlag(cmd *cobra.Command) (string, error) {
	date, _ := cmd.Flags().GetString("date")
	if date == "" {
		return spacedrep.Today(nowFunc()), nil
	}
	if _, err := spacedrep.ParseDate(date); err != nil {
		return "", err
	}
	return date, nil
}

// updateSchedule loads the user's schedule, applies fn and saves the result.
func updateSchedule(ctx context.Context, fn func(spacedrep.Schedule) (spacedrep.Schedule, error)) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	repo := st.ScheduleRepo()
	sched, err := repo.Load(ctx, cfg.User)
	if err != nil {
		return err
	}
	sched, err = fn(sched)
	if err != nil {
		return err
	}
	return repo.Save(ctx, sched)
}

// recordRevisions applies a revision on date to each item and saves the
// schedule when it changed. A revision event is appended once per item and
// day, so an item revised on its due date drops off the due list even when
// its schedule stays the same. The resulting entries are returned by item ID
// for items whose schedule changed.
func recordRevisions(ctx context.Context, st *store.Store, userID string, itemIDs []string, date string) (map[string]spacedrep.Entry, error) {
	repo := st.ScheduleRepo()
	sched, err := repo.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	changed := make(map[string]spacedrep.Entry)
	for _, id := range itemIDs {
		before, existed := sched.Entry(id)
		sched, err = spacedrep.RecordRevision(sched, id, date)
		if err != nil {
			return nil, err
		}
		after, _ := sched.Entry(id)
		if existed && len(after.RevisionDates) == len(before.RevisionDates) {
			continue
		}
		changed[id] = after
	}
	if len(changed) > 0 {
		if err := repo.Save(ctx, sched); err != nil {
			return nil, err
		}
	}

	events := st.EventRepo()
	for _, id := range itemIDs {
		done, err := events.RevisedOn(ctx, userID, id, date)
		if err != nil {
			return nil, err
		}
		if done {
			continue
		}
		e, _ := sched.Entry(id)
		err = events.AppendRevisionEvent(ctx, store.RevisionEventData{
			UserID:        userID,
			ItemID:        id,
			RevisionDate:  date,
			RevisionCount: e.RevisionCount,
			NextDate:      e.LastDate(),
		})
		if err != nil {
			logger.Warn("failed to record revision event", "item", id, "err", err)
		}
	}
	return changed, nil
}
