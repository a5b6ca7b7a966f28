package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/abhisek/interleave/internal/reminder"
	"github.com/abhisek/interleave/internal/spacedrep"
	"github.com/abhisek/interleave/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show study and revision statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		days, _ := cmd.Flags().GetInt("days")
		history, _ := cmd.Flags().GetInt("history")

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		today := spacedrep.Today(nowFunc())
		sched, err := st.ScheduleRepo().Load(ctx, cfg.User)
		if err != nil {
			return err
		}
		due, err := reminder.Due(ctx, st.ScheduleRepo(), st.EventRepo(), cfg.User, today)
		if err != nil {
			return err
		}
		upcoming, err := spacedrep.Upcoming(sched, today, days)
		if err != nil {
			return err
		}
		answers, err := st.EventRepo().AnswerStats(ctx, cfg.User)
		if err != nil {
			return err
		}
		counts, err := st.EventRepo().RevisionCounts(ctx, cfg.User)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "User:            %s\n", cfg.User)
		fmt.Fprintf(out, "Scheduled items: %d\n", sched.Len())
		fmt.Fprintf(out, "Due today:       %d\n", len(due))
		fmt.Fprintf(out, "Sessions:        %d\n", answers.Sessions)
		fmt.Fprintf(out, "Answers:         %d (%d correct, %.0f%%)\n", answers.Answers, answers.Correct, answers.Accuracy()*100)

		if len(upcoming) > 0 {
			fmt.Fprintf(out, "\nNext %d days:\n", days)
			for _, d := range upcoming {
				fmt.Fprintf(out, "  %s  %d\n", d.Date, d.Count)
			}
		}

		if len(counts) > 0 {
			ids := make([]string, 0, len(counts))
			for id := range counts {
				ids = append(ids, id)
			}
			sort.Slice(ids, func(i, j int) bool {
				if counts[ids[i]] != counts[ids[j]] {
					return counts[ids[i]] > counts[ids[j]]
				}
				return ids[i] < ids[j]
			})
			fmt.Fprintln(out, "\nRevisions per item:")
			for _, id := range ids {
				fmt.Fprintf(out, "  %-24s %d\n", id, counts[id])
			}
		}

		if history > 0 {
			events, err := st.EventRepo().RevisionEvents(ctx, cfg.User, store.QueryOpts{})
			if err != nil {
				return err
			}
			if len(events) > history {
				events = events[len(events)-history:]
			}
			fmt.Fprintln(out, "\nRecent revisions:")
			if len(events) == 0 {
				fmt.Fprintln(out, "  none")
			}
			for _, ev := range events {
				next := ev.NextDate
				if next == "" {
					next = "-"
				}
				fmt.Fprintf(out, "  %s  %-24s #%d  next %s\n", ev.RevisionDate, ev.ItemID, ev.RevisionCount, next)
			}
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("days", 7, "Days of upcoming revision load to show")
	statsCmd.Flags().Int("history", 0, "Show the N most recent revisions")
}
