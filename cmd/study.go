package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/interleave/internal/app"
	"github.com/abhisek/interleave/internal/mastery"
	"github.com/abhisek/interleave/internal/reminder"
	"github.com/abhisek/interleave/internal/screens/home"
	"github.com/abhisek/interleave/internal/screens/summary"
	"github.com/abhisek/interleave/internal/session"
	"github.com/abhisek/interleave/internal/spacedrep"
	"github.com/abhisek/interleave/internal/store"
)

var studyCmd = &cobra.Command{
	Use:   "study [deck-id]",
	Short: "Start an interleaved study session",
	Long: "Study a deck in the terminal UI. Without a deck ID a deck picker is shown.\n" +
		"Mastered items that are on your revision schedule are recorded as revised today.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		plain, _ := cmd.Flags().GetBool("plain")
		if plain && len(args) == 0 {
			return errors.New("--plain needs a deck ID")
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		runner := &studyRunner{st: st, rec: store.NewSessionRecorder(st.EventRepo(), logger)}

		var runErr error
		switch {
		case plain:
			sess, err := runner.start(ctx, args[0])
			if err != nil {
				return err
			}
			runErr = runPlainStudy(ctx, sess, cmd.InOrStdin(), cmd.OutOrStdout())
		case len(args) == 1:
			sess, err := runner.start(ctx, args[0])
			if err != nil {
				return err
			}
			runErr = app.Run(app.Options{Context: ctx, Session: sess, UserID: cfg.User})
		default:
			decks, err := deckEntries(ctx, st)
			if err != nil {
				return err
			}
			runErr = app.Run(app.Options{
				Context: ctx,
				UserID:  cfg.User,
				Decks:   decks,
				Start: func(id string) (*session.Session, error) {
					return runner.start(ctx, id)
				},
			})
		}

		if err := runner.finish(ctx, cmd.OutOrStdout()); err != nil {
			return err
		}
		return runErr
	},
}

func init() {
	f := studyCmd.Flags()
	f.Int("threshold", 0, "Correct multiple choice answers before an item moves to recall")
	f.String("strictness", "", "Answer matching for typed answers: strict or relaxed")
	f.Int("choices", 0, "Number of options in multiple choice questions")
	f.Bool("plain", false, "Line-based session on stdin/stdout instead of the terminal UI")
}

// studyRunner creates sessions and, once the UI exits, finishes them and
// records revisions for scheduled items they mastered.
type studyRunner struct {
	st       *store.Store
	rec      *store.SessionRecorder
	sessions []*session.Session
}

func (r *studyRunner) start(ctx context.Context, deckID string) (*session.Session, error) {
	d, err := r.st.DeckRepo().Get(ctx, deckID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("deck %q not found; see `interleave deck list`", deckID)
	}
	if err != nil {
		return nil, err
	}

	sess, err := session.New(d, session.Options{
		UserID:           cfg.User,
		MasteryThreshold: cfg.MasteryThreshold,
		Strictness:       cfg.Strictness,
		ChoiceCount:      cfg.ChoiceCount,
		Listener:         r.rec,
	})
	if err != nil {
		return nil, err
	}
	r.rec.Start(ctx, sess, cfg.User)
	r.sessions = append(r.sessions, sess)
	logger.Debug("session started", "session", sess.ID(), "deck", d.ID, "items", len(d.Items))
	return sess, nil
}

func (r *studyRunner) finish(ctx context.Context, out io.Writer) error {
	if len(r.sessions) == 0 {
		return nil
	}
	sched, err := r.st.ScheduleRepo().Load(ctx, cfg.User)
	if err != nil {
		return err
	}

	var revised []string
	for _, sess := range r.sessions {
		sum := sess.Finish(ctx)
		for _, it := range sum.Items {
			if _, ok := sched.Entry(it.ItemID); ok && it.Mastered {
				revised = append(revised, it.ItemID)
			}
		}
	}
	if len(revised) == 0 {
		return nil
	}

	today := spacedrep.Today(nowFunc())
	if _, err := recordRevisions(ctx, r.st, cfg.User, revised, today); err != nil {
		return fmt.Errorf("record revisions: %w", err)
	}
	fmt.Fprintf(out, "Recorded today's revision for %d scheduled items.\n", len(revised))
	return nil
}

// deckEntries lists decks with the number of their items due today.
func deckEntries(ctx context.Context, st *store.Store) ([]home.DeckEntry, error) {
	infos, err := st.DeckRepo().List(ctx)
	if err != nil {
		return nil, err
	}
	due, err := reminder.Due(ctx, st.ScheduleRepo(), st.EventRepo(), cfg.User, spacedrep.Today(nowFunc()))
	if err != nil {
		return nil, err
	}
	dueSet := make(map[string]bool, len(due))
	for _, id := range due {
		dueSet[id] = true
	}

	entries := make([]home.DeckEntry, 0, len(infos))
	for _, info := range infos {
		e := home.DeckEntry{ID: info.ID, Title: info.Title, Items: info.ItemCount}
		if len(dueSet) > 0 {
			d, err := st.DeckRepo().Get(ctx, info.ID)
			if err != nil {
				return nil, err
			}
			for _, id := range d.ItemIDs() {
				if dueSet[id] {
					e.Due++
				}
			}
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// runPlainStudy runs sess as a line-based prompt loop. EOF or ":q" ends the
// session early.
func runPlainStudy(ctx context.Context, sess *session.Session, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for !sess.Done() {
		q, err := sess.Current()
		if errors.Is(err, session.ErrNoItemsRemaining) {
			break
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "\n[%s] %s\n", q.Mode, q.Prompt)
		for i, c := range q.Choices {
			fmt.Fprintf(out, "  %d) %s\n", i+1, c)
		}

		var line string
		for {
			fmt.Fprint(out, "> ")
			if !scanner.Scan() {
				printPlainSummary(out, sess.Finish(ctx))
				return scanner.Err()
			}
			line = strings.TrimSpace(scanner.Text())
			if line != "" {
				break
			}
		}
		if line == ":q" {
			break
		}
		// A number picks among the listed choices.
		if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(q.Choices) {
			line = q.Choices[n-1]
		}

		res, err := sess.Submit(ctx, line)
		if err != nil {
			return err
		}
		if res.Correct {
			fmt.Fprintln(out, "Correct!")
		} else {
			fmt.Fprintf(out, "Not quite. Answer: %s\n", res.Expected)
		}
		if tr := res.Transition; tr != nil {
			switch {
			case tr.Mastered:
				fmt.Fprintf(out, "Mastered %s!\n", res.ItemID)
			case tr.To == mastery.ModeRecall:
				fmt.Fprintln(out, "Moving on to recall.")
			}
		}
	}

	printPlainSummary(out, sess.Finish(ctx))
	return nil
}

func printPlainSummary(out io.Writer, sum *session.Summary) {
	status := "complete"
	if !sum.Completed {
		status = "ended early"
	}
	fmt.Fprintf(out, "\nSession %s in %s: %d/%d correct (%.0f%%), %d/%d mastered\n",
		status, summary.FormatDuration(sum.Duration.Seconds()),
		sum.TotalCorrect, sum.TotalAnswers, sum.Accuracy*100,
		sum.Mastered, len(sum.Items))
}
