package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/interleave/internal/deck"
	"github.com/abhisek/interleave/internal/spacedrep"
	"github.com/abhisek/interleave/internal/store"
)

var deckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Import and browse study decks",
}

var deckImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a deck from YAML, JSON, XLSX or CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		flags := cmd.Flags()

		opts := deck.DefaultOptions()
		opts.DeckID, _ = flags.GetString("id")
		opts.Title, _ = flags.GetString("title")
		opts.Owner = cfg.User
		opts.Sheet, _ = flags.GetString("sheet")
		opts.IDColumn, _ = flags.GetString("id-col")
		opts.PromptColumn, _ = flags.GetString("prompt-col")
		opts.AnswerColumn, _ = flags.GetString("answer-col")
		opts.StartRow, _ = flags.GetInt("start-row")

		d, rowErrs, err := deck.Load(args[0], opts)
		for _, re := range rowErrs {
			logger.Warn("skipped row", "file", args[0], "row", re.Row, "err", re.Err)
		}
		if err != nil {
			return err
		}
		// Document formats carry their own metadata; flags still win.
		if opts.DeckID != "" {
			d.ID = opts.DeckID
		}
		if opts.Title != "" {
			d.Title = opts.Title
		}
		if d.OwnerID == "" {
			d.OwnerID = cfg.User
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.DeckRepo().Save(ctx, d); err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Imported deck %q with %d items", d.ID, len(d.Items))
		if len(rowErrs) > 0 {
			fmt.Fprintf(out, " (%d rows skipped)", len(rowErrs))
		}
		fmt.Fprintln(out)

		if schedule, _ := flags.GetBool("schedule"); schedule {
			today := spacedrep.Today(nowFunc())
			repo := st.ScheduleRepo()
			sched, err := repo.Load(ctx, cfg.User)
			if err != nil {
				return err
			}
			for _, id := range d.ItemIDs() {
				if sched, err = spacedrep.EnableScheduling(sched, id, today); err != nil {
					return err
				}
			}
			if err := repo.Save(ctx, sched); err != nil {
				return err
			}
			fmt.Fprintf(out, "Scheduled %d items for revision from %s\n", len(d.Items), today)
		}
		return nil
	},
}

var deckListCmd = &cobra.Command{
	Use:   "list",
	Short: "List imported decks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		decks, err := st.DeckRepo().List(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(decks) == 0 {
			fmt.Fprintln(out, "No decks imported yet. Try: interleave deck import <file>")
			return nil
		}

		fmt.Fprintf(out, "%-24s  %-32s  %5s  %-12s  %s\n", "ID", "Title", "Items", "Owner", "Imported")
		fmt.Fprintln(out, strings.Repeat("─", 95))
		for _, d := range decks {
			title := d.Title
			if len(title) > 32 {
				title = title[:29] + "..."
			}
			fmt.Fprintf(out, "%-24s  %-32s  %5d  %-12s  %s\n",
				d.ID, title, d.ItemCount, d.OwnerID, d.CreatedAt.Local().Format("2006-01-02 15:04"))
		}
		fmt.Fprintf(out, "\n%d decks\n", len(decks))
		return nil
	},
}

var deckShowCmd = &cobra.Command{
	Use:   "show <deck-id>",
	Short: "Show the items of a deck",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		d, err := getDeck(cmd, st, args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if d.Title != "" {
			fmt.Fprintf(out, "%s (%s)\n\n", d.Title, d.ID)
		} else {
			fmt.Fprintf(out, "%s\n\n", d.ID)
		}
		fmt.Fprintf(out, "%-20s  %-40s  %s\n", "ID", "Prompt", "Answer")
		fmt.Fprintln(out, strings.Repeat("─", 80))
		for _, item := range d.Items {
			fmt.Fprintf(out, "%-20s  %-40s  %s\n", item.ID, item.Prompt, item.Answer)
		}
		return nil
	},
}

var deckDeleteCmd = &cobra.Command{
	Use:   "delete <deck-id>",
	Short: "Delete a deck and its items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		err = st.DeckRepo().Delete(cmd.Context(), args[0])
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("deck %q not found", args[0])
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted deck %q\n", args[0])
		return nil
	},
}

var deckExportCmd = &cobra.Command{
	Use:   "export <deck-id> <file.xlsx>",
	Short: "Export a deck to a spreadsheet",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		d, err := getDeck(cmd, st, args[0])
		if err != nil {
			return err
		}
		if err := deck.WriteXLSX(d, args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d items to %s\n", len(d.Items), args[1])
		return nil
	},
}

func init() {
	f := deckImportCmd.Flags()
	f.String("id", "", "Deck ID (default: file name)")
	f.String("title", "", "Deck title")
	f.String("sheet", "", "XLSX sheet name (default: first sheet)")
	f.String("id-col", "A", "Column holding item IDs (empty: derive from row number)")
	f.String("prompt-col", "B", "Column holding prompts")
	f.String("answer-col", "C", "Column holding answers")
	f.Int("start-row", 2, "First data row (1-based)")
	f.Bool("schedule", false, "Enable revision scheduling for every imported item")

	deckCmd.AddCommand(deckImportCmd)
	deckCmd.AddCommand(deckListCmd)
	deckCmd.AddCommand(deckShowCmd)
	deckCmd.AddCommand(deckDeleteCmd)
	deckCmd.AddCommand(deckExportCmd)
}

func getDeck(cmd *cobra.Command, st *store.Store, id string) (*deck.Deck, error) {
	d, err := st.DeckRepo().Get(cmd.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("deck %q not found; see `interleave deck list`", id)
	}
	return d, err
}
