package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/jmoiron/sqlx"

	"github.com/abhisek/interleave/internal/deck"
)

// DeckInfo is a deck listing without its items.
type DeckInfo struct {
	ID        string    `db:"id"`
	Title     string    `db:"title"`
	OwnerID   string    `db:"owner_id"`
	Source    string    `db:"source"`
	CreatedAt time.Time `db:"created_at"`
	ItemCount int       `db:"item_count"`
}

// DeckRepo stores imported decks.
type DeckRepo interface {
	// Save stores the deck, replacing the items of an existing deck with
	// the same ID.
	Save(ctx context.Context, d *deck.Deck) error

	// Get returns the deck with its items in order, or ErrNotFound.
	Get(ctx context.Context, id string) (*deck.Deck, error)

	// List returns every deck ordered by ID.
	List(ctx context.Context) ([]DeckInfo, error)

	// Delete removes a deck and its items, or returns ErrNotFound.
	Delete(ctx context.Context, id string) error
}

type deckRepo struct {
	s *Store
}

type deckItemRow struct {
	ItemID string `db:"item_id"`
	Prompt string `db:"prompt"`
	Answer string `db:"answer"`
}

func (r *deckRepo) Save(ctx context.Context, d *deck.Deck) error {
	if err := d.Validate(); err != nil {
		return err
	}
	b := r.s.builder()

	return r.s.withTx(ctx, func(tx *sqlx.Tx) error {
		query, args := b.Insert(DecksTable.Name).
			Columns("id", "title", "owner_id", "source", "created_at").
			Values(d.ID, d.Title, d.OwnerID, d.Source, time.Now().UTC()).
			OnConflict(
				entsql.ConflictColumns("id"),
				entsql.ResolveWith(func(u *entsql.UpdateSet) {
					u.SetExcluded("title")
					u.SetExcluded("owner_id")
					u.SetExcluded("source")
				}),
			).
			Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("save deck: %w", err)
		}

		query, args = b.Delete(DeckItemsTable.Name).Where(entsql.EQ("deck_id", d.ID)).Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("clear deck items: %w", err)
		}

		for start := 0; start < len(d.Items); start += insertBatchSize {
			end := min(start+insertBatchSize, len(d.Items))
			ins := b.Insert(DeckItemsTable.Name).Columns("deck_id", "item_id", "position", "prompt", "answer")
			for i := start; i < end; i++ {
				it := d.Items[i]
				ins.Values(d.ID, it.ID, i, it.Prompt, it.Answer)
			}
			query, args = ins.Query()
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("save deck items: %w", err)
			}
		}
		return nil
	})
}

func (r *deckRepo) Get(ctx context.Context, id string) (*deck.Deck, error) {
	b := r.s.builder()
	query, args := b.Select("id", "title", "owner_id", "source", "created_at").
		From(b.Table(DecksTable.Name)).
		Where(entsql.EQ("id", id)).
		Query()

	var info DeckInfo
	if err := r.s.x.GetContext(ctx, &info, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("deck %q: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("query deck: %w", err)
	}

	query, args = b.Select("item_id", "prompt", "answer").
		From(b.Table(DeckItemsTable.Name)).
		Where(entsql.EQ("deck_id", id)).
		OrderBy("position").
		Query()
	var rows []deckItemRow
	if err := r.s.x.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query deck items: %w", err)
	}

	d := &deck.Deck{ID: info.ID, Title: info.Title, OwnerID: info.OwnerID, Source: info.Source}
	for _, row := range rows {
		d.Items = append(d.Items, deck.Item{ID: row.ItemID, Prompt: row.Prompt, Answer: row.Answer})
	}
	return d, nil
}

func (r *deckRepo) List(ctx context.Context) ([]DeckInfo, error) {
	b := r.s.builder()
	decks := b.Table(DecksTable.Name)
	items := b.Table(DeckItemsTable.Name).As("di")
	cols := []string{decks.C("id"), decks.C("title"), decks.C("owner_id"), decks.C("source"), decks.C("created_at")}

	query, args := b.Select(append(cols, entsql.As(entsql.Count(items.C("id")), "item_count"))...).
		From(decks).
		LeftJoin(items).
		On(decks.C("id"), items.C("deck_id")).
		GroupBy(cols...).
		OrderBy(decks.C("id")).
		Query()

	var infos []DeckInfo
	if err := r.s.x.SelectContext(ctx, &infos, query, args...); err != nil {
		return nil, fmt.Errorf("list decks: %w", err)
	}
	return infos, nil
}

func (r *deckRepo) Delete(ctx context.Context, id string) error {
	query, args := r.s.builder().Delete(DecksTable.Name).Where(entsql.EQ("id", id)).Query()
	res, err := r.s.x.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete deck: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete deck: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("deck %q: %w", id, ErrNotFound)
	}
	return nil
}
