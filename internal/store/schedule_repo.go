package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/jmoiron/sqlx"

	"github.com/abhisek/interleave/internal/spacedrep"
)

// ScheduleRepo loads and saves per-user revision schedules.
//
// Save replaces the stored schedule wholesale. Concurrent writers race and
// the last one wins; callers do read-modify-write without locking.
type ScheduleRepo interface {
	// Load returns the user's schedule, empty if none is stored.
	Load(ctx context.Context, userID string) (spacedrep.Schedule, error)

	// Save stores the schedule, replacing any previous one for the user.
	Save(ctx context.Context, s spacedrep.Schedule) error

	// Users lists every user with at least one scheduled item.
	Users(ctx context.Context) ([]string, error)
}

type scheduleRepo struct {
	s *Store
}

type scheduleRow struct {
	ItemID        string `db:"item_id"`
	RevisionCount int    `db:"revision_count"`
	RevisionDates string `db:"revision_dates"`
	LastRevised   string `db:"last_revised"`
}

func (r *scheduleRepo) Load(ctx context.Context, userID string) (spacedrep.Schedule, error) {
	b := r.s.builder()
	query, args := b.Select("item_id", "revision_count", "revision_dates", "last_revised").
		From(b.Table(SchedulesTable.Name)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy("position").
		Query()

	var rows []scheduleRow
	if err := r.s.x.SelectContext(ctx, &rows, query, args...); err != nil {
		return spacedrep.Schedule{}, fmt.Errorf("query schedule: %w", err)
	}

	sched := spacedrep.Schedule{UserID: userID}
	for _, row := range rows {
		var dates []string
		if err := json.Unmarshal([]byte(row.RevisionDates), &dates); err != nil {
			return spacedrep.Schedule{}, fmt.Errorf("decode revision dates for %q: %w", row.ItemID, err)
		}
		sched.Entries = append(sched.Entries, spacedrep.Entry{
			ItemID:        row.ItemID,
			RevisionCount: row.RevisionCount,
			RevisionDates: dates,
			LastRevised:   row.LastRevised,
		})
	}
	return sched, nil
}

func (r *scheduleRepo) Save(ctx context.Context, sched spacedrep.Schedule) error {
	if sched.UserID == "" {
		return fmt.Errorf("save schedule: missing user id")
	}
	b := r.s.builder()
	now := time.Now().UTC()

	return r.s.withTx(ctx, func(tx *sqlx.Tx) error {
		query, args := b.Delete(SchedulesTable.Name).Where(entsql.EQ("user_id", sched.UserID)).Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("clear schedule: %w", err)
		}
		if len(sched.Entries) == 0 {
			return nil
		}

		for start := 0; start < len(sched.Entries); start += insertBatchSize {
			end := min(start+insertBatchSize, len(sched.Entries))
			ins := b.Insert(SchedulesTable.Name).
				Columns("user_id", "item_id", "position", "revision_count", "revision_dates", "last_revised", "updated_at")
			for i := start; i < end; i++ {
				e := sched.Entries[i]
				dates, err := json.Marshal(e.RevisionDates)
				if err != nil {
					return fmt.Errorf("encode revision dates for %q: %w", e.ItemID, err)
				}
				ins.Values(sched.UserID, e.ItemID, i, e.RevisionCount, string(dates), e.LastRevised, now)
			}
			query, args = ins.Query()
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("save schedule: %w", err)
			}
		}
		return nil
	})
}

func (r *scheduleRepo) Users(ctx context.Context) ([]string, error) {
	b := r.s.builder()
	query, args := b.Select("user_id").
		Distinct().
		From(b.Table(SchedulesTable.Name)).
		OrderBy("user_id").
		Query()

	var users []string
	if err := r.s.x.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, fmt.Errorf("query schedule users: %w", err)
	}
	return users, nil
}
