package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// RevisionEventData captures one recorded revision of a scheduled item.
type RevisionEventData struct {
	UserID        string `db:"user_id"`
	ItemID        string `db:"item_id"`
	RevisionDate  string `db:"revision_date"`
	RevisionCount int    `db:"revision_count"`
	NextDate      string `db:"next_date"`
}

// RevisionEvent is a stored revision with its ordering fields.
type RevisionEvent struct {
	Sequence  int64     `db:"sequence"`
	Timestamp time.Time `db:"timestamp"`
	RevisionEventData
}

// SessionEventData captures a study session start or end.
type SessionEventData struct {
	SessionID      string
	UserID         string
	DeckID         string
	Action         string // "start" or "end"
	AnswersGiven   int
	CorrectAnswers int
	ItemsMastered  int
	Completed      bool
	DurationSecs   int
}

// AnswerEventData captures one judged answer.
type AnswerEventData struct {
	SessionID string
	UserID    string
	DeckID    string
	ItemID    string
	Mode      string
	Given     string
	Expected  string
	Correct   bool
}

// ModeEventData captures a presentation mode change or mastery.
type ModeEventData struct {
	SessionID string
	UserID    string
	ItemID    string
	FromMode  string
	ToMode    string
	Reason    string
	Mastered  bool
}

// AnswerStats summarizes a user's answer history.
type AnswerStats struct {
	Sessions int
	Answers  int
	Correct  int
}

// Accuracy returns the correct ratio, 0 when nothing was answered.
func (a AnswerStats) Accuracy() float64 {
	if a.Answers == 0 {
		return 0
	}
	return float64(a.Correct) / float64(a.Answers)
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	AppendRevisionEvent(ctx context.Context, data RevisionEventData) error
	AppendSessionEvent(ctx context.Context, data SessionEventData) error
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error
	AppendModeEvent(ctx context.Context, data ModeEventData) error

	// RevisedOn reports whether a revision of the item was recorded for
	// the user on date (YYYY-MM-DD).
	RevisedOn(ctx context.Context, userID, itemID, date string) (bool, error)

	// RevisionCounts returns the number of recorded revisions per item.
	RevisionCounts(ctx context.Context, userID string) (map[string]int, error)

	// RevisionEvents returns revision events in sequence order.
	RevisionEvents(ctx context.Context, userID string, opts QueryOpts) ([]RevisionEvent, error)

	// AnswerStats counts completed sessions and answers for the user.
	AnswerStats(ctx context.Context, userID string) (AnswerStats, error)
}

type eventRepo struct {
	s *Store
}

// appendEvent inserts a row with the next global sequence number.
func (r *eventRepo) appendEvent(ctx context.Context, table string, cols []string, vals []any) error {
	seq, err := r.s.seq.Next(ctx)
	if err != nil {
		return err
	}
	query, args := r.s.builder().Insert(table).
		Columns(append([]string{"sequence", "timestamp"}, cols...)...).
		Values(append([]any{seq, time.Now().UTC()}, vals...)...).
		Query()
	if _, err := r.s.x.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save %s: %w", table, err)
	}
	return nil
}

func (r *eventRepo) AppendRevisionEvent(ctx context.Context, data RevisionEventData) error {
	return r.appendEvent(ctx, RevisionEventsTable.Name,
		[]string{"user_id", "item_id", "revision_date", "revision_count", "next_date"},
		[]any{data.UserID, data.ItemID, data.RevisionDate, data.RevisionCount, data.NextDate},
	)
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	return r.appendEvent(ctx, SessionEventsTable.Name,
		[]string{"user_id", "session_id", "deck_id", "action", "answers_given", "correct_answers", "items_mastered", "completed", "duration_secs"},
		[]any{data.UserID, data.SessionID, data.DeckID, data.Action, data.AnswersGiven, data.CorrectAnswers, data.ItemsMastered, data.Completed, data.DurationSecs},
	)
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	return r.appendEvent(ctx, AnswerEventsTable.Name,
		[]string{"user_id", "session_id", "deck_id", "item_id", "mode", "given", "expected", "correct"},
		[]any{data.UserID, data.SessionID, data.DeckID, data.ItemID, data.Mode, data.Given, data.Expected, data.Correct},
	)
}

func (r *eventRepo) AppendModeEvent(ctx context.Context, data ModeEventData) error {
	return r.appendEvent(ctx, ModeEventsTable.Name,
		[]string{"user_id", "session_id", "item_id", "from_mode", "to_mode", "reason", "mastered"},
		[]any{data.UserID, data.SessionID, data.ItemID, data.FromMode, data.ToMode, data.Reason, data.Mastered},
	)
}

func (r *eventRepo) RevisedOn(ctx context.Context, userID, itemID, date string) (bool, error) {
	n, err := r.count(ctx, RevisionEventsTable.Name, entsql.And(
		entsql.EQ("user_id", userID),
		entsql.EQ("item_id", itemID),
		entsql.EQ("revision_date", date),
	))
	if err != nil {
		return false, fmt.Errorf("query revisions: %w", err)
	}
	return n > 0, nil
}

func (r *eventRepo) RevisionCounts(ctx context.Context, userID string) (map[string]int, error) {
	b := r.s.builder()
	query, args := b.Select("item_id", entsql.As(entsql.Count("*"), "n")).
		From(b.Table(RevisionEventsTable.Name)).
		Where(entsql.EQ("user_id", userID)).
		GroupBy("item_id").
		Query()

	var rows []struct {
		ItemID string `db:"item_id"`
		N      int    `db:"n"`
	}
	if err := r.s.x.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query revision counts: %w", err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.ItemID] = row.N
	}
	return counts, nil
}

func (r *eventRepo) RevisionEvents(ctx context.Context, userID string, opts QueryOpts) ([]RevisionEvent, error) {
	preds := []*entsql.Predicate{entsql.EQ("user_id", userID)}
	if opts.After > 0 {
		preds = append(preds, entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("timestamp", opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("timestamp", opts.To.UTC()))
	}

	b := r.s.builder()
	sel := b.Select("sequence", "timestamp", "user_id", "item_id", "revision_date", "revision_count", "next_date").
		From(b.Table(RevisionEventsTable.Name)).
		Where(entsql.And(preds...)).
		OrderBy("sequence")
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	query, args := sel.Query()

	var events []RevisionEvent
	if err := r.s.x.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, fmt.Errorf("query revision events: %w", err)
	}
	return events, nil
}

func (r *eventRepo) AnswerStats(ctx context.Context, userID string) (AnswerStats, error) {
	var stats AnswerStats
	var err error

	stats.Sessions, err = r.count(ctx, SessionEventsTable.Name, entsql.And(
		entsql.EQ("user_id", userID),
		entsql.EQ("action", "end"),
	))
	if err != nil {
		return stats, fmt.Errorf("count sessions: %w", err)
	}
	stats.Answers, err = r.count(ctx, AnswerEventsTable.Name, entsql.EQ("user_id", userID))
	if err != nil {
		return stats, fmt.Errorf("count answers: %w", err)
	}
	stats.Correct, err = r.count(ctx, AnswerEventsTable.Name, entsql.And(
		entsql.EQ("user_id", userID),
		entsql.EQ("correct", true),
	))
	if err != nil {
		return stats, fmt.Errorf("count correct answers: %w", err)
	}
	return stats, nil
}

func (r *eventRepo) count(ctx context.Context, table string, where *entsql.Predicate) (int, error) {
	b := r.s.builder()
	query, args := b.Select(entsql.Count("*")).
		From(b.Table(table)).
		Where(where).
		Query()

	var n int
	if err := r.s.x.GetContext(ctx, &n, query, args...); err != nil {
		return 0, err
	}
	return n, nil
}
