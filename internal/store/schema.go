package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// eventColumns returns the columns shared by every event table: a global
// sequence number and a UTC timestamp.
func eventColumns(extra ...*schema.Column) []*schema.Column {
	cols := []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true, Comment: "Monotonically increasing global sequence number"},
		{Name: "timestamp", Type: field.TypeTime, Comment: "UTC wall-clock time of the event"},
		{Name: "user_id", Type: field.TypeString},
	}
	return append(cols, extra...)
}

var (
	// SchedulesColumns holds one row per scheduled item.
	SchedulesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "user_id", Type: field.TypeString},
		{Name: "item_id", Type: field.TypeString},
		{Name: "position", Type: field.TypeInt},
		{Name: "revision_count", Type: field.TypeInt, Default: 0},
		{Name: "revision_dates", Type: field.TypeString, Size: 2147483647, Comment: "JSON array of YYYY-MM-DD dates"},
		{Name: "last_revised", Type: field.TypeString, Default: ""},
		{Name: "updated_at", Type: field.TypeTime},
	}
	SchedulesTable = &schema.Table{
		Name:       "schedules",
		Columns:    SchedulesColumns,
		PrimaryKey: []*schema.Column{SchedulesColumns[0]},
		Indexes: []*schema.Index{
			{Name: "schedule_user_id_item_id", Unique: true, Columns: []*schema.Column{SchedulesColumns[1], SchedulesColumns[2]}},
		},
	}

	DecksColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "title", Type: field.TypeString, Default: ""},
		{Name: "owner_id", Type: field.TypeString, Default: ""},
		{Name: "source", Type: field.TypeString, Default: "", Comment: "File the deck was imported from"},
		{Name: "created_at", Type: field.TypeTime},
	}
	DecksTable = &schema.Table{
		Name:       "decks",
		Columns:    DecksColumns,
		PrimaryKey: []*schema.Column{DecksColumns[0]},
	}

	DeckItemsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "item_id", Type: field.TypeString},
		{Name: "position", Type: field.TypeInt},
		{Name: "prompt", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "answer", Type: field.TypeString, Size: 2147483647},
		{Name: "deck_id", Type: field.TypeString},
	}
	DeckItemsTable = &schema.Table{
		Name:       "deck_items",
		Columns:    DeckItemsColumns,
		PrimaryKey: []*schema.Column{DeckItemsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "deck_items_decks_items",
				Columns:    []*schema.Column{DeckItemsColumns[5]},
				RefColumns: []*schema.Column{DecksColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{Name: "deckitem_deck_id_item_id", Unique: true, Columns: []*schema.Column{DeckItemsColumns[5], DeckItemsColumns[1]}},
		},
	}

	// RevisionEventsColumns records every call to record a revision.
	RevisionEventsColumns = eventColumns(
		&schema.Column{Name: "item_id", Type: field.TypeString},
		&schema.Column{Name: "revision_date", Type: field.TypeString},
		&schema.Column{Name: "revision_count", Type: field.TypeInt},
		&schema.Column{Name: "next_date", Type: field.TypeString},
	)
	RevisionEventsTable = &schema.Table{
		Name:       "revision_events",
		Columns:    RevisionEventsColumns,
		PrimaryKey: []*schema.Column{RevisionEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "revisionevent_user_id_item_id_revision_date", Columns: []*schema.Column{RevisionEventsColumns[3], RevisionEventsColumns[4], RevisionEventsColumns[5]}},
			{Name: "revisionevent_timestamp", Columns: []*schema.Column{RevisionEventsColumns[2]}},
		},
	}

	SessionEventsColumns = eventColumns(
		&schema.Column{Name: "session_id", Type: field.TypeString, Comment: "UUID grouping events in a session"},
		&schema.Column{Name: "deck_id", Type: field.TypeString},
		&schema.Column{Name: "action", Type: field.TypeString, Comment: "start or end"},
		&schema.Column{Name: "answers_given", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "correct_answers", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "items_mastered", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "completed", Type: field.TypeBool, Default: false},
		&schema.Column{Name: "duration_secs", Type: field.TypeInt, Default: 0},
	)
	SessionEventsTable = &schema.Table{
		Name:       "session_events",
		Columns:    SessionEventsColumns,
		PrimaryKey: []*schema.Column{SessionEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "sessionevent_session_id", Columns: []*schema.Column{SessionEventsColumns[4]}},
			{Name: "sessionevent_timestamp", Columns: []*schema.Column{SessionEventsColumns[2]}},
		},
	}

	AnswerEventsColumns = eventColumns(
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "deck_id", Type: field.TypeString},
		&schema.Column{Name: "item_id", Type: field.TypeString},
		&schema.Column{Name: "mode", Type: field.TypeString, Comment: "recognition or recall"},
		&schema.Column{Name: "given", Type: field.TypeString, Size: 2147483647},
		&schema.Column{Name: "expected", Type: field.TypeString, Size: 2147483647},
		&schema.Column{Name: "correct", Type: field.TypeBool},
	)
	AnswerEventsTable = &schema.Table{
		Name:       "answer_events",
		Columns:    AnswerEventsColumns,
		PrimaryKey: []*schema.Column{AnswerEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "answerevent_session_id", Columns: []*schema.Column{AnswerEventsColumns[4]}},
			{Name: "answerevent_user_id_item_id", Columns: []*schema.Column{AnswerEventsColumns[3], AnswerEventsColumns[6]}},
		},
	}

	ModeEventsColumns = eventColumns(
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "item_id", Type: field.TypeString},
		&schema.Column{Name: "from_mode", Type: field.TypeString},
		&schema.Column{Name: "to_mode", Type: field.TypeString},
		&schema.Column{Name: "reason", Type: field.TypeString},
		&schema.Column{Name: "mastered", Type: field.TypeBool, Default: false},
	)
	ModeEventsTable = &schema.Table{
		Name:       "mode_events",
		Columns:    ModeEventsColumns,
		PrimaryKey: []*schema.Column{ModeEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "modeevent_session_id", Columns: []*schema.Column{ModeEventsColumns[4]}},
		},
	}

	GlobalSequenceColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt},
		{Name: "next_val", Type: field.TypeInt64, Default: 1},
	}
	GlobalSequenceTable = &schema.Table{
		Name:       "global_sequence",
		Columns:    GlobalSequenceColumns,
		PrimaryKey: []*schema.Column{GlobalSequenceColumns[0]},
	}

	// Tables holds every table in the schema.
	Tables = []*schema.Table{
		SchedulesTable,
		DecksTable,
		DeckItemsTable,
		RevisionEventsTable,
		SessionEventsTable,
		AnswerEventsTable,
		ModeEventsTable,
		GlobalSequenceTable,
	}
)

func init() {
	DeckItemsTable.ForeignKeys[0].RefTable = DecksTable
}

// migrate creates or updates all tables.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("new migrate: %w", err)
	}
	return m.Create(ctx, Tables...)
}
