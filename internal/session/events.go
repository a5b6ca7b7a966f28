package session

import (
	"context"
	"time"

	"github.com/abhisek/interleave/internal/mastery"
)

// EventKind names something that happened during a session.
type EventKind string

const (
	EventAnswerRecorded   EventKind = "answer_recorded"
	EventModeChanged      EventKind = "mode_changed"
	EventItemMastered     EventKind = "item_mastered"
	EventSessionCompleted EventKind = "session_completed"
)

// Event is delivered to a Listener. Fields not relevant to Kind are zero.
type Event struct {
	Kind      EventKind
	SessionID string
	UserID    string
	DeckID    string
	ItemID    string
	At        time.Time

	// AnswerRecorded
	Mode     mastery.PresentationMode
	Given    string
	Expected string
	Correct  bool

	// ModeChanged, ItemMastered
	Transition *mastery.ModeTransition

	// SessionCompleted
	Summary *Summary
}

// Listener receives session events in the order they occur.
// Implementations must not call back into the Session.
type Listener interface {
	HandleEvent(ctx context.Context, ev Event)
}

// ListenerFunc adapts a function to a Listener.
type ListenerFunc func(ctx context.Context, ev Event)

func (f ListenerFunc) HandleEvent(ctx context.Context, ev Event) { f(ctx, ev) }

// Listeners fans events out to every listener in order.
type Listeners []Listener

func (ls Listeners) HandleEvent(ctx context.Context, ev Event) {
	for _, l := range ls {
		if l != nil {
			l.HandleEvent(ctx, ev)
		}
	}
}
