package store

import (
	"context"
	"log/slog"

	"github.com/abhisek/interleave/internal/session"
)

// SessionRecorder persists session events. Write failures are logged and
// never interrupt the study flow.
type SessionRecorder struct {
	events EventRepo
	log    *slog.Logger
}

// NewSessionRecorder returns a session.Listener writing to events.
func NewSessionRecorder(events EventRepo, log *slog.Logger) *SessionRecorder {
	if log == nil {
		log = slog.Default()
	}
	return &SessionRecorder{events: events, log: log}
}

// Start records the session start event.
func (r *SessionRecorder) Start(ctx context.Context, s *session.Session, userID string) {
	err := r.events.AppendSessionEvent(ctx, SessionEventData{
		SessionID: s.ID(),
		UserID:    userID,
		DeckID:    s.Deck().ID,
		Action:    "start",
	})
	if err != nil {
		r.log.Warn("failed to record session start", "session", s.ID(), "err", err)
	}
}

func (r *SessionRecorder) HandleEvent(ctx context.Context, ev session.Event) {
	var err error
	switch ev.Kind {
	case session.EventAnswerRecorded:
		err = r.events.AppendAnswerEvent(ctx, AnswerEventData{
			SessionID: ev.SessionID,
			UserID:    ev.UserID,
			DeckID:    ev.DeckID,
			ItemID:    ev.ItemID,
			Mode:      string(ev.Mode),
			Given:     ev.Given,
			Expected:  ev.Expected,
			Correct:   ev.Correct,
		})
	case session.EventModeChanged, session.EventItemMastered:
		if ev.Transition == nil {
			return
		}
		err = r.events.AppendModeEvent(ctx, ModeEventData{
			SessionID: ev.SessionID,
			UserID:    ev.UserID,
			ItemID:    ev.ItemID,
			FromMode:  string(ev.Transition.From),
			ToMode:    string(ev.Transition.To),
			Reason:    ev.Transition.Trigger,
			Mastered:  ev.Kind == session.EventItemMastered,
		})
	case session.EventSessionCompleted:
		if ev.Summary == nil {
			return
		}
		err = r.events.AppendSessionEvent(ctx, SessionEventData{
			SessionID:      ev.SessionID,
			UserID:         ev.UserID,
			DeckID:         ev.DeckID,
			Action:         "end",
			AnswersGiven:   ev.Summary.TotalAnswers,
			CorrectAnswers: ev.Summary.TotalCorrect,
			ItemsMastered:  ev.Summary.Mastered,
			Completed:      ev.Summary.Completed,
			DurationSecs:   int(ev.Summary.Duration.Seconds()),
		})
	}
	if err != nil {
		r.log.Warn("failed to record session event", "kind", ev.Kind, "session", ev.SessionID, "err", err)
	}
}
