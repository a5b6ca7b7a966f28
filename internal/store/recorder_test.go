package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/interleave/internal/deck"
	"github.com/abhisek/interleave/internal/session"
)

func TestSessionRecorder(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	events := s.EventRepo()
	rec := NewSessionRecorder(events, nil)

	d := &deck.Deck{ID: "one", Items: []deck.Item{{ID: "fr", Answer: "Paris"}}}
	sess, err := session.New(d, session.Options{UserID: "alice", Listener: rec})
	require.NoError(t, err)
	rec.Start(ctx, sess, "alice")

	for !sess.Done() {
		_, err := sess.Submit(ctx, "Paris")
		require.NoError(t, err)
	}

	stats, err := events.AnswerStats(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, AnswerStats{Sessions: 1, Answers: 4, Correct: 4}, stats)

	var modeRows, mastered int
	require.NoError(t, s.DB().QueryRow("SELECT COUNT(*) FROM mode_events WHERE session_id = ?", sess.ID()).Scan(&modeRows))
	require.NoError(t, s.DB().QueryRow("SELECT COUNT(*) FROM mode_events WHERE session_id = ? AND mastered", sess.ID()).Scan(&mastered))
	assert.Equal(t, 2, modeRows, "one mode change and one mastery")
	assert.Equal(t, 1, mastered)

	var starts int
	require.NoError(t, s.DB().QueryRow("SELECT COUNT(*) FROM session_events WHERE session_id = ? AND action = 'start'", sess.ID()).Scan(&starts))
	assert.Equal(t, 1, starts)
}

func TestSessionRecorder_IgnoresIncompleteEvents(t *testing.T) {
	s := openTestStore(t)
	rec := NewSessionRecorder(s.EventRepo(), nil)

	rec.HandleEvent(context.Background(), session.Event{Kind: session.EventModeChanged, SessionID: "x"})
	rec.HandleEvent(context.Background(), session.Event{Kind: session.EventSessionCompleted, SessionID: "x"})

	var n int
	require.NoError(t, s.DB().QueryRow("SELECT COUNT(*) FROM mode_events").Scan(&n))
	assert.Zero(t, n)
}
