// Package session runs an interleaved study session over a deck, moving
// each item from multiple choice to free recall as the learner improves.
package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/interleave/internal/answer"
	"github.com/abhisek/interleave/internal/deck"
	"github.com/abhisek/interleave/internal/mastery"
)

// Options configures a Session. Zero values take defaults.
type Options struct {
	ID               string
	UserID           string
	MasteryThreshold int
	Strictness       answer.Strictness
	ChoiceCount      int
	Rand             *rand.Rand
	Listener         Listener
	Now              func() time.Time
}

// Question is what the learner is asked next.
type Question struct {
	ItemID string
	Prompt string
	Mode   mastery.PresentationMode

	// Choices is set for multiple choice. A recognition question on a deck
	// too small to build choices has no Choices and takes free text.
	Choices []string
}

// MultipleChoice reports whether the question offers choices.
func (q *Question) MultipleChoice() bool {
	return len(q.Choices) > 0
}

// Result is the outcome of one submitted answer.
type Result struct {
	ItemID     string
	Given      string
	Expected   string
	Correct    bool
	Transition *mastery.ModeTransition

	// Completed is set when this answer mastered the last item.
	Completed bool
}

// Session is one study run over a deck. It is not safe for concurrent use.
type Session struct {
	id      string
	opts    Options
	deck    *deck.Deck
	tracker *mastery.Tracker

	current  int
	question *Question
	done     bool
	started  time.Time
	ended    time.Time

	totalAnswers int
	totalCorrect int
}

// New starts a session over d.
func New(d *deck.Deck, opts Options) (*Session, error) {
	if d == nil || len(d.Items) == 0 {
		return nil, fmt.Errorf("%w: deck has no items", ErrInvalidArgument)
	}
	if opts.ID == "" {
		opts.ID = uuid.New().String()
	}
	if opts.Strictness == "" {
		opts.Strictness = answer.Strict
	}
	if opts.ChoiceCount == 0 {
		opts.ChoiceCount = DefaultChoiceCount
	}
	if opts.ChoiceCount < 2 {
		return nil, fmt.Errorf("%w: choice count %d", ErrInvalidArgument, opts.ChoiceCount)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	tracker, err := mastery.NewTracker(mastery.Config{MasteryThreshold: opts.MasteryThreshold}, d.ItemIDs())
	if err != nil {
		return nil, err
	}

	return &Session{
		id:      opts.ID,
		opts:    opts,
		deck:    d,
		tracker: tracker,
		started: opts.Now(),
	}, nil
}

// ID returns the session's UUID.
func (s *Session) ID() string { return s.id }

// Deck returns the deck being studied.
func (s *Session) Deck() *deck.Deck { return s.deck }

// Tracker exposes per-item performance for display.
func (s *Session) Tracker() *mastery.Tracker { return s.tracker }

// Done reports whether the session has ended.
func (s *Session) Done() bool { return s.done }

// Current returns the question for the current item in its current mode.
// The same question is returned until an answer is submitted.
func (s *Session) Current() (*Question, error) {
	if s.done {
		return nil, ErrNoItemsRemaining
	}
	if s.question != nil {
		return s.question, nil
	}

	item := s.deck.Items[s.current]
	mode, err := s.tracker.Mode(item.ID)
	if err != nil {
		return nil, err
	}

	q := &Question{ItemID: item.ID, Prompt: item.Question(), Mode: mode}
	if mode == mastery.ModeRecognition {
		pool := make([]string, 0, len(s.deck.Items)-1)
		for i, other := range s.deck.Items {
			if i != s.current {
				pool = append(pool, other.Answer)
			}
		}
		choices, err := GenerateDistractors(item.Answer, pool, s.opts.ChoiceCount, s.opts.Rand)
		switch {
		case err == nil:
			q.Choices = choices
		case !errors.Is(err, ErrInsufficientDistractors):
			return nil, err
		}
	}

	s.question = q
	return q, nil
}

// Submit judges the learner's answer to the current question, records it
// and advances to the next item. When the answer masters the last item
// the session ends and Result.Completed is set.
func (s *Session) Submit(ctx context.Context, given string) (*Result, error) {
	q, err := s.Current()
	if err != nil {
		return nil, err
	}
	item := s.deck.Items[s.current]

	given = s.resolveChoice(q, given)
	strictness := s.opts.Strictness
	if q.MultipleChoice() {
		strictness = answer.Strict
	}
	correct := answer.Judge(item.Answer, given, strictness)

	transition, err := s.tracker.RecordAnswer(item.ID, correct)
	if err != nil {
		return nil, err
	}

	s.totalAnswers++
	if correct {
		s.totalCorrect++
	}

	now := s.opts.Now()
	s.emit(ctx, Event{
		Kind:     EventAnswerRecorded,
		ItemID:   item.ID,
		At:       now,
		Mode:     q.Mode,
		Given:    given,
		Expected: item.Answer,
		Correct:  correct,
	})
	if transition != nil {
		if transition.From != transition.To {
			s.emit(ctx, Event{Kind: EventModeChanged, ItemID: item.ID, At: now, Transition: transition})
		}
		if transition.Mastered {
			s.emit(ctx, Event{Kind: EventItemMastered, ItemID: item.ID, At: now, Transition: transition})
		}
	}

	res := &Result{
		ItemID:     item.ID,
		Given:      given,
		Expected:   item.Answer,
		Correct:    correct,
		Transition: transition,
	}

	s.question = nil
	next, err := SelectNextItem(len(s.deck.Items), s.tracker.MasteredSet(), s.current)
	if errors.Is(err, ErrNoItemsRemaining) {
		s.finish(ctx)
		res.Completed = true
		return res, nil
	}
	if err != nil {
		return nil, err
	}
	s.current = next
	return res, nil
}

// Finish ends the session early. It is a no-op on a finished session.
func (s *Session) Finish(ctx context.Context) *Summary {
	if !s.done {
		s.finish(ctx)
	}
	return s.Summary()
}

func (s *Session) finish(ctx context.Context) {
	s.done = true
	s.ended = s.opts.Now()
	s.emit(ctx, Event{Kind: EventSessionCompleted, At: s.ended, Summary: s.Summary()})
}

// Summary reports per-item results and totals so far.
func (s *Session) Summary() *Summary {
	end := s.ended
	if !s.done {
		end = s.opts.Now()
	}

	sum := &Summary{
		SessionID:    s.id,
		DeckID:       s.deck.ID,
		StartedAt:    s.started,
		Duration:     end.Sub(s.started),
		TotalAnswers: s.totalAnswers,
		TotalCorrect: s.totalCorrect,
		Completed:    s.done && s.tracker.MasteredCount() == s.tracker.Len(),
	}
	if s.totalAnswers > 0 {
		sum.Accuracy = float64(s.totalCorrect) / float64(s.totalAnswers)
	}
	for i, p := range s.tracker.All() {
		if p.Mastered {
			sum.Mastered++
		}
		sum.Items = append(sum.Items, ItemResult{
			ItemID:      p.ItemID,
			Prompt:      s.deck.Items[i].Question(),
			Mode:        p.Mode,
			Recognition: p.Recognition,
			Recall:      p.Recall,
			Mastered:    p.Mastered,
		})
	}
	return sum
}

// resolveChoice accepts either the choice text or its 1-based number.
func (s *Session) resolveChoice(q *Question, given string) string {
	given = strings.TrimSpace(given)
	if !q.MultipleChoice() {
		return given
	}
	for _, c := range q.Choices {
		if strings.EqualFold(strings.TrimSpace(c), given) {
			return c
		}
	}
	if n, err := strconv.Atoi(given); err == nil && n >= 1 && n <= len(q.Choices) {
		return q.Choices[n-1]
	}
	return given
}

func (s *Session) emit(ctx context.Context, ev Event) {
	if s.opts.Listener == nil {
		return
	}
	ev.SessionID = s.id
	ev.UserID = s.opts.UserID
	ev.DeckID = s.deck.ID
	s.opts.Listener.HandleEvent(ctx, ev)
}
