package session

import "errors"

var (
	// ErrNoItemsRemaining means every item is mastered. It marks a
	// completed session, not a failure.
	ErrNoItemsRemaining = errors.New("session: no items remaining")

	// ErrInsufficientDistractors means the pool cannot supply enough
	// distinct wrong answers for a multiple choice question.
	ErrInsufficientDistractors = errors.New("session: insufficient distractors")

	// ErrInvalidArgument is returned for out-of-range inputs.
	ErrInvalidArgument = errors.New("session: invalid argument")
)
