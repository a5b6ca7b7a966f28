package session

import (
	"time"

	"github.com/abhisek/interleave/internal/mastery"
)

// ItemResult is the end-of-session state of one item.
type ItemResult struct {
	ItemID      string
	Prompt      string
	Mode        mastery.PresentationMode
	Recognition mastery.ModeStats
	Recall      mastery.ModeStats
	Mastered    bool
}

// Summary holds the data displayed on the summary screen.
type Summary struct {
	SessionID    string
	DeckID       string
	StartedAt    time.Time
	Duration     time.Duration
	TotalAnswers int
	TotalCorrect int
	Accuracy     float64
	Mastered     int
	Items        []ItemResult

	// Completed is false when the learner quit before mastering every item.
	Completed bool
}
