package mastery

import "fmt"

// PresentationMode is how a study item is put to the learner.
type PresentationMode string

const (
	// ModeRecognition presents the item as multiple choice.
	ModeRecognition PresentationMode = "recognition"
	// ModeRecall asks for a free-text answer.
	ModeRecall PresentationMode = "recall"
)

// ParseMode converts a stored or user-supplied mode name.
func ParseMode(s string) (PresentationMode, error) {
	switch PresentationMode(s) {
	case ModeRecognition, ModeRecall:
		return PresentationMode(s), nil
	}
	return "", fmt.Errorf("mastery: unknown presentation mode %q", s)
}

// ModeTransition records a presentation change for display and event logging.
type ModeTransition struct {
	ItemID  string
	From    PresentationMode
	To      PresentationMode
	Trigger string // "recognition-threshold", "recall-mastered"
	// Mastered is set when the answer completed the item for this session.
	Mastered bool
}
