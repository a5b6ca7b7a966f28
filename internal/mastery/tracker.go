package mastery

import "fmt"

const (
	// DefaultMasteryThreshold is the number of correct recognition answers
	// that promotes an item to recall.
	DefaultMasteryThreshold = 2

	// RecallCorrectToMaster is the number of correct recall answers after
	// which an item counts as mastered for the rest of the session.
	RecallCorrectToMaster = 2
)

// Config tunes the presentation-mode state machine.
type Config struct {
	MasteryThreshold      int
	RecallCorrectToMaster int
}

// DefaultConfig returns the standard thresholds.
func DefaultConfig() Config {
	return Config{
		MasteryThreshold:      DefaultMasteryThreshold,
		RecallCorrectToMaster: RecallCorrectToMaster,
	}
}

// Validate checks that both thresholds are positive.
func (c Config) Validate() error {
	if c.MasteryThreshold < 1 {
		return fmt.Errorf("%w: mastery threshold %d must be >= 1", ErrInvalidConfig, c.MasteryThreshold)
	}
	if c.RecallCorrectToMaster < 1 {
		return fmt.Errorf("%w: recall mastery count %d must be >= 1", ErrInvalidConfig, c.RecallCorrectToMaster)
	}
	return nil
}

// Tracker holds the performance state of every item in one study session.
// It is not persisted; a new session starts from a fresh Tracker.
type Tracker struct {
	cfg   Config
	order []string
	items map[string]*ItemPerformance
}

// NewTracker creates a tracker with every item in recognition mode and
// zeroed stats. Zero-valued config fields take their defaults.
func NewTracker(cfg Config, itemIDs []string) (*Tracker, error) {
	if cfg.MasteryThreshold == 0 {
		cfg.MasteryThreshold = DefaultMasteryThreshold
	}
	if cfg.RecallCorrectToMaster == 0 {
		cfg.RecallCorrectToMaster = RecallCorrectToMaster
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	t := &Tracker{
		cfg:   cfg,
		items: make(map[string]*ItemPerformance, len(itemIDs)),
	}
	for _, id := range itemIDs {
		if _, dup := t.items[id]; dup {
			return nil, fmt.Errorf("mastery: duplicate item %q", id)
		}
		t.order = append(t.order, id)
		t.items[id] = &ItemPerformance{ItemID: id, Mode: ModeRecognition}
	}
	return t, nil
}

// Config returns the thresholds in effect.
func (t *Tracker) Config() Config {
	return t.cfg
}

// Reset returns every item to recognition mode with zeroed stats.
func (t *Tracker) Reset() {
	for _, id := range t.order {
		t.items[id] = &ItemPerformance{ItemID: id, Mode: ModeRecognition}
	}
}

// Performance returns a copy of the item's current state.
func (t *Tracker) Performance(itemID string) (ItemPerformance, error) {
	p, ok := t.items[itemID]
	if !ok {
		return ItemPerformance{}, fmt.Errorf("%w: %q", ErrUnknownItem, itemID)
	}
	return *p, nil
}

// Mode returns the presentation mode to use for the item's next question.
func (t *Tracker) Mode(itemID string) (PresentationMode, error) {
	p, err := t.Performance(itemID)
	if err != nil {
		return "", err
	}
	return p.Mode, nil
}

// RecordAnswer updates the stats for the item's current mode and
// recomputes the mode. Returns a ModeTransition when the mode changed or
// the item became mastered, nil otherwise. Mastered items reject further
// answers with ErrItemMastered.
func (t *Tracker) RecordAnswer(itemID string, correct bool) (*ModeTransition, error) {
	p, ok := t.items[itemID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownItem, itemID)
	}
	if p.Mastered {
		return nil, fmt.Errorf("%w: %q", ErrItemMastered, itemID)
	}

	from := p.Mode
	switch p.Mode {
	case ModeRecall:
		p.Recall.Record(correct)
	default:
		p.Recognition.Record(correct)
	}

	if p.Recognition.Correct >= t.cfg.MasteryThreshold {
		p.Mode = ModeRecall
	} else {
		p.Mode = ModeRecognition
	}

	if p.Recall.Correct >= t.cfg.RecallCorrectToMaster {
		p.Mastered = true
		return &ModeTransition{
			ItemID:   itemID,
			From:     from,
			To:       p.Mode,
			Trigger:  "recall-mastered",
			Mastered: true,
		}, nil
	}

	if p.Mode != from {
		return &ModeTransition{
			ItemID:  itemID,
			From:    from,
			To:      p.Mode,
			Trigger: "recognition-threshold",
		}, nil
	}
	return nil, nil
}

// IsMastered reports whether the item reached mastery this session.
func (t *Tracker) IsMastered(itemID string) bool {
	p, ok := t.items[itemID]
	return ok && p.Mastered
}

// MasteredSet returns the indices (in tracker order) of mastered items.
func (t *Tracker) MasteredSet() map[int]bool {
	result := make(map[int]bool)
	for i, id := range t.order {
		if t.items[id].Mastered {
			result[i] = true
		}
	}
	return result
}

// MasteredCount returns how many items are mastered.
func (t *Tracker) MasteredCount() int {
	return len(t.MasteredSet())
}

// Len returns the number of tracked items.
func (t *Tracker) Len() int {
	return len(t.order)
}

// All returns copies of every item's state in tracker order.
func (t *Tracker) All() []ItemPerformance {
	out := make([]ItemPerformance, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, *t.items[id])
	}
	return out
}
