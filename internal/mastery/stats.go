package mastery

// ModeStats counts answers given while an item was in one presentation mode.
type ModeStats struct {
	Correct  int `json:"correct"`
	Attempts int `json:"attempts"`
}

// Record adds one answer.
func (s *ModeStats) Record(correct bool) {
	s.Attempts++
	if correct {
		s.Correct++
	}
}

// Accuracy returns the correct ratio, 0 when nothing was attempted.
func (s ModeStats) Accuracy() float64 {
	if s.Attempts == 0 {
		return 0.0
	}
	return float64(s.Correct) / float64(s.Attempts)
}

// ItemPerformance is the per-session state of one study item.
type ItemPerformance struct {
	ItemID      string           `json:"item_id"`
	Mode        PresentationMode `json:"presentation_mode"`
	Recognition ModeStats        `json:"recognition_stats"`
	Recall      ModeStats        `json:"recall_stats"`
	Mastered    bool             `json:"mastered"`
}

// TotalAttempts sums attempts across both modes.
func (p ItemPerformance) TotalAttempts() int {
	return p.Recognition.Attempts + p.Recall.Attempts
}

// TotalCorrect sums correct answers across both modes.
func (p ItemPerformance) TotalCorrect() int {
	return p.Recognition.Correct + p.Recall.Correct
}
