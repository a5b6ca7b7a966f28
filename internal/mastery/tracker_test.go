package mastery

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTracker(t *testing.T, ids ...string) *Tracker {
	t.Helper()
	tr, err := NewTracker(DefaultConfig(), ids)
	require.NoError(t, err)
	return tr
}

func TestNewTracker_StartsInRecognition(t *testing.T) {
	tr := newTestTracker(t, "a", "b", "c")

	assert.Equal(t, 3, tr.Len())
	for _, p := range tr.All() {
		assert.Equal(t, ModeRecognition, p.Mode)
		assert.Zero(t, p.TotalAttempts())
		assert.False(t, p.Mastered)
	}
}

func TestNewTracker_ZeroConfigUsesDefaults(t *testing.T) {
	tr, err := NewTracker(Config{}, []string{"a"})
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), tr.Config())
}

func TestNewTracker_Errors(t *testing.T) {
	_, err := NewTracker(Config{MasteryThreshold: -1}, []string{"a"})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewTracker(DefaultConfig(), []string{"a", "a"})
	assert.Error(t, err)
}

func TestRecordAnswer_PromotesAtThreshold(t *testing.T) {
	tr := newTestTracker(t, "capital-fr")

	tn, err := tr.RecordAnswer("capital-fr", true)
	require.NoError(t, err)
	assert.Nil(t, tn, "one correct answer stays in recognition")

	tn, err = tr.RecordAnswer("capital-fr", true)
	require.NoError(t, err)
	require.NotNil(t, tn)
	assert.Equal(t, ModeRecognition, tn.From)
	assert.Equal(t, ModeRecall, tn.To)
	assert.Equal(t, "recognition-threshold", tn.Trigger)
	assert.False(t, tn.Mastered)

	p, err := tr.Performance("capital-fr")
	require.NoError(t, err)
	assert.Equal(t, ModeStats{Correct: 2, Attempts: 2}, p.Recognition)
	assert.Equal(t, ModeRecall, p.Mode)
}

func TestRecordAnswer_WrongAnswersCountAttemptsOnly(t *testing.T) {
	tr := newTestTracker(t, "a")

	for i := 0; i < 3; i++ {
		tn, err := tr.RecordAnswer("a", false)
		require.NoError(t, err)
		assert.Nil(t, tn)
	}

	p, _ := tr.Performance("a")
	assert.Equal(t, ModeStats{Correct: 0, Attempts: 3}, p.Recognition)
	assert.Equal(t, ModeRecognition, p.Mode)
	assert.Zero(t, p.Recognition.Accuracy())
}

func TestRecordAnswer_RecallStatsUpdatedInRecall(t *testing.T) {
	tr := newTestTracker(t, "a")
	_, _ = tr.RecordAnswer("a", true)
	_, _ = tr.RecordAnswer("a", true)

	tn, err := tr.RecordAnswer("a", false)
	require.NoError(t, err)
	assert.Nil(t, tn, "recognition count never drops, so mode stays recall")

	p, _ := tr.Performance("a")
	assert.Equal(t, ModeStats{Correct: 2, Attempts: 2}, p.Recognition)
	assert.Equal(t, ModeStats{Correct: 0, Attempts: 1}, p.Recall)
	assert.Equal(t, ModeRecall, p.Mode)
}

func TestRecordAnswer_MasteryRatchet(t *testing.T) {
	tr := newTestTracker(t, "a", "b")
	for i := 0; i < 3; i++ {
		_, err := tr.RecordAnswer("a", true)
		require.NoError(t, err)
	}
	assert.False(t, tr.IsMastered("a"))

	tn, err := tr.RecordAnswer("a", true)
	require.NoError(t, err)
	require.NotNil(t, tn)
	assert.True(t, tn.Mastered)
	assert.Equal(t, "recall-mastered", tn.Trigger)
	assert.True(t, tr.IsMastered("a"))

	_, err = tr.RecordAnswer("a", false)
	assert.True(t, errors.Is(err, ErrItemMastered))
	assert.True(t, tr.IsMastered("a"), "mastery is never revoked")

	assert.Equal(t, map[int]bool{0: true}, tr.MasteredSet())
	assert.Equal(t, 1, tr.MasteredCount())
}

func TestRecordAnswer_CustomThreshold(t *testing.T) {
	tr, err := NewTracker(Config{MasteryThreshold: 3}, []string{"a"})
	require.NoError(t, err)

	_, _ = tr.RecordAnswer("a", true)
	_, _ = tr.RecordAnswer("a", true)
	mode, err := tr.Mode("a")
	require.NoError(t, err)
	assert.Equal(t, ModeRecognition, mode)

	tn, err := tr.RecordAnswer("a", true)
	require.NoError(t, err)
	require.NotNil(t, tn)
	assert.Equal(t, ModeRecall, tn.To)
}

func TestRecordAnswer_UnknownItem(t *testing.T) {
	tr := newTestTracker(t, "a")

	_, err := tr.RecordAnswer("zzz", true)
	assert.ErrorIs(t, err, ErrUnknownItem)

	_, err = tr.Performance("zzz")
	assert.ErrorIs(t, err, ErrUnknownItem)
}

func TestTracker_AttemptsNeverBelowCorrect(t *testing.T) {
	tr := newTestTracker(t, "a")
	answers := []bool{true, false, true, false, false, true}
	for _, c := range answers {
		if _, err := tr.RecordAnswer("a", c); err != nil {
			require.ErrorIs(t, err, ErrItemMastered)
		}
		p, _ := tr.Performance("a")
		assert.GreaterOrEqual(t, p.Recognition.Attempts, p.Recognition.Correct)
		assert.GreaterOrEqual(t, p.Recall.Attempts, p.Recall.Correct)
	}
}

func TestTracker_Reset(t *testing.T) {
	tr := newTestTracker(t, "a")
	for i := 0; i < 4; i++ {
		_, _ = tr.RecordAnswer("a", true)
	}
	require.True(t, tr.IsMastered("a"))

	tr.Reset()
	p, _ := tr.Performance("a")
	assert.Equal(t, ItemPerformance{ItemID: "a", Mode: ModeRecognition}, p)
	assert.Empty(t, tr.MasteredSet())
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    PresentationMode
		wantErr bool
	}{
		{"recognition", ModeRecognition, false},
		{"recall", ModeRecall, false},
		{"essay", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestModeStats_Accuracy(t *testing.T) {
	s := ModeStats{}
	s.Record(true)
	s.Record(false)
	assert.InDelta(t, 0.5, s.Accuracy(), 1e-9)
}
