package study

import (
	"context"
	"math/rand/v2"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/interleave/internal/deck"
	"github.com/abhisek/interleave/internal/mastery"
	"github.com/abhisek/interleave/internal/router"
	"github.com/abhisek/interleave/internal/screens/summary"
	"github.com/abhisek/interleave/internal/session"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

var capitals = []deck.Item{
	{ID: "fr", Prompt: "Capital of France?", Answer: "Paris"},
	{ID: "de", Prompt: "Capital of Germany?", Answer: "Berlin"},
	{ID: "es", Prompt: "Capital of Spain?", Answer: "Madrid"},
	{ID: "it", Prompt: "Capital of Italy?", Answer: "Rome"},
	{ID: "pt", Prompt: "Capital of Portugal?", Answer: "Lisbon"},
}

func newTestScreen(t *testing.T, items []deck.Item, threshold int) (*StudyScreen, *session.Session) {
	t.Helper()
	d := &deck.Deck{ID: "capitals", Items: items}
	sess, err := session.New(d, session.Options{
		MasteryThreshold: threshold,
		Rand:             rand.New(rand.NewPCG(1, 2)),
	})
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	return New(context.Background(), sess), sess
}

// choiceKey returns the number key selecting answer among the choices.
func choiceKey(t *testing.T, q *session.Question, answer string) tea.KeyPressMsg {
	t.Helper()
	for i, c := range q.Choices {
		if c == answer {
			return keyPress(rune('1' + i))
		}
	}
	t.Fatalf("answer %q not among choices %v", answer, q.Choices)
	return tea.KeyPressMsg{}
}

func expectSummary(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command replacing the screen")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected router.ReplaceScreenMsg, got %T", cmd())
	}
	if _, ok := msg.Screen.(*summary.SummaryScreen); !ok {
		t.Errorf("expected summary screen, got %T", msg.Screen)
	}
}

func TestStudyScreen_Title(t *testing.T) {
	s, _ := newTestScreen(t, capitals, 0)
	if s.Title() != "Study" {
		t.Errorf("Title = %q, want %q", s.Title(), "Study")
	}
}

func TestStudyScreen_InitialQuestionIsMultipleChoice(t *testing.T) {
	s, _ := newTestScreen(t, capitals, 0)

	if s.question == nil || !s.question.MultipleChoice() {
		t.Fatal("expected a multiple choice question")
	}
	if len(s.question.Choices) != session.DefaultChoiceCount {
		t.Errorf("choices = %d, want %d", len(s.question.Choices), session.DefaultChoiceCount)
	}

	view := s.View(100, 30)
	for _, want := range []string{"Capital of France?", "Recognition", "1) "} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if got := len(s.KeyHints()); got != 4 {
		t.Errorf("KeyHints length = %d, want 4", got)
	}
}

func TestStudyScreen_CorrectChoiceShowsFeedback(t *testing.T) {
	s, _ := newTestScreen(t, capitals, 0)

	s.Update(choiceKey(t, s.question, "Paris"))

	if s.phase != phaseFeedback {
		t.Fatalf("phase = %d, want feedback", s.phase)
	}
	if s.result == nil || !s.result.Correct {
		t.Fatal("expected a correct result")
	}
	if !strings.Contains(s.View(100, 30), "Correct!") {
		t.Error("expected Correct! in feedback view")
	}
	if got := len(s.KeyHints()); got != 1 {
		t.Errorf("feedback KeyHints length = %d, want 1", got)
	}

	// Any key moves on to the next item in the window.
	s.Update(keyPress('x'))
	if s.phase != phaseQuestion {
		t.Fatalf("phase = %d, want question", s.phase)
	}
	if s.question.ItemID != "de" {
		t.Errorf("next item = %q, want de", s.question.ItemID)
	}
}

func TestStudyScreen_WrongChoiceShowsAnswer(t *testing.T) {
	s, _ := newTestScreen(t, capitals, 0)

	var wrong string
	for _, c := range s.question.Choices {
		if c != "Paris" {
			wrong = c
			break
		}
	}
	s.Update(choiceKey(t, s.question, wrong))

	if s.result == nil || s.result.Correct {
		t.Fatal("expected an incorrect result")
	}
	view := s.View(100, 30)
	if !strings.Contains(view, "Not quite.") || !strings.Contains(view, "Answer: Paris") {
		t.Errorf("expected correction in view:\n%s", view)
	}
}

func TestStudyScreen_ArrowSelection(t *testing.T) {
	s, _ := newTestScreen(t, capitals, 0)

	s.Update(specialKey(tea.KeyDown))
	if s.mc.Selected != 1 {
		t.Fatalf("Selected = %d, want 1", s.mc.Selected)
	}
	s.Update(specialKey(tea.KeyEnter))
	if s.phase != phaseFeedback {
		t.Fatal("expected Enter to submit the highlighted choice")
	}
	if s.result.Given != s.question.Choices[1] {
		t.Errorf("Given = %q, want %q", s.result.Given, s.question.Choices[1])
	}
}

func TestStudyScreen_QuitConfirm(t *testing.T) {
	s, sess := newTestScreen(t, capitals, 0)

	s.Update(specialKey(tea.KeyEscape))
	if s.phase != phaseQuitConfirm {
		t.Fatal("expected quit confirmation after Esc")
	}
	if !strings.Contains(s.View(100, 30), "End this session?") {
		t.Error("expected quit prompt in view")
	}

	s.Update(keyPress('n'))
	if s.phase != phaseQuestion {
		t.Fatal("expected N to resume the session")
	}
	if sess.Done() {
		t.Fatal("session must still be running")
	}

	s.Update(specialKey(tea.KeyEscape))
	_, cmd := s.Update(keyPress('y'))
	expectSummary(t, cmd)
	if !sess.Done() {
		t.Error("expected Y to finish the session")
	}
}

func TestStudyScreen_FreeTextToCompletion(t *testing.T) {
	// A single item cannot build distractors, so recognition takes free text.
	s, sess := newTestScreen(t, capitals[:1], 1)
	if s.question.MultipleChoice() {
		t.Fatal("expected free text on a one-item deck")
	}

	// Empty answers are ignored.
	s.Update(specialKey(tea.KeyEnter))
	if s.phase != phaseQuestion {
		t.Fatal("empty answer must not be submitted")
	}

	answer := func() {
		t.Helper()
		s.input.Model.SetValue("paris")
		s.Update(specialKey(tea.KeyEnter))
		if s.phase != phaseFeedback || !s.result.Correct {
			t.Fatalf("expected correct feedback, phase %d", s.phase)
		}
	}

	answer()
	tr := s.result.Transition
	if tr == nil || tr.To != mastery.ModeRecall {
		t.Fatalf("expected transition to recall, got %+v", tr)
	}
	if !strings.Contains(s.View(100, 30), "Moving on to recall") {
		t.Error("expected mode change notice")
	}

	s.Update(keyPress(' '))
	if s.question.Mode != mastery.ModeRecall {
		t.Fatalf("mode = %s, want recall", s.question.Mode)
	}
	if s.input.Value() != "" {
		t.Error("expected input cleared for the next question")
	}

	answer()
	s.Update(keyPress(' '))
	answer()
	if !s.result.Completed {
		t.Fatal("expected the session to complete")
	}
	if !strings.Contains(s.View(100, 30), "Mastered!") {
		t.Error("expected mastery notice")
	}

	_, cmd := s.Update(keyPress(' '))
	expectSummary(t, cmd)
	if !sess.Summary().Completed {
		t.Error("summary should report completion")
	}
}
