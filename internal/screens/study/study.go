// Package study is the interactive screen for one study session.
package study

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/interleave/internal/router"
	"github.com/abhisek/interleave/internal/screen"
	"github.com/abhisek/interleave/internal/screens/summary"
	"github.com/abhisek/interleave/internal/session"
	"github.com/abhisek/interleave/internal/ui/components"
	"github.com/abhisek/interleave/internal/ui/layout"
)

type phase int

const (
	phaseQuestion phase = iota
	phaseFeedback
	phaseQuitConfirm
)

// StudyScreen asks the session's questions one at a time, showing
// multiple choice for recognition and a text input for recall.
type StudyScreen struct {
	ctx  context.Context
	sess *session.Session

	phase    phase
	question *session.Question
	result   *session.Result
	mc       components.MultiChoice
	input    components.TextInput
	errMsg   string
}

var _ screen.Screen = (*StudyScreen)(nil)
var _ screen.KeyHintProvider = (*StudyScreen)(nil)

// New creates a StudyScreen driving sess.
func New(ctx context.Context, sess *session.Session) *StudyScreen {
	if ctx == nil {
		ctx = context.Background()
	}
	s := &StudyScreen{
		ctx:   ctx,
		sess:  sess,
		input: components.NewTextInput("Type your answer...", 120),
	}
	s.loadQuestion()
	return s
}

func (s *StudyScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *StudyScreen) Title() string {
	return "Study"
}

func (s *StudyScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseQuitConfirm:
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	case phaseFeedback:
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
		}
	}
	if s.question != nil && s.question.MultipleChoice() {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "1-9", Description: "Pick"},
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *StudyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		if s.phase == phaseQuestion && s.question != nil && !s.question.MultipleChoice() {
			var cmd tea.Cmd
			s.input, cmd = s.input.Update(msg)
			return s, cmd
		}
		return s, nil
	}

	switch s.phase {
	case phaseQuitConfirm:
		return s.handleQuitConfirm(kmsg)
	case phaseFeedback:
		return s.advance()
	}
	return s.handleQuestionKey(kmsg)
}

func (s *StudyScreen) handleQuestionKey(kmsg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if kmsg.String() == "esc" {
		s.phase = phaseQuitConfirm
		return s, nil
	}
	if s.question == nil {
		return s, nil
	}

	if s.question.MultipleChoice() {
		var cmd tea.Cmd
		s.mc, cmd = s.mc.Update(kmsg)
		if s.mc.Submitted {
			return s, s.submit(s.mc.Chosen())
		}
		return s, cmd
	}

	if kmsg.String() == "enter" {
		if strings.TrimSpace(s.input.Value()) == "" {
			return s, nil
		}
		return s, s.submit(s.input.Value())
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(kmsg)
	return s, cmd
}

func (s *StudyScreen) handleQuitConfirm(kmsg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch strings.ToLower(kmsg.String()) {
	case "y":
		return s, s.showSummary(s.sess.Finish(s.ctx))
	case "n", "esc":
		s.phase = phaseQuestion
	}
	return s, nil
}

// submit judges given and switches to the feedback phase.
func (s *StudyScreen) submit(given string) tea.Cmd {
	res, err := s.sess.Submit(s.ctx, given)
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.result = res
	s.errMsg = ""
	if s.question.MultipleChoice() {
		s.mc.Reveal(res.Expected)
	} else {
		s.input.Submit(res.Correct)
	}
	s.phase = phaseFeedback
	return nil
}

// advance leaves the feedback phase for the next question, or the summary
// when the session is over.
func (s *StudyScreen) advance() (screen.Screen, tea.Cmd) {
	if s.sess.Done() {
		return s, s.showSummary(s.sess.Summary())
	}
	s.loadQuestion()
	s.phase = phaseQuestion
	return s, s.input.Clear()
}

func (s *StudyScreen) loadQuestion() {
	q, err := s.sess.Current()
	if err != nil {
		s.errMsg = err.Error()
		s.question = nil
		return
	}
	s.question = q
	s.result = nil
	if q.MultipleChoice() {
		s.mc = components.NewMultiChoice(q.Choices)
	}
}

func (s *StudyScreen) showSummary(sum *session.Summary) tea.Cmd {
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(sum)}
	}
}
