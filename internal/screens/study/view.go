package study

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/interleave/internal/mastery"
	"github.com/abhisek/interleave/internal/ui/components"
	"github.com/abhisek/interleave/internal/ui/theme"
)

func (s *StudyScreen) View(width, height int) string {
	if s.errMsg != "" && s.question == nil {
		return renderError(width, s.errMsg)
	}
	if s.phase == phaseQuitConfirm {
		return renderQuitConfirm(width)
	}

	var b strings.Builder
	b.WriteString(s.renderInfoLine(width))
	b.WriteString("\n\n")

	if s.question != nil {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Text).
			Bold(true).
			Render(s.question.Prompt))
		b.WriteString("\n\n")

		if s.question.MultipleChoice() {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.mc.View()))
		} else {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, "Answer: "+s.input.View()))
		}
		b.WriteString("\n")
	}

	if s.phase == phaseFeedback && s.result != nil {
		b.WriteString("\n")
		b.WriteString(s.renderFeedback(width))
	}
	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Incorrect.Render(s.errMsg)))
	}
	return b.String()
}

// renderInfoLine shows the mode badge on the left and progress on the right.
func (s *StudyScreen) renderInfoLine(width int) string {
	var badge string
	if s.question != nil {
		if s.question.Mode == mastery.ModeRecall {
			badge = theme.RecallBadge.Render("Recall")
		} else {
			badge = theme.RecognitionBadge.Render("Recognition")
		}
	}
	left := "  " + badge

	sum := s.sess.Summary()
	bar := components.NewProgressBar(
		fmt.Sprintf("%d/%d mastered", sum.Mastered, len(sum.Items)),
		sum.Mastered, len(sum.Items), min(40, width/2))
	right := bar.View()

	line := left
	if pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 2; pad > 0 {
		line += strings.Repeat(" ", pad) + right
	}
	return line + "\n" + lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0)))
}

func (s *StudyScreen) renderFeedback(width int) string {
	res := s.result
	center := func(text string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, text)
	}

	var lines []string
	if res.Correct {
		lines = append(lines, center(theme.Correct.Render("Correct!")))
	} else {
		lines = append(lines, center(theme.Incorrect.Render("Not quite.")))
		lines = append(lines, center(theme.Body.Render("Answer: "+res.Expected)))
	}

	if tr := res.Transition; tr != nil {
		switch {
		case tr.Mastered:
			lines = append(lines, center(theme.MasteredBadge.Render("Mastered!")))
		case tr.From != tr.To:
			lines = append(lines, center(theme.RecallBadge.Render("Moving on to recall")))
		}
	}
	if res.Completed {
		lines = append(lines, "", center(theme.Title.Render("Every item mastered.")))
	}
	lines = append(lines, "", center(theme.Hint.Render("Press any key to continue")))
	return strings.Join(lines, "\n")
}

func renderQuitConfirm(width int) string {
	msg := theme.Card.Render(
		theme.Body.Render("End this session?") + "\n\n" +
			theme.Hint.Render("Progress so far is kept in the summary."))
	return "\n\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, msg)
}

func renderError(width int, msg string) string {
	return "\n\n" + lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render("Something went wrong: "+msg+"\n\nPress Esc to leave.")
}
