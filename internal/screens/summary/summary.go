// Package summary shows the results of a finished study session.
package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/interleave/internal/mastery"
	"github.com/abhisek/interleave/internal/router"
	"github.com/abhisek/interleave/internal/screen"
	"github.com/abhisek/interleave/internal/session"
	"github.com/abhisek/interleave/internal/ui/components"
	"github.com/abhisek/interleave/internal/ui/layout"
	"github.com/abhisek/interleave/internal/ui/theme"
)

// SummaryScreen displays a session summary.
type SummaryScreen struct {
	summary *session.Summary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen.
func New(summary *session.Summary) *SummaryScreen {
	return &SummaryScreen{summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Done"},
		{Key: "Q", Description: "Quit"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			// Back to the deck list, or out of the app when studying a
			// single deck.
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "q":
			return s, tea.Quit
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	center := func(style lipgloss.Style, text string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(text))
	}

	var b strings.Builder

	heading := "Session complete!"
	if !sum.Completed {
		heading = "Session ended early"
	}
	b.WriteString(center(theme.Title, heading))
	b.WriteString("\n\n")

	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim),
		fmt.Sprintf("Duration: %s", FormatDuration(sum.Duration.Seconds()))))
	b.WriteString("\n\n")

	stats := fmt.Sprintf("Answers: %d        Correct: %d        Accuracy: %.0f%%",
		sum.TotalAnswers, sum.TotalCorrect, sum.Accuracy*100)
	b.WriteString(center(theme.Body, stats))
	b.WriteString("\n\n")

	bar := components.NewProgressBar("Mastered", sum.Mastered, len(sum.Items), min(width-8, 60))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(width-8, 60)))
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim), "Items"))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	for _, it := range sum.Items {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderItem(it)))
		b.WriteString("\n")
	}

	return b.String()
}

func renderItem(it session.ItemResult) string {
	prompt := it.Prompt
	if len(prompt) > 28 {
		prompt = prompt[:25] + "..."
	}

	var badge string
	switch {
	case it.Mastered:
		badge = theme.MasteredBadge.Render("mastered")
	case it.Mode == mastery.ModeRecall:
		badge = theme.RecallBadge.Render("recall")
	default:
		badge = theme.RecognitionBadge.Render("recognition")
	}

	line := fmt.Sprintf("%-28s  choice %d/%d  recall %d/%d  ",
		prompt,
		it.Recognition.Correct, it.Recognition.Attempts,
		it.Recall.Correct, it.Recall.Attempts)
	return theme.Body.Render(line) + badge
}

// FormatDuration renders seconds as m:ss.
func FormatDuration(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
