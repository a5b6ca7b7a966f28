// Package home lists the learner's decks and starts a study session for
// the chosen one.
package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/interleave/internal/router"
	"github.com/abhisek/interleave/internal/screen"
	"github.com/abhisek/interleave/internal/screens/study"
	"github.com/abhisek/interleave/internal/session"
	"github.com/abhisek/interleave/internal/ui/components"
	"github.com/abhisek/interleave/internal/ui/layout"
	"github.com/abhisek/interleave/internal/ui/theme"
)

// DeckEntry is a deck offered for study.
type DeckEntry struct {
	ID    string
	Title string
	Items int
	Due   int // scheduled items of the deck due today
}

// StartFunc creates a session for the chosen deck.
type StartFunc func(deckID string) (*session.Session, error)

// HomeScreen is the deck picker.
type HomeScreen struct {
	ctx      context.Context
	menu     components.Menu
	decks    []DeckEntry
	totalDue int
	start    StartFunc
	errMsg   string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a HomeScreen over decks. start is called when one is chosen.
func New(ctx context.Context, decks []DeckEntry, start StartFunc) *HomeScreen {
	if ctx == nil {
		ctx = context.Background()
	}
	h := &HomeScreen{ctx: ctx, decks: decks, start: start}

	items := make([]components.MenuItem, 0, len(decks)+1)
	for _, d := range decks {
		label := d.Title
		if label == "" {
			label = d.ID
		}
		detail := fmt.Sprintf("%d items", d.Items)
		if d.Due > 0 {
			detail += fmt.Sprintf(", %d due today", d.Due)
		}
		h.totalDue += d.Due

		id := d.ID
		items = append(items, components.MenuItem{
			Label:  label,
			Detail: detail,
			Action: func() tea.Cmd { return h.open(id) },
		})
	}
	items = append(items, components.MenuItem{
		Label:  "Quit",
		Action: func() tea.Cmd { return tea.Quit },
	})
	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) open(deckID string) tea.Cmd {
	sess, err := h.start(deckID)
	if err != nil {
		h.errMsg = err.Error()
		return nil
	}
	h.errMsg = ""
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: study.New(h.ctx, sess)}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Decks"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Study"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && kmsg.String() == "q" {
		return h, tea.Quit
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Title.Render("Choose a deck")))
	b.WriteString("\n")

	sub := fmt.Sprintf("%d decks", len(h.decks))
	if h.totalDue > 0 {
		sub += fmt.Sprintf(", %d items due for revision", h.totalDue)
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Subtitle.Render(sub)))
	b.WriteString("\n\n")

	if len(h.decks) == 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Hint.Render("No decks yet. Import one with: interleave deck import <file>")))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Card.Render(h.menu.View())))

	if h.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Incorrect.Render(h.errMsg)))
	}
	return b.String()
}
