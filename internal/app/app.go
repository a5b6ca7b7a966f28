// Package app is the root Bubble Tea model hosting the screen stack.
package app

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/interleave/internal/router"
	"github.com/abhisek/interleave/internal/screen"
	"github.com/abhisek/interleave/internal/screens/home"
	"github.com/abhisek/interleave/internal/screens/study"
	"github.com/abhisek/interleave/internal/session"
	"github.com/abhisek/interleave/internal/ui/layout"
)

// Options holds the dependencies for a study run. With a Session the app
// opens straight into it; otherwise it starts on the deck list.
type Options struct {
	Context context.Context
	Session *session.Session
	UserID  string

	Decks []home.DeckEntry
	Start home.StartFunc
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	status string
	width  int
	height int
}

func newAppModel(opts Options) AppModel {
	var (
		root   screen.Screen
		status string
	)
	if opts.Session != nil {
		root = study.New(opts.Context, opts.Session)
		status = opts.Session.Deck().ID
	} else {
		root = home.New(opts.Context, opts.Decks, opts.Start)
	}
	if opts.UserID != "" {
		status = strings.TrimSpace(fmt.Sprintf("%s  @%s", status, opts.UserID))
	}
	return AppModel{
		router: router.New(root),
		status: status + "  ",
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case router.PopScreenMsg:
		if m.router.Depth() == 1 {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	header := layout.RenderHeader(active.Title(), m.status, m.width)
	footer := layout.RenderFooter(footerHints(active), m.width)

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

func footerHints(active screen.Screen) []layout.KeyHint {
	var hints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		hints = p.KeyHints()
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

// Run starts the Bubble Tea program and blocks until the learner quits.
// Sessions are left for the caller to finish.
func Run(opts Options) error {
	if opts.Session == nil && opts.Start == nil {
		return fmt.Errorf("app: no session or deck list")
	}
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run terminal UI: %w", err)
	}
	return nil
}
