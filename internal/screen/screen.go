// Package screen defines the contract between the router and the screens
// it hosts.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/interleave/internal/ui/layout"
)

// Screen is one full-frame view hosted by the router.
type Screen interface {
	// Init returns an initial command when the screen is first shown.
	Init() tea.Cmd

	// Update handles messages and returns the updated screen and command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content, excluding header and footer.
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is implemented by screens that want their own footer
// key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}
