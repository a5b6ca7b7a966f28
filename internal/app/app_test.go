package app

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/interleave/internal/deck"
	"github.com/abhisek/interleave/internal/screens/home"
	"github.com/abhisek/interleave/internal/screens/summary"
	"github.com/abhisek/interleave/internal/session"
)

func testModel(t *testing.T) AppModel {
	t.Helper()
	d := &deck.Deck{ID: "capitals", Items: []deck.Item{
		{ID: "fr", Answer: "Paris"},
		{ID: "de", Answer: "Berlin"},
	}}
	sess, err := session.New(d, session.Options{})
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	return newAppModel(Options{Context: context.Background(), Session: sess, UserID: "alice"})
}

func TestAppModel_Status(t *testing.T) {
	m := testModel(t)
	if m.status != "capitals  @alice  " {
		t.Errorf("status = %q", m.status)
	}
}

func TestAppModel_WindowSize(t *testing.T) {
	m := testModel(t)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	am := updated.(AppModel)
	if am.width != 100 || am.height != 30 {
		t.Errorf("size = %dx%d, want 100x30", am.width, am.height)
	}
}

func TestAppModel_CtrlCQuits(t *testing.T) {
	m := testModel(t)
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestAppModel_ReplaceWithSummary(t *testing.T) {
	m := testModel(t)

	// Esc then Y ends the session from the study screen.
	m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'y', Text: "y"})
	if cmd == nil {
		t.Fatal("expected a command after confirming quit")
	}
	m.Update(cmd())

	if _, ok := m.router.Active().(*summary.SummaryScreen); !ok {
		t.Fatalf("active screen = %T, want summary", m.router.Active())
	}
	if m.router.Depth() != 1 {
		t.Errorf("depth = %d, want 1", m.router.Depth())
	}
}

func TestAppModel_SummaryEnterQuitsAtRoot(t *testing.T) {
	m := testModel(t)
	m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'y', Text: "y"})
	m.Update(cmd())

	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected pop command from summary")
	}
	_, cmd = m.Update(cmd())
	if cmd == nil {
		t.Fatal("expected quit after popping the root screen")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestAppModel_DeckListRoot(t *testing.T) {
	m := newAppModel(Options{
		Context: context.Background(),
		Decks:   []home.DeckEntry{{ID: "capitals", Items: 2}},
		Start: func(string) (*session.Session, error) {
			return session.New(&deck.Deck{ID: "capitals", Items: []deck.Item{
				{ID: "fr", Answer: "Paris"},
				{ID: "de", Answer: "Berlin"},
			}}, session.Options{})
		},
	})
	if _, ok := m.router.Active().(*home.HomeScreen); !ok {
		t.Fatalf("root = %T, want home screen", m.router.Active())
	}
	if m.status != "  " {
		t.Errorf("status = %q", m.status)
	}

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	m.Update(cmd())
	if m.router.Depth() != 2 {
		t.Fatalf("depth = %d, want 2 after choosing a deck", m.router.Depth())
	}

	// Ending the session and leaving the summary returns to the deck list.
	m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	_, cmd = m.Update(tea.KeyPressMsg{Code: 'y', Text: "y"})
	m.Update(cmd())
	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	m.Update(cmd())
	if _, ok := m.router.Active().(*home.HomeScreen); !ok {
		t.Errorf("active = %T, want home screen", m.router.Active())
	}
}

func TestFooterHints_AppendsQuit(t *testing.T) {
	m := testModel(t)
	hints := footerHints(m.router.Active())
	if len(hints) == 0 || hints[len(hints)-1].Key != "Ctrl+C" {
		t.Errorf("expected Ctrl+C hint last, got %+v", hints)
	}
}

func TestRun_RequiresSession(t *testing.T) {
	if err := Run(Options{}); err == nil {
		t.Error("expected error without a session or deck list")
	}
}
