package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestMultiChoice_ArrowsAndEnter(t *testing.T) {
	m := NewMultiChoice([]string{"Paris", "Rome", "Madrid"})

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown}) // clamped
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 1 {
		t.Fatalf("Selected = %d, want 1", m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !m.Submitted || m.Chosen() != "Rome" {
		t.Errorf("Chosen = %q (submitted %v), want Rome", m.Chosen(), m.Submitted)
	}
}

func TestMultiChoice_NumberKey(t *testing.T) {
	m := NewMultiChoice([]string{"Paris", "Rome", "Madrid"})
	if m.Chosen() != "" {
		t.Fatal("expected no choice before submission")
	}

	m, _ = m.Update(keyPress('9'))
	if m.Submitted {
		t.Fatal("out of range number must be ignored")
	}

	m, _ = m.Update(keyPress('3'))
	if m.Chosen() != "Madrid" {
		t.Errorf("Chosen = %q, want Madrid", m.Chosen())
	}

	// Frozen after submission.
	m, _ = m.Update(keyPress('1'))
	if m.Chosen() != "Madrid" {
		t.Errorf("Chosen changed after submission to %q", m.Chosen())
	}
}

func TestMultiChoice_Reveal(t *testing.T) {
	m := NewMultiChoice([]string{"Paris", "Rome"})
	m.Reveal("rome")
	if m.CorrectIndex != 1 {
		t.Errorf("CorrectIndex = %d, want 1", m.CorrectIndex)
	}
	m.Reveal("Berlin")
	if m.CorrectIndex != 1 {
		t.Error("unknown answer must leave CorrectIndex unchanged")
	}

	view := m.View()
	for _, want := range []string{"1) Paris", "2) Rome"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestProgressBar(t *testing.T) {
	p := NewProgressBar("Mastered", 1, 4, 40)
	if p.Percent != 0.25 {
		t.Errorf("Percent = %v, want 0.25", p.Percent)
	}
	if !strings.Contains(p.View(), "25%") {
		t.Error("expected percentage in view")
	}
	if NewProgressBar("", 0, 0, 10).Percent != 0 {
		t.Error("empty total must give zero percent")
	}
}

func TestMenu_SkipsDisabledAndRunsAction(t *testing.T) {
	ran := ""
	action := func(name string) func() tea.Cmd {
		return func() tea.Cmd {
			ran = name
			return nil
		}
	}
	m := NewMenu([]MenuItem{
		{Label: "none", Disabled: true},
		{Label: "first", Action: action("first")},
		{Label: "skip", Disabled: true},
		{Label: "last", Action: action("last"), Detail: "3 items"},
	})
	if m.Selected != 1 {
		t.Fatalf("Selected = %d, want first enabled item", m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 3 {
		t.Fatalf("Selected = %d, want 3", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 1 {
		t.Fatalf("Selected = %d, want 1", m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if ran != "first" {
		t.Errorf("ran = %q, want first", ran)
	}
	if !strings.Contains(m.View(), "3 items") {
		t.Error("expected detail in view")
	}
}
