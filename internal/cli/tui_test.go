package cli

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/minipm/minipm/pkg/manifest"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func update(f initForm, msgs ...tea.Msg) initForm {
	for _, msg := range msgs {
		model, _ := f.Update(msg)
		f = model.(initForm)
	}
	return f
}

func TestInitFormEditAndSubmit(t *testing.T) {
	m := &manifest.Manifest{Name: "demo", Version: "1.0.0"}
	f := newInitForm(m)

	// Clear the prefilled name and type a new one.
	f = update(f, key("backspace"), key("backspace"), key("backspace"), key("backspace"))
	f = update(f, key("app"))
	// Enter through the remaining fields submits on the last.
	f = update(f, key("enter"), key("enter"), key("enter"), key("enter"), key("enter"))

	if !f.submitted || f.cancelled {
		t.Fatalf("form state = submitted:%v cancelled:%v, want submitted", f.submitted, f.cancelled)
	}

	f.apply(m)
	if m.Name != "app" {
		t.Errorf("Name = %q, want %q", m.Name, "app")
	}
	if m.Version != "1.0.0" {
		t.Errorf("Version = %q, want prefilled value kept", m.Version)
	}
}

func TestInitFormCancel(t *testing.T) {
	f := newInitForm(&manifest.Manifest{Name: "demo"})
	f = update(f, key("esc"))
	if !f.cancelled {
		t.Error("esc should cancel the form")
	}
}

func TestInitFormNavigation(t *testing.T) {
	f := newInitForm(&manifest.Manifest{})
	f = update(f, key("tab"), key("tab"))
	if f.cursor != 2 {
		t.Errorf("cursor = %d, want 2 after two tabs", f.cursor)
	}
	f = update(f, tea.KeyMsg{Type: tea.KeyShiftTab})
	if f.cursor != 1 {
		t.Errorf("cursor = %d, want 1 after shift+tab", f.cursor)
	}
}
