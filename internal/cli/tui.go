package cli

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/minipm/minipm/pkg/manifest"
)

// formField is one editable line of the init form.
type formField struct {
	label string
	value string
}

// initForm is the bubbletea model for the interactive init prompt. Enter
// advances through the fields and submits on the last one; esc cancels.
type initForm struct {
	fields    []formField
	cursor    int
	submitted bool
	cancelled bool
}

func newInitForm(m *manifest.Manifest) initForm {
	return initForm{
		fields: []formField{
			{label: "name", value: m.Name},
			{label: "version", value: m.Version},
			{label: "description", value: m.Description},
			{label: "author", value: m.Author},
			{label: "license", value: m.License},
		},
	}
}

// apply copies the form values back onto the manifest.
func (f initForm) apply(m *manifest.Manifest) {
	m.Name = f.fields[0].value
	m.Version = f.fields[1].value
	m.Description = f.fields[2].value
	m.Author = f.fields[3].value
	m.License = f.fields[4].value
}

func (f initForm) Init() tea.Cmd {
	return nil
}

func (f initForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return f, nil
	}

	switch keyMsg.String() {
	case "ctrl+c", "esc":
		f.cancelled = true
		return f, tea.Quit
	case "enter":
		if f.cursor == len(f.fields)-1 {
			f.submitted = true
			return f, tea.Quit
		}
		f.cursor++
	case "tab", "down":
		if f.cursor < len(f.fields)-1 {
			f.cursor++
		}
	case "shift+tab", "up":
		if f.cursor > 0 {
			f.cursor--
		}
	case "backspace":
		field := &f.fields[f.cursor]
		if len(field.value) > 0 {
			field.value = field.value[:len(field.value)-1]
		}
	default:
		if keyMsg.Type == tea.KeyRunes {
			f.fields[f.cursor].value += string(keyMsg.Runes)
		}
	}
	return f, nil
}

func (f initForm) View() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("Create package.json"))
	b.WriteString("\n")
	b.WriteString(styleDim.Render("enter: next field  esc: cancel"))
	b.WriteString("\n\n")

	for i, field := range f.fields {
		cursor := "  "
		if i == f.cursor {
			cursor = "▸ "
		}

		label := styleDim.Render(field.label + ":")
		value := field.value
		if i == f.cursor {
			value = styleHighlight.Render(value + "█")
		} else {
			value = styleValue.Render(value)
		}

		b.WriteString(cursor + label + " " + value + "\n")
	}

	return b.String()
}
