package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// FormField describes one input of a FormModel
type FormField struct {
	Key         string
	Label       string
	Placeholder string
	Value       string
	CharLimit   int
	// Secret hides the typed characters
	Secret bool
	// Toggle makes the field a yes/no switch flipped with space; Value is "true" or ""
	Toggle bool
}

// Validator checks the submitted values and returns field→message errors
type Validator func(values map[string]string) map[string]string

// FormModel is a step-by-step form: enter moves to the next field and submits
// on the last one, tab/shift+tab move freely, esc cancels.
type FormModel struct {
	title    string
	fields   []FormField
	inputs   []textinput.Model
	toggles  []bool
	current  int
	validate Validator

	width  int
	height int

	errors    map[string]string
	completed bool
	cancelled bool
}

// NewFormModel builds a form. validate may be nil.
func NewFormModel(title string, fields []FormField, validate Validator) FormModel {
	inputs := make([]textinput.Model, len(fields))
	toggles := make([]bool, len(fields))

	for i, f := range fields {
		inputs[i] = textinput.New()
		inputs[i].Width = 50
		inputs[i].Placeholder = f.Placeholder
		inputs[i].CharLimit = f.CharLimit
		if inputs[i].CharLimit == 0 {
			inputs[i].CharLimit = 200
		}

		inputs[i].TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
		inputs[i].PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))
		inputs[i].Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))

		if f.Secret {
			inputs[i].EchoMode = textinput.EchoPassword
			inputs[i].EchoCharacter = '•'
		}
		if f.Toggle {
			toggles[i] = f.Value == "true"
		} else {
			inputs[i].SetValue(f.Value)
		}
	}

	m := FormModel{
		title:    title,
		fields:   fields,
		inputs:   inputs,
		toggles:  toggles,
		validate: validate,
		errors:   map[string]string{},
	}
	// start on the first empty field, so a prefilled email jumps to the password
	for i, f := range fields {
		if !f.Toggle && strings.TrimSpace(f.Value) == "" {
			m.current = i
			break
		}
	}
	m.focusCurrent()
	return m
}

func (m FormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		inputWidth := m.width/2 - 10
		if inputWidth < 30 {
			inputWidth = 30
		}
		if inputWidth > 70 {
			inputWidth = 70
		}
		for i := range m.inputs {
			m.inputs[i].Width = inputWidth
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit

		case "ctrl+s":
			return m.submit()

		case "enter":
			if m.current == len(m.fields)-1 {
				return m.submit()
			}
			return m.move(1), textinput.Blink

		case "tab", "down":
			return m.move(1), textinput.Blink

		case "shift+tab", "up":
			return m.move(-1), textinput.Blink

		case " ":
			if m.fields[m.current].Toggle {
				m.toggles[m.current] = !m.toggles[m.current]
				return m, nil
			}
		}
	}

	if len(m.inputs) == 0 || m.fields[m.current].Toggle {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.current], cmd = m.inputs[m.current].Update(msg)
	delete(m.errors, m.fields[m.current].Key)
	return m, cmd
}

func (m FormModel) move(delta int) FormModel {
	next := m.current + delta
	if next < 0 || next >= len(m.fields) {
		return m
	}
	m.current = next
	m.focusCurrent()
	return m
}

func (m *FormModel) focusCurrent() {
	for i := range m.inputs {
		if i == m.current && !m.fields[i].Toggle {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

func (m FormModel) submit() (FormModel, tea.Cmd) {
	if m.validate != nil {
		errs := m.validate(m.Values())
		if len(errs) > 0 {
			m.errors = errs
			// jump to the first invalid field
			for i, f := range m.fields {
				if _, ok := errs[f.Key]; ok {
					m.current = i
					m.focusCurrent()
					break
				}
			}
			return m, nil
		}
	}
	m.completed = true
	return m, tea.Quit
}

// Values returns the current value of every field by key
func (m FormModel) Values() map[string]string {
	values := make(map[string]string, len(m.fields))
	for i, f := range m.fields {
		if f.Toggle {
			if m.toggles[i] {
				values[f.Key] = "true"
			} else {
				values[f.Key] = ""
			}
			continue
		}
		values[f.Key] = m.inputs[i].Value()
	}
	return values
}

// Completed reports whether the form was submitted and passed validation
func (m FormModel) Completed() bool { return m.completed }

// Cancelled reports whether the user left with esc or ctrl+c
func (m FormModel) Cancelled() bool { return m.cancelled }

// Errors returns the last validation errors
func (m FormModel) Errors() map[string]string { return m.errors }

func (m FormModel) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentMain)).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")

	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	activeLabelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Bold(true)
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError))

	for i, f := range m.fields {
		style := labelStyle
		marker := "  "
		if i == m.current {
			style = activeLabelStyle
			marker = "› "
		}
		b.WriteString(style.Render(marker + f.Label))
		b.WriteString("\n")

		if f.Toggle {
			box := "[ ]"
			if m.toggles[i] {
				box = "[x]"
			}
			b.WriteString("  " + style.Render(box+" "+f.Placeholder))
		} else {
			b.WriteString("  " + m.inputs[i].View())
		}
		b.WriteString("\n")

		if msg, ok := m.errors[f.Key]; ok {
			b.WriteString("  " + errorStyle.Render(msg) + "\n")
		}
		b.WriteString("\n")
	}

	if msg, ok := m.errors[""]; ok {
		b.WriteString(errorStyle.Render(msg) + "\n\n")
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText)).Italic(true)
	b.WriteString(helpStyle.Render(fmt.Sprintf("enter next/submit · tab/shift+tab move · space toggle · ctrl+s submit · esc cancel (%d/%d)", m.current+1, len(m.fields))))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(1, 2).
		Render(b.String())
}
