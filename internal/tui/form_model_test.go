package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/taskbit/internal/models"
)

func sendForm(t *testing.T, m FormModel, msg tea.Msg) (FormModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	fm, ok := next.(FormModel)
	require.True(t, ok)
	return fm, cmd
}

func typeText(t *testing.T, m FormModel, text string) FormModel {
	t.Helper()
	for _, r := range text {
		m, _ = sendForm(t, m, key(string(r)))
	}
	return m
}

func TestFormModel_LoginFlow(t *testing.T) {
	m := NewFormModel("Login", LoginFields("", false), nil)

	m = typeText(t, m, "a@b.com")
	m, _ = sendForm(t, m, key("enter"))
	m = typeText(t, m, "secret")
	m, _ = sendForm(t, m, key("enter"))
	m, _ = sendForm(t, m, key(" "))
	m, cmd := sendForm(t, m, key("enter"))

	require.NotNil(t, cmd)
	assert.True(t, m.Completed())
	assert.Equal(t, map[string]string{"email": "a@b.com", "password": "secret", "remember": "true"}, m.Values())
}

func TestFormModel_PrefilledEmailFocusesPassword(t *testing.T) {
	m := NewFormModel("Login", LoginFields("a@b.com", true), nil)

	assert.Equal(t, 1, m.current)
	m = typeText(t, m, "pw")
	assert.Equal(t, "pw", m.Values()["password"])
	assert.Equal(t, "true", m.Values()["remember"])
}

func TestFormModel_ValidationBlocksSubmit(t *testing.T) {
	validate := func(values map[string]string) map[string]string {
		if values["title"] == "" {
			return map[string]string{"title": "Campos obligatorios incompletos"}
		}
		return nil
	}
	m := NewFormModel("New task", TaskFields(models.TaskInput{}, false), validate)

	m, _ = sendForm(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.False(t, m.Completed())
	assert.Equal(t, "Campos obligatorios incompletos", m.Errors()["title"])
	assert.Equal(t, 0, m.current)
	assert.Contains(t, m.View(), "Campos obligatorios incompletos")

	m = typeText(t, m, "Ensayo")
	assert.Empty(t, m.Errors()["title"])

	m, _ = sendForm(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.True(t, m.Completed())
}

func TestFormModel_Cancel(t *testing.T) {
	m := NewFormModel("Login", LoginFields("", false), nil)
	m, cmd := sendForm(t, m, key("esc"))

	assert.NotNil(t, cmd)
	assert.True(t, m.Cancelled())
	assert.False(t, m.Completed())
}

func TestTaskFields_EditIncludesStatus(t *testing.T) {
	due := models.NewDate(2099, 1, 2)
	fields := TaskFields(models.TaskInput{Title: "x", DueDate: &due, Status: models.StatusPending}, true)

	require.Len(t, fields, 6)
	assert.Equal(t, "2099-01-02", fields[4].Value)
	assert.Equal(t, "status", fields[5].Key)
	assert.Len(t, TaskFields(models.TaskInput{}, false), 5)
}
