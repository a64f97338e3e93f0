package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/balkashynov/taskbit/internal/inflight"
	"github.com/balkashynov/taskbit/internal/models"
)

// RunList starts the interactive task list
func RunList(service TaskService, spec models.FilterSpec, isExpired func(error) bool) error {
	model := NewListModel(service, inflight.NewTracker(), spec, isExpired)

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	if m, ok := finalModel.(ListModel); ok {
		return m.Err()
	}
	return nil
}

// RunForm shows a form and returns the submitted values. ok is false when
// the user cancelled.
func RunForm(title string, fields []FormField, validate Validator) (map[string]string, bool, error) {
	p := tea.NewProgram(NewFormModel(title, fields, validate))
	finalModel, err := p.Run()
	if err != nil {
		return nil, false, err
	}

	m, isForm := finalModel.(FormModel)
	if !isForm || !m.Completed() {
		return nil, false, nil
	}
	return m.Values(), true, nil
}

// LoginFields builds the login form, prefilled with a remembered email
func LoginFields(email string, remember bool) []FormField {
	rememberValue := ""
	if remember {
		rememberValue = "true"
	}
	return []FormField{
		{Key: "email", Label: "Email", Placeholder: "you@example.com", Value: email, CharLimit: 120},
		{Key: "password", Label: "Password", Placeholder: "password", Secret: true, CharLimit: 128},
		{Key: "remember", Label: "Remember me", Placeholder: "keep me signed in for 30 days", Toggle: true, Value: rememberValue},
	}
}

// TaskFields builds the task form. Status is only offered when editing.
func TaskFields(in models.TaskInput, editing bool) []FormField {
	due := ""
	if in.DueDate != nil {
		due = in.DueDate.String()
	}
	fields := []FormField{
		{Key: "title", Label: "Title", Placeholder: "Task title (required)", Value: in.Title},
		{Key: "description", Label: "Description", Placeholder: "Optional", Value: in.Description, CharLimit: 500},
		{Key: "course", Label: "Course", Placeholder: "Optional", Value: in.Course, CharLimit: 80},
		{Key: "priority", Label: "Priority", Placeholder: "alta/media/baja (optional)", Value: string(in.Priority), CharLimit: 10},
		{Key: "dueDate", Label: "Due date", Placeholder: "yyyy-mm-dd, dd/mm/yyyy, 3 days, tomorrow (optional)", Value: due, CharLimit: 20},
	}
	if editing {
		fields = append(fields, FormField{Key: "status", Label: "Status", Placeholder: "Pendiente/En progreso/Completada", Value: string(in.Status), CharLimit: 20})
	}
	return fields
}
