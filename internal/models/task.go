package models

import (
	"strings"
	"time"
)

// Status is the workflow state of a task as the backend spells it
type Status string

const (
	StatusPending    Status = "Pendiente"
	StatusInProgress Status = "En progreso"
	StatusCompleted  Status = "Completada"
)

// Statuses lists every valid status in display order
var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted}

// ParseStatus matches a status case-insensitively and accepts a few English aliases
func ParseStatus(value string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "pendiente", "pending", "todo":
		return StatusPending, true
	case "en progreso", "in progress", "in-progress", "doing":
		return StatusInProgress, true
	case "completada", "completed", "done":
		return StatusCompleted, true
	default:
		return "", false
	}
}

// Priority is the optional importance of a task; empty means unset
type Priority string

const (
	PriorityHigh   Priority = "alta"
	PriorityMedium Priority = "media"
	PriorityLow    Priority = "baja"
)

// Priorities lists every valid priority from highest to lowest
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// Weight maps a priority to its ordinal: alta=3, media=2, baja=1, anything else 0
func (p Priority) Weight() int {
	switch Priority(strings.ToLower(string(p))) {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Task is a task record as returned by the backend
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     *Date      `json:"dueDate,omitempty"`
	Priority    Priority   `json:"priority,omitempty"`
	Course      string     `json:"course,omitempty"`
	Status      Status     `json:"status"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// IsCompleted reports whether the task is in the Completada state
func (t Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// HasDueDate reports whether the task carries a real due date. The backend may
// send an empty string, which decodes to a zero Date.
func (t Task) HasDueDate() bool {
	return t.DueDate != nil && !t.DueDate.IsZero()
}

// TaskInput is the body of a create or update request.
// Empty optional fields are omitted so the backend stores them as null.
type TaskInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	DueDate     *Date    `json:"dueDate,omitempty"`
	Priority    Priority `json:"priority,omitempty"`
	Course      string   `json:"course,omitempty"`
	Status      Status   `json:"status,omitempty"`
}

// InputFromTask copies the editable fields of a task
func InputFromTask(t Task) TaskInput {
	in := TaskInput{
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Course:      t.Course,
		Status:      t.Status,
	}
	if t.HasDueDate() {
		in.DueDate = t.DueDate
	}
	return in
}

// Normalize trims every string field and lowercases the priority
func (in TaskInput) Normalize() TaskInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Course = strings.TrimSpace(in.Course)
	in.Priority = Priority(strings.ToLower(strings.TrimSpace(string(in.Priority))))
	in.Status = Status(strings.TrimSpace(string(in.Status)))
	return in
}
