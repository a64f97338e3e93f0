package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/balkashynov/taskbit/internal/models"
	"github.com/balkashynov/taskbit/internal/parser"
	"github.com/balkashynov/taskbit/internal/tui"
	"github.com/balkashynov/taskbit/internal/validate"
)

// parseTaskID parses a positive numeric task id
func parseTaskID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(strings.TrimSpace(arg), "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task ID '%s'. Please provide a valid numeric ID", arg)
	}
	return id, nil
}

// inputFromValues converts task form values into a normalised TaskInput.
// Values that cannot be parsed are reported per field.
func inputFromValues(values map[string]string, now time.Time) (models.TaskInput, validate.Errors) {
	errs := validate.Errors{}
	in := models.TaskInput{
		Title:       values["title"],
		Description: values["description"],
		Course:      values["course"],
	}

	if raw := strings.TrimSpace(values["priority"]); raw != "" {
		priority, ok := parser.NormalizePriority(raw)
		if !ok {
			errs["priority"] = validate.MsgInvalidPriority
		}
		in.Priority = priority
	}

	if raw := strings.TrimSpace(values["dueDate"]); raw != "" {
		due, err := parser.ParseDueDate(raw, now)
		if err != nil {
			errs["dueDate"] = err.Error()
		}
		in.DueDate = due
	}

	if raw, ok := values["status"]; ok && strings.TrimSpace(raw) != "" {
		status, ok := models.ParseStatus(raw)
		if !ok {
			errs["status"] = validate.MsgInvalidStatus
		}
		in.Status = status
	}

	return in.Normalize(), errs
}

// checkTaskValues is the form validator shared by add and edit
func checkTaskValues(values map[string]string, now time.Time) map[string]string {
	in, errs := inputFromValues(values, now)
	if len(errs) > 0 {
		return errs
	}
	return fieldErrors(validate.Task(in, now))
}

// runTaskForm opens the task form prefilled with in and returns the edited input
func runTaskForm(title string, in models.TaskInput, editing bool, now time.Time) (models.TaskInput, bool, error) {
	values, ok, err := tui.RunForm(title, tui.TaskFields(in, editing), func(values map[string]string) map[string]string {
		return checkTaskValues(values, now)
	})
	if err != nil || !ok {
		return models.TaskInput{}, ok, err
	}
	edited, _ := inputFromValues(values, now)
	return edited, true, nil
}

// printTask prints the detail block for a task
func printTask(task *models.Task, now time.Time) {
	fmt.Printf("#%d %s\n", task.ID, task.Title)
	fmt.Printf("  Status:   %s\n", task.Status)
	if task.Course != "" {
		fmt.Printf("  Course:   %s\n", task.Course)
	}
	if task.Priority != "" {
		fmt.Printf("  Priority: %s\n", task.Priority)
	}
	if task.HasDueDate() {
		fmt.Printf("  Due:      %s\n", parser.FormatDueDate(task.DueDate, now))
	}
	if task.Description != "" {
		fmt.Printf("  Notes:    %s\n", task.Description)
	}
	if task.CompletedAt != nil {
		fmt.Printf("  Completed %s\n", task.CompletedAt.Local().Format("02/01/2006 15:04"))
	}
}
