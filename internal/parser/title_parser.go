package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/balkashynov/taskbit/internal/models"
)

var (
	courseRegex   = regexp.MustCompile(`@([\p{L}0-9_-]+)`)
	priorityRegex = regexp.MustCompile(`\+([\p{L}0-9]+)`)
	dueRegex      = regexp.MustCompile(`due:(\S+(?:\s+(?:day|days|week|weeks)\b)?)`)
)

// ParsedTask represents a task parsed from natural language
type ParsedTask struct {
	Title    string
	Course   string
	Priority models.Priority
	DueDate  *models.Date
	Errors   []string
}

// ParseTitle extracts metadata from a task title using natural syntax
// Syntax: "Task title @course +priority due:2025-12-01"
func ParseTitle(input string, now time.Time) ParsedTask {
	result := ParsedTask{
		Title:  input,
		Errors: []string{},
	}

	// Extract course (@course-name)
	if matches := courseRegex.FindStringSubmatch(input); len(matches) > 1 {
		result.Course = matches[1]
		input = courseRegex.ReplaceAllString(input, "")
	}

	// Extract priority (+alta, +high, +3, etc.)
	if matches := priorityRegex.FindStringSubmatch(input); len(matches) > 1 {
		if priority, ok := NormalizePriority(matches[1]); ok {
			result.Priority = priority
		} else {
			result.Errors = append(result.Errors, "Invalid priority '"+matches[1]+"'. Use: alta, media, baja, high, medium, low, 3, 2 or 1")
		}
		input = priorityRegex.ReplaceAllString(input, "")
	}

	// Extract due date (due:3days, due:15/12/2025, due:2025-12-15, due:tomorrow)
	if matches := dueRegex.FindStringSubmatch(input); len(matches) > 1 {
		dueDate, err := ParseDueDate(matches[1], now)
		if err != nil {
			result.Errors = append(result.Errors, "Invalid due date '"+matches[1]+"': "+err.Error())
		} else {
			result.DueDate = dueDate
		}
		input = dueRegex.ReplaceAllString(input, "")
	}

	// Clean up the title (remove extra spaces)
	result.Title = strings.Join(strings.Fields(input), " ")

	return result
}

// NormalizePriority converts the accepted priority spellings to the backend's values
func NormalizePriority(priority string) (models.Priority, bool) {
	switch strings.ToLower(strings.TrimSpace(priority)) {
	case "3", "high", "alta":
		return models.PriorityHigh, true
	case "2", "medium", "med", "media":
		return models.PriorityMedium, true
	case "1", "low", "baja":
		return models.PriorityLow, true
	default:
		return "", false
	}
}
