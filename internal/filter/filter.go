// Package filter derives the displayed view of a task list.
//
// Apply is pure: it never touches the network or storage and never mutates
// its input, so the list view calls it on every keystroke.
package filter

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/balkashynov/taskbit/internal/models"
)

// Apply returns the tasks matching spec, sorted by spec.SortBy.
// The result is always a fresh, non-nil slice.
func Apply(tasks []models.Task, spec models.FilterSpec) []models.Task {
	result := make([]models.Task, 0, len(tasks))
	for _, task := range tasks {
		if Matches(task, spec) {
			result = append(result, task)
		}
	}

	if compare := comparator(spec.SortBy); compare != nil {
		desc := spec.SortOrder == models.SortDesc
		slices.SortStableFunc(result, func(a, b models.Task) int {
			return compare(a, b, desc)
		})
	}
	return result
}

// Matches reports whether a single task passes every filter of spec
func Matches(task models.Task, spec models.FilterSpec) bool {
	if spec.Status != "" && task.Status != spec.Status {
		return false
	}
	if spec.Priority != "" && !strings.EqualFold(string(task.Priority), string(spec.Priority)) {
		return false
	}
	if spec.Course != "" && task.Course != spec.Course {
		return false
	}
	if spec.SearchTitle != "" {
		if task.Title == "" {
			return false
		}
		if !strings.Contains(strings.ToLower(task.Title), strings.ToLower(spec.SearchTitle)) {
			return false
		}
	}
	return true
}

type compareFunc func(a, b models.Task, desc bool) int

func comparator(by models.SortBy) compareFunc {
	switch by {
	case models.SortDueDate:
		return compareDueDate
	case models.SortPriority:
		return directed(func(a, b models.Task) int {
			return cmp.Compare(a.Priority.Weight(), b.Priority.Weight())
		})
	case models.SortTitle:
		// collators keep internal buffers, so each sort gets its own
		c := collate.New(language.Spanish, collate.IgnoreCase)
		return directed(func(a, b models.Task) int {
			return c.CompareString(a.Title, b.Title)
		})
	default:
		return nil
	}
}

func directed(compare func(a, b models.Task) int) compareFunc {
	return func(a, b models.Task, desc bool) int {
		if desc {
			return -compare(a, b)
		}
		return compare(a, b)
	}
}

// compareDueDate puts tasks without a due date last in both directions
func compareDueDate(a, b models.Task, desc bool) int {
	switch {
	case !a.HasDueDate() && !b.HasDueDate():
		return 0
	case !a.HasDueDate():
		return 1
	case !b.HasDueDate():
		return -1
	}
	c := a.DueDate.Compare(b.DueDate.Time)
	if desc {
		return -c
	}
	return c
}

// CountByStatus tallies tasks per status. Every known status is present.
func CountByStatus(tasks []models.Task) map[models.Status]int {
	counts := make(map[models.Status]int, len(models.Statuses))
	for _, s := range models.Statuses {
		counts[s] = 0
	}
	for _, task := range tasks {
		counts[task.Status]++
	}
	return counts
}

// Courses returns the distinct non-empty course names, sorted
func Courses(tasks []models.Task) []string {
	seen := make(map[string]struct{})
	courses := []string{}
	for _, task := range tasks {
		if task.Course == "" {
			continue
		}
		if _, ok := seen[task.Course]; ok {
			continue
		}
		seen[task.Course] = struct{}{}
		courses = append(courses, task.Course)
	}
	slices.Sort(courses)
	return courses
}
