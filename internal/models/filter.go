package models

import "strings"

// SortBy selects the comparator used by the filter engine
type SortBy string

const (
	SortNone     SortBy = "none"
	SortDueDate  SortBy = "dueDate"
	SortPriority SortBy = "priority"
	SortTitle    SortBy = "title"
)

// SortKeys lists sort keys in the order the list view cycles through them
var SortKeys = []SortBy{SortNone, SortDueDate, SortPriority, SortTitle}

// ParseSortBy accepts the wire names plus a few short aliases
func ParseSortBy(value string) (SortBy, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "none":
		return SortNone, true
	case "duedate", "due":
		return SortDueDate, true
	case "priority", "prio":
		return SortPriority, true
	case "title":
		return SortTitle, true
	default:
		return "", false
	}
}

// SortOrder is the direction of the sort
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder accepts "asc" or "desc" in any case
func ParseSortOrder(value string) (SortOrder, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "asc":
		return SortAsc, true
	case "desc":
		return SortDesc, true
	default:
		return "", false
	}
}

// FilterSpec describes the derived view of a task list.
// Empty string fields mean the filter is not applied.
type FilterSpec struct {
	Status      Status    `json:"status"`
	Priority    Priority  `json:"priority"`
	Course      string    `json:"course"`
	SearchTitle string    `json:"searchTitle"`
	SortBy      SortBy    `json:"sortBy"`
	SortOrder   SortOrder `json:"sortOrder"`
}

// DefaultFilterSpec is the cleared state: no filters, unsorted, ascending
func DefaultFilterSpec() FilterSpec {
	return FilterSpec{SortBy: SortNone, SortOrder: SortAsc}
}

// IsActive reports whether any filter or sort is set
func (s FilterSpec) IsActive() bool {
	return s.Status != "" || s.Priority != "" || s.Course != "" || s.SearchTitle != "" ||
		(s.SortBy != "" && s.SortBy != SortNone)
}
