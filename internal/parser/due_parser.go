package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/balkashynov/taskbit/internal/models"
)

var (
	slashDateRegex = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	relativeRegex  = regexp.MustCompile(`^(\d+)\s*(day|days|week|weeks)$`)
)

// ParseDueDate parses various due date formats relative to now
// Supported formats:
// - yyyy-mm-dd (e.g., "2025-12-15")
// - dd/mm/yyyy (e.g., "15/12/2025")
// - X days (e.g., "3 days", "1day")
// - X weeks (e.g., "2 weeks")
// - today, tomorrow
func ParseDueDate(input string, now time.Time) (*models.Date, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil
	}

	if d, err := models.ParseDate(input); err == nil && len(input) == len(models.DateLayout) {
		return &d, nil
	}

	if d, err := parseSlashDate(input); err == nil {
		return d, nil
	}

	if d, err := parseRelativeDate(input, now); err == nil {
		return d, nil
	}

	return nil, fmt.Errorf("invalid date format. Use: yyyy-mm-dd, dd/mm/yyyy, X days, X weeks, today or tomorrow")
}

// parseSlashDate parses dd/mm/yyyy format
func parseSlashDate(input string) (*models.Date, error) {
	matches := slashDateRegex.FindStringSubmatch(input)
	if len(matches) != 4 {
		return nil, fmt.Errorf("invalid date format")
	}

	day, _ := strconv.Atoi(matches[1])
	month, _ := strconv.Atoi(matches[2])
	year, _ := strconv.Atoi(matches[3])

	if day < 1 || day > 31 {
		return nil, fmt.Errorf("day must be between 1 and 31")
	}
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("month must be between 1 and 12")
	}

	d := models.NewDate(year, time.Month(month), day)
	// time.Date normalises 31/02 into March
	if d.Day() != day || d.Month() != time.Month(month) {
		return nil, fmt.Errorf("invalid date")
	}
	return &d, nil
}

// parseRelativeDate parses "today", "tomorrow", "3 days", "2 weeks"
func parseRelativeDate(input string, now time.Time) (*models.Date, error) {
	input = strings.ToLower(input)
	today := models.DateOf(now)

	switch input {
	case "today":
		return &today, nil
	case "tomorrow":
		d := models.Date{Time: today.AddDate(0, 0, 1)}
		return &d, nil
	}

	matches := relativeRegex.FindStringSubmatch(input)
	if len(matches) != 3 {
		return nil, fmt.Errorf("invalid relative date format")
	}

	amount, err := strconv.Atoi(matches[1])
	if err != nil {
		return nil, fmt.Errorf("invalid number")
	}

	var days int
	switch matches[2] {
	case "day", "days":
		if amount < 1 || amount > 365 {
			return nil, fmt.Errorf("days must be between 1 and 365")
		}
		days = amount
	case "week", "weeks":
		if amount < 1 || amount > 52 {
			return nil, fmt.Errorf("weeks must be between 1 and 52")
		}
		days = amount * 7
	}

	d := models.Date{Time: today.AddDate(0, 0, days)}
	return &d, nil
}

// FormatDueDate formats a due date for display relative to now
func FormatDueDate(due *models.Date, now time.Time) string {
	if due == nil {
		return ""
	}

	daysDiff := int(due.Sub(models.DateOf(now).Time).Hours() / 24)
	dateStr := due.Format("02/01/2006")

	switch {
	case daysDiff < 0:
		return fmt.Sprintf("⚠️ OVERDUE (%s)", dateStr)
	case daysDiff == 0:
		return fmt.Sprintf("🔥 Due today (%s)", dateStr)
	case daysDiff == 1:
		return fmt.Sprintf("📅 Due tomorrow (%s)", dateStr)
	case daysDiff <= 7:
		return fmt.Sprintf("📅 Due %s (in %d days)", dateStr, daysDiff)
	default:
		return fmt.Sprintf("📅 Due %s", dateStr)
	}
}
