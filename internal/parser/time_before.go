package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/balkashynov/taskbit/internal/models"
)

// TimeBeforeOptions are the alert lead times offered by the backend UI
var TimeBeforeOptions = []string{
	"1 hour",
	"2 hours",
	"6 hours",
	"12 hours",
	"24 hours",
	"2 days",
	"3 days",
	"7 days",
}

// MaxLeadDays caps how far before the due date an alert may fire
const MaxLeadDays = 365

var timeBeforeRegex = regexp.MustCompile(`^(\d+)\s*(h|hour|hours|hora|horas|d|day|days|dia|dias|día|días)$`)

// ParseTimeBefore normalises a lead time such as "2h", "1 day" or "3 días"
// into the backend's "N hour(s)" / "N day(s)" form and returns its duration
func ParseTimeBefore(input string) (string, time.Duration, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	matches := timeBeforeRegex.FindStringSubmatch(input)
	if len(matches) != 3 {
		return "", 0, fmt.Errorf("invalid lead time %q. Use: %s", input, strings.Join(TimeBeforeOptions, ", "))
	}

	amount, err := strconv.Atoi(matches[1])
	if err != nil || amount < 1 {
		return "", 0, fmt.Errorf("lead time must be at least 1")
	}

	unit, step, limit := "hour", time.Hour, MaxLeadDays*24
	switch matches[2] {
	case "d", "day", "days", "dia", "dias", "día", "días":
		unit, step, limit = "day", 24*time.Hour, MaxLeadDays
	}
	if amount > limit {
		return "", 0, fmt.Errorf("lead time must be at most %d days", MaxLeadDays)
	}
	if amount > 1 {
		unit += "s"
	}

	return fmt.Sprintf("%d %s", amount, unit), time.Duration(amount) * step, nil
}

// ScheduledFor computes when an alert fires: the due date at 00:00 UTC minus the lead time
func ScheduledFor(due models.Date, timeBefore string) (time.Time, error) {
	_, lead, err := ParseTimeBefore(timeBefore)
	if err != nil {
		return time.Time{}, err
	}
	midnight := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)
	return midnight.Add(-lead), nil
}
