package models

import "time"

// AlertStatus is the lifecycle state of an alert
type AlertStatus string

const (
	AlertActive   AlertStatus = "activa"
	AlertInactive AlertStatus = "inactiva"
)

// Alert is a due-date reminder attached to a task
type Alert struct {
	ID           int64       `json:"id"`
	TaskID       int64       `json:"taskId"`
	TaskTitle    string      `json:"taskTitle,omitempty"`
	TimeBefore   string      `json:"timeBefore"`
	ScheduledFor time.Time   `json:"scheduledFor"`
	Status       AlertStatus `json:"status"`
	CreatedAt    *time.Time  `json:"createdAt,omitempty"`
}

// IsActive reports whether the alert will still fire.
// The backend also reports "desactivada" and "ejecutada"; both count as inactive.
func (a Alert) IsActive() bool {
	return a.Status == AlertActive
}

// AlertInput is the body of an alert creation request
type AlertInput struct {
	TaskID     int64  `json:"taskId"`
	TimeBefore string `json:"timeBefore"`
}
