package models

import "time"

// Setting is one row of the local key/value table
type Setting struct {
	Name      string `gorm:"primaryKey;size:64"`
	Value     string `gorm:"not null"`
	UpdatedAt time.Time
}
