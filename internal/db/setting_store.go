package db

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/balkashynov/taskbit/internal/models"
)

// SettingStore is a durable key/value store over the settings table.
// It satisfies session.Storage.
type SettingStore struct {
	db *gorm.DB
}

// NewSettingStore wraps an open connection
func NewSettingStore(db *gorm.DB) *SettingStore {
	return &SettingStore{db: db}
}

// Get returns the value stored under key; ok is false when the key is absent
func (s *SettingStore) Get(key string) (string, bool, error) {
	var setting models.Setting
	err := s.db.Where("name = ?", key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read setting %q: %w", key, err)
	}
	return setting.Value, true, nil
}

// Set inserts or overwrites key
func (s *SettingStore) Set(key, value string) error {
	setting := models.Setting{Name: key, Value: value, UpdatedAt: time.Now()}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
	if err != nil {
		return fmt.Errorf("failed to write setting %q: %w", key, err)
	}
	return nil
}

// Remove deletes key; removing an absent key is not an error
func (s *SettingStore) Remove(key string) error {
	if err := s.db.Where("name = ?", key).Delete(&models.Setting{}).Error; err != nil {
		return fmt.Errorf("failed to remove setting %q: %w", key, err)
	}
	return nil
}
