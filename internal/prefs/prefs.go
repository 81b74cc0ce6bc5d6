// Package prefs persists per-user UI preferences (theme, default page size,
// saved list filters) in a local SQLite database. Preferences belong to the
// gateway, not the fleet backend: losing them costs nothing but a reset
// default, so they never leave the gateway host.
package prefs

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/parcauto/fleet-dashboard/internal/config"
)

// Preference is one stored key/value pair. Value holds a JSON document the
// browser round-trips as-is.
type Preference struct {
	ID        int       `gorm:"primaryKey" json:"-"`
	UserID    int       `gorm:"uniqueIndex:idx_user_key;not null" json:"-"`
	Key       string    `gorm:"uniqueIndex:idx_user_key;size:128;not null" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the gorm default
func (Preference) TableName() string {
	return "preferences"
}

// ErrNotFound is returned when a preference key has no stored value
var ErrNotFound = errors.New("preference not found")

// Store reads and writes preferences
type Store struct {
	db *gorm.DB
}

// NewStore opens the preference database, creating the file if needed
func NewStore(cfg *config.PrefsConfig) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open preference database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	// SQLite serializes writers; a single connection avoids lock errors
	sqlDB.SetMaxOpenConns(1)

	return &Store{db: db}, nil
}

// Get returns the stored value for a user's key
func (s *Store) Get(userID int, key string) (string, error) {
	var pref Preference
	err := s.db.Where("user_id = ? AND key = ?", userID, key).First(&pref).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to read preference: %w", err)
	}
	return pref.Value, nil
}

// Set stores a value, replacing any previous one for the same key
func (s *Store) Set(userID int, key, value string) error {
	pref := Preference{
		UserID: userID,
		Key:    key,
		Value:  value,
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&pref).Error
	if err != nil {
		return fmt.Errorf("failed to store preference: %w", err)
	}
	return nil
}

// Delete removes a stored value. Deleting an absent key is not an error.
func (s *Store) Delete(userID int, key string) error {
	err := s.db.Where("user_id = ? AND key = ?", userID, key).Delete(&Preference{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete preference: %w", err)
	}
	return nil
}

// All returns every preference a user has stored
func (s *Store) All(userID int) ([]Preference, error) {
	var prefs []Preference
	err := s.db.Where("user_id = ?", userID).Order("key").Find(&prefs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list preferences: %w", err)
	}
	return prefs, nil
}

// AutoMigrate creates the schema. Production deployments run the SQL
// migrations instead; this covers development and tests.
func (s *Store) AutoMigrate() error {
	return s.db.AutoMigrate(&Preference{})
}
