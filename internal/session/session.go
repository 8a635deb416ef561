// Package session implements the small local store for UI session state.
//
// The ledger itself lives upstream in the costs API; the only thing the
// backend keeps on disk is per-session state such as the selected month,
// which has to survive a restart.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Setting is one persisted key/value pair.
type Setting struct {
	Key       string `gorm:"primaryKey"`
	Value     string
	UpdatedAt time.Time
}

// Store persists session state in a sqlite database.
type Store struct {
	db *gorm.DB
}

// Connect opens the sqlite database at path and migrates the schema.
func Connect(path string) (*Store, error) {
	config := &gorm.Config{
		// Set generated timestamps in UTC
		NowFunc: func() time.Time {
			return time.Now().In(time.UTC)
		},
	}

	db, err := gorm.Open(sqlite.Open(path), config)
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}

	err = db.AutoMigrate(Setting{})
	if err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

// Get reads a setting. The second return value reports whether the key
// exists.
func (s *Store) Get(key string) (string, bool, error) {
	var setting Setting

	err := s.db.First(&setting, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	return setting.Value, true, nil
}

// Set writes a setting, overwriting an existing value for the key.
func (s *Store) Set(key, value string) error {
	setting := Setting{Key: key, Value: value}

	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
}
