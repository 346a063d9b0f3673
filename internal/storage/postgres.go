// internal/storage/postgres.go
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/javajoker/catalog-manager/internal/models"
)

// PostgresSlot stores the slot value as one row of kv_slots. The database
// handle is owned by the caller and is not closed by Close.
type PostgresSlot struct {
	db  *gorm.DB
	key string
}

func NewPostgresSlot(db *gorm.DB, key string) *PostgresSlot {
	return &PostgresSlot{db: db, key: key}
}

func (s *PostgresSlot) Load(ctx context.Context) ([]byte, error) {
	var row models.KVSlot
	if err := s.db.WithContext(ctx).Where("key = ?", s.key).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlotEmpty
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return []byte(row.Value), nil
}

func (s *PostgresSlot) Save(ctx context.Context, data []byte) error {
	row := models.KVSlot{
		Key:       s.key,
		Value:     string(data),
		UpdatedAt: time.Now().UTC(),
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to write slot %s: %w", s.key, err)
	}
	return nil
}

func (s *PostgresSlot) Close() error {
	return nil
}
