// internal/storage/slot.go
package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/javajoker/catalog-manager/internal/config"
	"github.com/javajoker/catalog-manager/internal/database"
)

// ErrSlotEmpty is returned by Load when nothing has been stored yet.
var ErrSlotEmpty = errors.New("storage slot is empty")

// Slot is a single persistent key-value slot holding the serialised
// catalog. Save overwrites the whole value.
type Slot interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Close() error
}

// Open returns the slot selected by cfg.Store.Backend. db is only used by
// the postgres backend and may be nil otherwise.
func Open(ctx context.Context, cfg *config.Config, db *gorm.DB) (Slot, error) {
	switch cfg.Store.Backend {
	case config.BackendFile:
		return NewFileSlot(cfg.Store.FileDir, cfg.Store.Key), nil
	case config.BackendMemory:
		return NewMemorySlot(), nil
	case config.BackendRedis:
		client, err := database.ConnectRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		return NewRedisSlot(client, cfg.Store.Key), nil
	case config.BackendPostgres:
		if db == nil {
			return nil, errors.New("postgres store backend requires a database connection")
		}
		return NewPostgresSlot(db, cfg.Store.Key), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
