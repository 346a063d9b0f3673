// internal/storage/postgres_test.go
package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/javajoker/catalog-manager/internal/config"
	"github.com/javajoker/catalog-manager/internal/database"
)

func TestPostgresSlot(t *testing.T) {
	cfg := config.DatabaseConfig{
		Host:         "localhost",
		Port:         "5432",
		User:         "postgres",
		Password:     "postgres",
		Database:     "catalog_test",
		SSLMode:      "disable",
		MaxOpenConns: 2,
		MaxIdleConns: 1,
		MaxLifetime:  60,
	}

	db, err := database.Initialize(cfg)
	if err != nil {
		t.Skip("test database unavailable, skipping integration test:", err)
	}
	defer database.Close(db)

	require.NoError(t, database.RunMigrations(db))

	key := "slot_test_key"
	require.NoError(t, db.Exec("DELETE FROM kv_slots WHERE key = ?", key).Error)
	defer db.Exec("DELETE FROM kv_slots WHERE key = ?", key)

	slot := NewPostgresSlot(db, key)
	exerciseSlot(t, slot)
	require.NoError(t, slot.Close())

	// Close leaves the shared handle usable.
	_, err = slot.Load(context.Background())
	require.NoError(t, err)
}
