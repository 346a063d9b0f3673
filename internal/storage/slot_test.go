// internal/storage/slot_test.go
package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/catalog-manager/internal/config"
)

// exerciseSlot checks the behaviour every backend shares.
func exerciseSlot(t *testing.T, slot Slot) {
	t.Helper()
	ctx := context.Background()

	_, err := slot.Load(ctx)
	assert.ErrorIs(t, err, ErrSlotEmpty)

	require.NoError(t, slot.Save(ctx, []byte(`[{"name":"Arroz"}]`)))
	data, err := slot.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, `[{"name":"Arroz"}]`, string(data))

	require.NoError(t, slot.Save(ctx, []byte(`[]`)))
	data, err = slot.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))
}

func TestMemorySlot(t *testing.T) {
	exerciseSlot(t, NewMemorySlot())
}

func TestMemorySlot_ReturnsCopies(t *testing.T) {
	slot := NewMemorySlotWith([]byte("abc"))
	data, err := slot.Load(context.Background())
	require.NoError(t, err)
	data[0] = 'x'

	again, err := slot.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}

func TestFileSlot(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	slot := NewFileSlot(dir, "product_manager_data")
	assert.Equal(t, filepath.Join(dir, "product_manager_data.json"), slot.Path())

	exerciseSlot(t, slot)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temp files are left behind")
	assert.Equal(t, "product_manager_data.json", entries[0].Name())
}

func TestFileSlot_CancelledContext(t *testing.T) {
	slot := NewFileSlot(t.TempDir(), "k")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, slot.Save(ctx, []byte("[]")), context.Canceled)
	_, err := slot.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRedisSlot(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	slot := NewRedisSlot(client, "product_manager_data")
	defer slot.Close()

	exerciseSlot(t, slot)

	stored, err := mr.Get("product_manager_data")
	require.NoError(t, err)
	assert.Equal(t, "[]", stored)
}

func TestRedisSlot_KeysAreIsolated(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	a := NewRedisSlot(client, "a")
	b := NewRedisSlot(client, "b")
	require.NoError(t, a.Save(context.Background(), []byte("1")))

	_, err := b.Load(context.Background())
	assert.ErrorIs(t, err, ErrSlotEmpty)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("file", func(t *testing.T) {
		cfg := &config.Config{Store: config.StoreConfig{Backend: config.BackendFile, Key: "k", FileDir: t.TempDir()}}
		slot, err := Open(ctx, cfg, nil)
		require.NoError(t, err)
		assert.IsType(t, &FileSlot{}, slot)
	})

	t.Run("memory", func(t *testing.T) {
		cfg := &config.Config{Store: config.StoreConfig{Backend: config.BackendMemory, Key: "k"}}
		slot, err := Open(ctx, cfg, nil)
		require.NoError(t, err)
		assert.IsType(t, &MemorySlot{}, slot)
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cfg := &config.Config{
			Store: config.StoreConfig{Backend: config.BackendRedis, Key: "k"},
			Redis: config.RedisConfig{Host: mr.Host(), Port: mr.Port()},
		}
		slot, err := Open(ctx, cfg, nil)
		require.NoError(t, err)
		defer slot.Close()
		assert.IsType(t, &RedisSlot{}, slot)
	})

	t.Run("postgres without db", func(t *testing.T) {
		cfg := &config.Config{Store: config.StoreConfig{Backend: config.BackendPostgres, Key: "k"}}
		_, err := Open(ctx, cfg, nil)
		assert.Error(t, err)
	})

	t.Run("unknown", func(t *testing.T) {
		cfg := &config.Config{Store: config.StoreConfig{Backend: "s3", Key: "k"}}
		_, err := Open(ctx, cfg, nil)
		assert.Error(t, err)
	})
}
