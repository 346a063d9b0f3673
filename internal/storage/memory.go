// internal/storage/memory.go
package storage

import (
	"context"
	"sync"
)

type MemorySlot struct {
	mu   sync.RWMutex
	data []byte
	set  bool

	// FailSave, when set, is returned by every Save call.
	FailSave error
}

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

// NewMemorySlotWith returns a slot pre-populated with data.
func NewMemorySlotWith(data []byte) *MemorySlot {
	s := &MemorySlot{}
	s.data = append([]byte(nil), data...)
	s.set = true
	return s
}

func (s *MemorySlot) Load(ctx context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.set {
		return nil, ErrSlotEmpty
	}
	return append([]byte(nil), s.data...), nil
}

func (s *MemorySlot) Save(ctx context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailSave != nil {
		return s.FailSave
	}
	s.data = append([]byte(nil), data...)
	s.set = true
	return nil
}

func (s *MemorySlot) Close() error {
	return nil
}
