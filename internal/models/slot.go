// internal/models/slot.go
package models

import "time"

// KVSlot is one row of the PostgreSQL key-value table backing a store slot.
type KVSlot struct {
	Key       string    `gorm:"primaryKey;size:255"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (KVSlot) TableName() string {
	return "kv_slots"
}
