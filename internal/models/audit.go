// internal/models/audit.go
package models

import (
	"time"

	"github.com/lib/pq"
)

// AuditLog records one mutating catalog operation.
type AuditLog struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	Action     AuditAction    `json:"action" gorm:"type:varchar(32);not null;index"`
	ProductIDs pq.StringArray `json:"product_ids" gorm:"type:text[]"`
	Count      int            `json:"count" gorm:"not null;default:0"`
	CreatedAt  time.Time      `json:"created_at" gorm:"index"`
}
