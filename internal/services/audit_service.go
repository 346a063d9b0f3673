// internal/services/audit_service.go
package services

import (
	"context"
	"fmt"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/javajoker/catalog-manager/internal/models"
)

// AuditService writes catalog mutations to the audit_logs table. With a nil
// database every call is a no-op.
type AuditService struct {
	db *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

func (s *AuditService) Enabled() bool {
	return s != nil && s.db != nil
}

// Record never fails the caller; write errors are logged.
func (s *AuditService) Record(ctx context.Context, action models.AuditAction, productIDs []string) {
	if !s.Enabled() {
		return
	}

	entry := &models.AuditLog{
		Action:     action,
		ProductIDs: pq.StringArray(productIDs),
		Count:      len(productIDs),
	}
	if entry.ProductIDs == nil {
		entry.ProductIDs = pq.StringArray{}
	}

	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		logrus.WithError(err).WithField("action", action).Error("Failed to create audit log")
	}
}

// Recent returns the latest entries, newest first.
func (s *AuditService) Recent(ctx context.Context, limit int) ([]models.AuditLog, error) {
	if !s.Enabled() {
		return []models.AuditLog{}, nil
	}
	if limit < 1 || limit > 500 {
		limit = 50
	}

	var logs []models.AuditLog
	if err := s.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch audit logs: %w", err)
	}
	return logs, nil
}

// ForProduct returns the entries that touched productID, newest first.
func (s *AuditService) ForProduct(ctx context.Context, productID string) ([]models.AuditLog, error) {
	if !s.Enabled() {
		return []models.AuditLog{}, nil
	}

	var logs []models.AuditLog
	if err := s.db.WithContext(ctx).
		Where("? = ANY(product_ids)", productID).
		Order("created_at DESC").
		Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch audit logs: %w", err)
	}
	return logs, nil
}
