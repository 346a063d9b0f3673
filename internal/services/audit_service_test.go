// internal/services/audit_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/catalog-manager/internal/models"
)

func TestAuditService_DisabledIsNoop(t *testing.T) {
	s := NewAuditService(nil)
	assert.False(t, s.Enabled())

	ctx := context.Background()
	s.Record(ctx, models.AuditActionSave, []string{"a"})

	logs, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, logs)

	logs, err = s.ForProduct(ctx, "a")
	require.NoError(t, err)
	assert.Empty(t, logs)

	var nilService *AuditService
	assert.False(t, nilService.Enabled())
}
