package services

import (
	"context"

	"github.com/lottopantera/draw-engine/internal/models"
	"github.com/lottopantera/draw-engine/internal/repositories"
)

// Compile-time check to ensure AuditServiceImpl implements AuditService
var _ AuditService = (*AuditServiceImpl)(nil)

// AuditServiceImpl exposes read access to the append-only audit log. Writes
// go through the owning services so they stay ordered with the mutations
// they record.
type AuditServiceImpl struct {
	auditRepo repositories.AuditRepository
}

// NewAuditService creates a new AuditServiceImpl
func NewAuditService(auditRepo repositories.AuditRepository) *AuditServiceImpl {
	return &AuditServiceImpl{auditRepo: auditRepo}
}

// GetBySubject lists entries for one draw or template
func (s *AuditServiceImpl) GetBySubject(ctx context.Context, subjectID string, page, limit int) ([]*models.AuditEntry, error) {
	return s.auditRepo.FindBySubject(ctx, subjectID, page, limit)
}

// GetByAction lists entries by action kind
func (s *AuditServiceImpl) GetByAction(ctx context.Context, action models.AuditAction, page, limit int) ([]*models.AuditEntry, error) {
	return s.auditRepo.FindByAction(ctx, action, page, limit)
}

// List lists all entries, newest first
func (s *AuditServiceImpl) List(ctx context.Context, page, limit int) ([]*models.AuditEntry, error) {
	return s.auditRepo.FindAll(ctx, page, limit)
}
