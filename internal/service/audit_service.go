package service

import (
	"context"
	"fmt"

	"cardvault/internal/model"
	"cardvault/internal/repository"
)

// auditListLimit caps the admin audit view at the most recent entries.
const auditListLimit = 100

// AuditService exposes the admin read path over the audit trail. There is
// deliberately no write path here; entries are only ever appended inside
// the mutating services' transactions.
type AuditService interface {
	Recent(ctx context.Context) ([]model.AuditLog, error)
}

type auditService struct {
	logs repository.AuditLogRepository
}

// NewAuditService creates a new audit service.
func NewAuditService(logs repository.AuditLogRepository) AuditService {
	return &auditService{logs: logs}
}

// Recent returns the latest audit entries, newest first.
func (s *auditService) Recent(ctx context.Context) ([]model.AuditLog, error) {
	entries, err := s.logs.ListRecent(ctx, auditListLimit)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	return entries, nil
}
