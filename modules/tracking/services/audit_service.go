package services

import (
	"context"
	"errors"

	"github.com/pixelport/pixelport/modules/tracking/domain/entities/auditlog"
)

// AuditService exposes the audit trail to the dashboard. The pipeline itself
// never reads these records.
type AuditService struct {
	repo auditlog.Repository
}

func NewAuditService(repo auditlog.Repository) *AuditService {
	return &AuditService{repo: repo}
}

func (s *AuditService) List(ctx context.Context, params *auditlog.FindParams) ([]*auditlog.AuditLog, int64, error) {
	if params == nil {
		params = &auditlog.FindParams{}
	}
	logs, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.repo.Count(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	return logs, count, nil
}

func (s *AuditService) Record(ctx context.Context, entry *auditlog.AuditLog) error {
	if entry == nil {
		return errors.New("audit entry is required")
	}
	return s.repo.Create(ctx, entry)
}
