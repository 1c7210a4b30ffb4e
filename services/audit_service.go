package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/Dosada05/football-championship/models"
	"github.com/Dosada05/football-championship/repositories"
	"github.com/jonboulle/clockwork"
)

const auditPerformedBy = "admin"

// AuditService keeps a trail of every read and mutation on teams and
// matches. Recording is best-effort: a failed audit write is logged and
// never fails the business operation it accompanies.
type AuditService interface {
	Record(ctx context.Context, action, entityName, details string)
	ListRecent(ctx context.Context, limit int) ([]*models.AuditLog, error)
	PruneOlderThan(ctx context.Context, retention time.Duration) (int64, error)
}

type auditService struct {
	auditRepo repositories.AuditLogRepository
	clock     clockwork.Clock
	logger    *slog.Logger
}

func NewAuditService(auditRepo repositories.AuditLogRepository, clock clockwork.Clock, logger *slog.Logger) AuditService {
	return &auditService{
		auditRepo: auditRepo,
		clock:     clock,
		logger:    logger,
	}
}

func (s *auditService) Record(ctx context.Context, action, entityName, details string) {
	entry := &models.AuditLog{
		Action:      action,
		EntityName:  entityName,
		Details:     details,
		PerformedBy: auditPerformedBy,
		CreatedAt:   s.clock.Now(),
	}
	if err := s.auditRepo.Create(ctx, nil, entry); err != nil {
		s.logger.Warn("failed to write audit log",
			slog.String("action", action),
			slog.String("entity", entityName),
			slog.Any("error", err),
		)
	}
}

func (s *auditService) ListRecent(ctx context.Context, limit int) ([]*models.AuditLog, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.auditRepo.ListRecent(ctx, nil, limit)
}

func (s *auditService) PruneOlderThan(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := s.clock.Now().Add(-retention)
	return s.auditRepo.DeleteOlderThan(ctx, nil, cutoff)
}
