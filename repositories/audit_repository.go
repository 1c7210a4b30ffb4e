package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/Dosada05/football-championship/models"
)

type AuditLogRepository interface {
	Create(ctx context.Context, exec SQLExecutor, entry *models.AuditLog) error
	ListRecent(ctx context.Context, exec SQLExecutor, limit int) ([]*models.AuditLog, error)
	DeleteOlderThan(ctx context.Context, exec SQLExecutor, cutoff time.Time) (int64, error)
}

type postgresAuditLogRepository struct {
	db *sql.DB
}

func NewPostgresAuditLogRepository(db *sql.DB) AuditLogRepository {
	return &postgresAuditLogRepository{db: db}
}

func (r *postgresAuditLogRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresAuditLogRepository) Create(ctx context.Context, exec SQLExecutor, entry *models.AuditLog) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO audit_logs (action, entity_name, details, performed_by, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	return executor.QueryRowContext(ctx, query,
		entry.Action, entry.EntityName, entry.Details, entry.PerformedBy, entry.CreatedAt,
	).Scan(&entry.ID)
}

func (r *postgresAuditLogRepository) ListRecent(ctx context.Context, exec SQLExecutor, limit int) ([]*models.AuditLog, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, action, entity_name, details, performed_by, created_at
		FROM audit_logs
		ORDER BY id DESC
		LIMIT $1`

	rows, err := executor.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*models.AuditLog, 0)
	for rows.Next() {
		var e models.AuditLog
		if err := rows.Scan(&e.ID, &e.Action, &e.EntityName, &e.Details, &e.PerformedBy, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *postgresAuditLogRepository) DeleteOlderThan(ctx context.Context, exec SQLExecutor, cutoff time.Time) (int64, error) {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `DELETE FROM audit_logs WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
