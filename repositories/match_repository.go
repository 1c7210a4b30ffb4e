package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/football-championship/models"
)

var ErrMatchNotFound = errors.New("match not found")

type MatchRepository interface {
	CreateBatch(ctx context.Context, exec SQLExecutor, matches []*models.Match) error
	ListRecent(ctx context.Context, exec SQLExecutor, limit int) ([]*models.Match, error)
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresMatchRepository) CreateBatch(ctx context.Context, exec SQLExecutor, matches []*models.Match) error {
	if len(matches) == 0 {
		return nil
	}
	executor := r.getExecutor(exec)

	stmt, err := executor.PrepareContext(ctx, `
		INSERT INTO matches (team_a_id, team_b_id, team_a_goals, team_b_goals)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`)
	if err != nil {
		return fmt.Errorf("CreateBatch failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, match := range matches {
		err = stmt.QueryRowContext(ctx,
			match.TeamAID, match.TeamBID, match.TeamAGoals, match.TeamBGoals,
		).Scan(&match.ID, &match.CreatedAt)
		if err != nil {
			return fmt.Errorf("CreateBatch failed for teams %d vs %d: %w", match.TeamAID, match.TeamBID, err)
		}
	}
	return nil
}

func (r *postgresMatchRepository) ListRecent(ctx context.Context, exec SQLExecutor, limit int) ([]*models.Match, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT m.id, m.team_a_id, m.team_b_id, m.team_a_goals, m.team_b_goals, m.created_at,
		       COALESCE(ta.name, ''), COALESCE(tb.name, '')
		FROM matches m
		LEFT JOIN teams ta ON m.team_a_id = ta.id
		LEFT JOIN teams tb ON m.team_b_id = tb.id
		ORDER BY m.id DESC
		LIMIT $1`

	rows, err := executor.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		var m models.Match
		err := rows.Scan(
			&m.ID, &m.TeamAID, &m.TeamBID, &m.TeamAGoals, &m.TeamBGoals, &m.CreatedAt,
			&m.TeamAName, &m.TeamBName,
		)
		if err != nil {
			return nil, err
		}
		matches = append(matches, &m)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}
