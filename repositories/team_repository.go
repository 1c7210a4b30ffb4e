package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/football-championship/models"
	"github.com/lib/pq"
)

var (
	ErrTeamNotFound     = errors.New("team not found")
	ErrTeamNameConflict = errors.New("team name conflict")
)

// TeamStatsDelta is the increment applied to a team's aggregates when a
// match result is recorded.
type TeamStatsDelta struct {
	TotalGoals      int
	MatchPoints     int
	AlternatePoints int
	MatchesPlayed   int
}

type TeamRepository interface {
	Create(ctx context.Context, exec SQLExecutor, team *models.Team) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Team, error)
	GetByName(ctx context.Context, exec SQLExecutor, name string) (*models.Team, error)
	ListByGroup(ctx context.Context, exec SQLExecutor, groupNumber int) ([]*models.Team, error)
	Update(ctx context.Context, exec SQLExecutor, team *models.Team) error
	Delete(ctx context.Context, exec SQLExecutor, id int) error
	ApplyStatsDelta(ctx context.Context, exec SQLExecutor, teamID int, delta TeamStatsDelta) error
	LockForUpdate(ctx context.Context, exec SQLExecutor, teamIDs []int) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const teamColumns = `id, name, registration_date, group_number, total_goals, match_points, alternate_points, matches_played, logo_key, created_at`

func (r *postgresTeamRepository) scanTeam(rowScanner interface{ Scan(...interface{}) error }) (*models.Team, error) {
	var t models.Team
	err := rowScanner.Scan(
		&t.ID, &t.Name, &t.RegistrationDate, &t.GroupNumber,
		&t.TotalGoals, &t.MatchPoints, &t.AlternatePoints, &t.MatchesPlayed,
		&t.LogoKey, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *postgresTeamRepository) Create(ctx context.Context, exec SQLExecutor, team *models.Team) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO teams (name, registration_date, group_number, total_goals, match_points, alternate_points, matches_played, logo_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query,
		team.Name, team.RegistrationDate, team.GroupNumber,
		team.TotalGoals, team.MatchPoints, team.AlternatePoints, team.MatchesPlayed,
		team.LogoKey,
	).Scan(&team.ID, &team.CreatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" && pqErr.Constraint == "teams_name_key" {
			return ErrTeamNameConflict
		}
		return fmt.Errorf("failed to insert team %q: %w", team.Name, err)
	}
	return nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Team, error) {
	executor := r.getExecutor(exec)
	query := `SELECT ` + teamColumns + ` FROM teams WHERE id = $1`
	return r.scanTeam(executor.QueryRowContext(ctx, query, id))
}

func (r *postgresTeamRepository) GetByName(ctx context.Context, exec SQLExecutor, name string) (*models.Team, error) {
	executor := r.getExecutor(exec)
	query := `SELECT ` + teamColumns + ` FROM teams WHERE name = $1`
	return r.scanTeam(executor.QueryRowContext(ctx, query, name))
}

func (r *postgresTeamRepository) ListByGroup(ctx context.Context, exec SQLExecutor, groupNumber int) ([]*models.Team, error) {
	executor := r.getExecutor(exec)
	// Insertion (id) order keeps standings output stable before ranking.
	query := `SELECT ` + teamColumns + ` FROM teams WHERE group_number = $1 ORDER BY id ASC`

	rows, err := executor.QueryContext(ctx, query, groupNumber)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]*models.Team, 0)
	for rows.Next() {
		t, errScan := r.scanTeam(rows)
		if errScan != nil {
			return nil, errScan
		}
		teams = append(teams, t)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *postgresTeamRepository) Update(ctx context.Context, exec SQLExecutor, team *models.Team) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE teams SET
			name = $1, registration_date = $2, group_number = $3,
			total_goals = $4, match_points = $5, alternate_points = $6, matches_played = $7,
			logo_key = $8
		WHERE id = $9`

	result, err := executor.ExecContext(ctx, query,
		team.Name, team.RegistrationDate, team.GroupNumber,
		team.TotalGoals, team.MatchPoints, team.AlternatePoints, team.MatchesPlayed,
		team.LogoKey,
		team.ID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" && pqErr.Constraint == "teams_name_key" {
			return ErrTeamNameConflict
		}
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) Delete(ctx context.Context, exec SQLExecutor, id int) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) ApplyStatsDelta(ctx context.Context, exec SQLExecutor, teamID int, delta TeamStatsDelta) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE teams SET
			total_goals = total_goals + $1,
			match_points = match_points + $2,
			alternate_points = alternate_points + $3,
			matches_played = matches_played + $4
		WHERE id = $5`

	result, err := executor.ExecContext(ctx, query,
		delta.TotalGoals, delta.MatchPoints, delta.AlternatePoints, delta.MatchesPlayed,
		teamID,
	)
	if err != nil {
		return fmt.Errorf("failed to apply stats delta to team %d: %w", teamID, err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

// LockForUpdate takes row locks on the given teams for the duration of the
// surrounding transaction. Callers must pass ids in a consistent order to
// avoid deadlocks between concurrent batches.
func (r *postgresTeamRepository) LockForUpdate(ctx context.Context, exec SQLExecutor, teamIDs []int) error {
	if len(teamIDs) == 0 {
		return nil
	}
	executor := r.getExecutor(exec)
	ids := make(pq.Int64Array, 0, len(teamIDs))
	for _, id := range teamIDs {
		ids = append(ids, int64(id))
	}

	rows, err := executor.QueryContext(ctx, `SELECT id FROM teams WHERE id = ANY($1) ORDER BY id FOR UPDATE`, ids)
	if err != nil {
		return fmt.Errorf("failed to lock team rows: %w", err)
	}
	defer rows.Close()

	locked := 0
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return err
		}
		locked++
	}
	if err = rows.Err(); err != nil {
		return err
	}
	if locked != len(teamIDs) {
		return ErrTeamNotFound
	}
	return nil
}
