package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Dosada05/football-championship/models"
	"github.com/Dosada05/football-championship/repositories"
	"github.com/Dosada05/football-championship/storage"
	"github.com/jonboulle/clockwork"
)

const (
	MinGroupNumber = 1
	MaxGroupNumber = 2

	// Registration dates arrive as day/month and are anchored to the
	// current year.
	registrationDateLayout = "02/01/2006"
	patchDateLayout        = "2006-01-02"
)

type CreateTeamInput struct {
	Name             string `json:"name"`
	RegistrationDate string `json:"registration_date"` // dd/MM
	GroupNumber      int    `json:"group_number"`
}

// UpdateTeamInput is an absolute patch: nil fields keep their stored
// value. Renames are metadata-only; the match ledger references teams by
// id and is never touched.
type UpdateTeamInput struct {
	TeamName            string  `json:"team_name"`
	NewName             *string `json:"new_name"`
	NewRegistrationDate *string `json:"new_registration_date"` // yyyy-MM-dd
	GroupNumber         *int    `json:"group_number"`
	TotalGoals          *int    `json:"total_goals"`
	MatchPoints         *int    `json:"match_points"`
	AlternatePoints     *int    `json:"alternate_points"`
	MatchesPlayed       *int    `json:"matches_played"`
}

// TeamBatchResult reports a bulk registration: valid entries are stored,
// invalid ones are returned as per-entry messages. One bad entry never
// blocks the rest of the batch.
type TeamBatchResult struct {
	Teams  []*models.Team `json:"teams"`
	Errors []string       `json:"errors"`
}

type TeamService interface {
	AddTeams(ctx context.Context, inputs []CreateTeamInput) (*TeamBatchResult, error)
	GetTeamByName(ctx context.Context, name string) (*models.Team, error)
	ListTeamsByGroup(ctx context.Context, groupNumber int) ([]*models.Team, error)
	UpdateTeam(ctx context.Context, input UpdateTeamInput) (*models.Team, error)
	DeleteTeam(ctx context.Context, name string) error
	UploadLogo(ctx context.Context, teamName, contentType string, file io.Reader) (*models.Team, error)
	DeleteLogo(ctx context.Context, teamName string) (*models.Team, error)
}

type teamService struct {
	teamRepo repositories.TeamRepository
	audit    AuditService
	uploader storage.FileUploader
	clock    clockwork.Clock
}

func NewTeamService(
	teamRepo repositories.TeamRepository,
	audit AuditService,
	uploader storage.FileUploader,
	clock clockwork.Clock,
) TeamService {
	return &teamService{
		teamRepo: teamRepo,
		audit:    audit,
		uploader: uploader,
		clock:    clock,
	}
}

func (s *teamService) AddTeams(ctx context.Context, inputs []CreateTeamInput) (*TeamBatchResult, error) {
	result := &TeamBatchResult{
		Teams:  make([]*models.Team, 0, len(inputs)),
		Errors: make([]string, 0),
	}

	seen := make(map[string]struct{}, len(inputs))
	for _, input := range inputs {
		team, err := s.validateCreateInput(ctx, input, seen)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Error processing team for %s: %s", input.Name, err))
			continue
		}

		if err := s.teamRepo.Create(ctx, nil, team); err != nil {
			if errors.Is(err, repositories.ErrTeamNameConflict) {
				result.Errors = append(result.Errors, fmt.Sprintf("Error processing team for %s: %s", input.Name, ErrTeamNameConflict))
				continue
			}
			return nil, fmt.Errorf("failed to create team %q: %w", input.Name, err)
		}
		seen[team.Name] = struct{}{}
		result.Teams = append(result.Teams, team)
	}

	if len(result.Teams) > 0 {
		s.audit.Record(ctx, "INSERT", "Team", fmt.Sprintf("registered %d team(s)", len(result.Teams)))
	}
	return result, nil
}

func (s *teamService) validateCreateInput(ctx context.Context, input CreateTeamInput, seen map[string]struct{}) (*models.Team, error) {
	if input.Name == "" {
		return nil, ErrTeamNameRequired
	}
	if _, dup := seen[input.Name]; dup {
		return nil, ErrTeamNameConflict
	}

	date, err := s.parseRegistrationDate(input.RegistrationDate)
	if err != nil {
		return nil, err
	}

	if input.GroupNumber < MinGroupNumber || input.GroupNumber > MaxGroupNumber {
		return nil, ErrGroupNumberInvalid
	}

	if _, err := s.teamRepo.GetByName(ctx, nil, input.Name); err == nil {
		return nil, ErrTeamNameConflict
	} else if !errors.Is(err, repositories.ErrTeamNotFound) {
		return nil, fmt.Errorf("failed to check team name %q: %w", input.Name, err)
	}

	return &models.Team{
		Name:             input.Name,
		RegistrationDate: date,
		GroupNumber:      input.GroupNumber,
	}, nil
}

func (s *teamService) parseRegistrationDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: date is empty", ErrRegistrationDateInvalid)
	}
	now := s.clock.Now()
	date, err := time.Parse(registrationDateLayout, fmt.Sprintf("%s/%d", raw, now.Year()))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: expected dd/MM, got %q", ErrRegistrationDateInvalid, raw)
	}
	if date.After(now) {
		return time.Time{}, ErrRegistrationDateInFuture
	}
	return date, nil
}

func (s *teamService) GetTeamByName(ctx context.Context, name string) (*models.Team, error) {
	team, err := s.teamRepo.GetByName(ctx, nil, name)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %q: %w", name, err)
	}
	populateTeamLogoURL(team, s.uploader)
	s.audit.Record(ctx, "GET", "Team", team.Name)
	return team, nil
}

func (s *teamService) ListTeamsByGroup(ctx context.Context, groupNumber int) ([]*models.Team, error) {
	if groupNumber < MinGroupNumber || groupNumber > MaxGroupNumber {
		return nil, ErrGroupNotFound
	}
	teams, err := s.teamRepo.ListByGroup(ctx, nil, groupNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams in group %d: %w", groupNumber, err)
	}
	if len(teams) == 0 {
		return nil, ErrGroupNotFound
	}
	for _, team := range teams {
		populateTeamLogoURL(team, s.uploader)
	}
	return teams, nil
}

func (s *teamService) UpdateTeam(ctx context.Context, input UpdateTeamInput) (*models.Team, error) {
	team, err := s.teamRepo.GetByName(ctx, nil, input.TeamName)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %q: %w", input.TeamName, err)
	}

	if input.NewName != nil && *input.NewName != team.Name {
		if *input.NewName == "" {
			return nil, ErrTeamNameRequired
		}
		if _, err := s.teamRepo.GetByName(ctx, nil, *input.NewName); err == nil {
			return nil, ErrTeamNameConflict
		} else if !errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, fmt.Errorf("failed to check team name %q: %w", *input.NewName, err)
		}
		team.Name = *input.NewName
	}

	if input.NewRegistrationDate != nil {
		date, err := time.Parse(patchDateLayout, *input.NewRegistrationDate)
		if err != nil {
			return nil, fmt.Errorf("%w: expected yyyy-MM-dd, got %q", ErrRegistrationDateInvalid, *input.NewRegistrationDate)
		}
		if date.After(s.clock.Now()) {
			return nil, ErrRegistrationDateInFuture
		}
		team.RegistrationDate = date
	}

	if input.GroupNumber != nil {
		if *input.GroupNumber < MinGroupNumber || *input.GroupNumber > MaxGroupNumber {
			return nil, ErrGroupNumberInvalid
		}
		team.GroupNumber = *input.GroupNumber
	}

	for _, field := range []*int{input.TotalGoals, input.MatchPoints, input.AlternatePoints, input.MatchesPlayed} {
		if field != nil && *field < 0 {
			return nil, ErrNegativeStats
		}
	}
	if input.TotalGoals != nil {
		team.TotalGoals = *input.TotalGoals
	}
	if input.MatchPoints != nil {
		team.MatchPoints = *input.MatchPoints
	}
	if input.AlternatePoints != nil {
		team.AlternatePoints = *input.AlternatePoints
	}
	if input.MatchesPlayed != nil {
		team.MatchesPlayed = *input.MatchesPlayed
	}

	if err := s.teamRepo.Update(ctx, nil, team); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTeamNameConflict):
			return nil, ErrTeamNameConflict
		case errors.Is(err, repositories.ErrTeamNotFound):
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to update team %q: %w", input.TeamName, err)
	}

	populateTeamLogoURL(team, s.uploader)
	s.audit.Record(ctx, "EDIT", "Team", team.Name)
	return team, nil
}

// DeleteTeam removes the team record only. Historical matches are
// retained so the opponents' aggregates keep their provenance.
func (s *teamService) DeleteTeam(ctx context.Context, name string) error {
	team, err := s.teamRepo.GetByName(ctx, nil, name)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to get team %q: %w", name, err)
	}

	if err := s.teamRepo.Delete(ctx, nil, team.ID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to delete team %q: %w", name, err)
	}

	if team.LogoKey != nil && s.uploader != nil {
		// Best effort, an orphaned crest is not worth failing the delete.
		_ = s.uploader.Delete(ctx, *team.LogoKey)
	}

	s.audit.Record(ctx, "DELETE", "Team", team.Name)
	return nil
}

func (s *teamService) UploadLogo(ctx context.Context, teamName, contentType string, file io.Reader) (*models.Team, error) {
	if s.uploader == nil {
		return nil, ErrLogoStorageUnavailable
	}

	team, err := s.teamRepo.GetByName(ctx, nil, teamName)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %q: %w", teamName, err)
	}

	key := fmt.Sprintf("teams/%d/logo", team.ID)
	uploaded, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload logo for team %q: %w", teamName, err)
	}

	team.LogoKey = &uploaded.Key
	if err := s.teamRepo.Update(ctx, nil, team); err != nil {
		return nil, fmt.Errorf("failed to store logo key for team %q: %w", teamName, err)
	}

	populateTeamLogoURL(team, s.uploader)
	s.audit.Record(ctx, "UPDATE", "Team", fmt.Sprintf("%s: logo uploaded", team.Name))
	return team, nil
}

func (s *teamService) DeleteLogo(ctx context.Context, teamName string) (*models.Team, error) {
	if s.uploader == nil {
		return nil, ErrLogoStorageUnavailable
	}

	team, err := s.teamRepo.GetByName(ctx, nil, teamName)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %q: %w", teamName, err)
	}
	if team.LogoKey == nil || *team.LogoKey == "" {
		return nil, ErrLogoNotFound
	}

	if err := s.uploader.Delete(ctx, *team.LogoKey); err != nil {
		return nil, fmt.Errorf("failed to delete logo for team %q: %w", teamName, err)
	}

	team.LogoKey = nil
	team.LogoURL = nil
	if err := s.teamRepo.Update(ctx, nil, team); err != nil {
		return nil, fmt.Errorf("failed to clear logo key for team %q: %w", teamName, err)
	}

	s.audit.Record(ctx, "UPDATE", "Team", fmt.Sprintf("%s: logo removed", team.Name))
	return team, nil
}
