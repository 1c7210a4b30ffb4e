package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/Dosada05/football-championship/models"
	"github.com/Dosada05/football-championship/repositories"
)

type CreateMatchInput struct {
	TeamAName  string `json:"team_a_name"`
	TeamBName  string `json:"team_b_name"`
	TeamAGoals int    `json:"team_a_goals"`
	TeamBGoals int    `json:"team_b_goals"`
}

// MatchBatchResult reports a bulk submission. Unlike team registration the
// match batch is all-or-nothing: if any entry fails validation, no entry
// is applied and only the error list is returned.
type MatchBatchResult struct {
	Matches []*models.Match `json:"matches"`
	Errors  []string        `json:"errors"`
}

type MatchService interface {
	AddMatches(ctx context.Context, inputs []CreateMatchInput) (*MatchBatchResult, error)
	ListRecentMatches(ctx context.Context, limit int) ([]*models.Match, error)
}

type matchService struct {
	txRunner  repositories.TxRunner
	teamRepo  repositories.TeamRepository
	matchRepo repositories.MatchRepository
	audit     AuditService
	standard  PointsPolicy
	alternate PointsPolicy
}

func NewMatchService(
	txRunner repositories.TxRunner,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	audit AuditService,
	standard, alternate PointsPolicy,
) MatchService {
	return &matchService{
		txRunner:  txRunner,
		teamRepo:  teamRepo,
		matchRepo: matchRepo,
		audit:     audit,
		standard:  standard,
		alternate: alternate,
	}
}

type plannedMatch struct {
	match  *models.Match
	deltaA repositories.TeamStatsDelta
	deltaB repositories.TeamStatsDelta
}

func (s *matchService) AddMatches(ctx context.Context, inputs []CreateMatchInput) (*MatchBatchResult, error) {
	result := &MatchBatchResult{
		Matches: make([]*models.Match, 0, len(inputs)),
		Errors:  make([]string, 0),
	}

	planned := make([]plannedMatch, 0, len(inputs))
	for _, input := range inputs {
		plan, err := s.validateMatchInput(ctx, input)
		if err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Error processing match result for %s and %s: %s", input.TeamAName, input.TeamBName, err))
			continue
		}
		planned = append(planned, *plan)
	}

	// Reject the whole batch on any invalid entry, so a partially bad
	// submission never skews the standings.
	if len(result.Errors) > 0 {
		return result, nil
	}

	err := s.txRunner.RunInTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.teamRepo.LockForUpdate(ctx, exec, affectedTeamIDs(planned)); err != nil {
			return err
		}

		matches := make([]*models.Match, 0, len(planned))
		for i := range planned {
			matches = append(matches, planned[i].match)
		}
		if err := s.matchRepo.CreateBatch(ctx, exec, matches); err != nil {
			return err
		}

		for i := range planned {
			if err := s.teamRepo.ApplyStatsDelta(ctx, exec, planned[i].match.TeamAID, planned[i].deltaA); err != nil {
				return err
			}
			if err := s.teamRepo.ApplyStatsDelta(ctx, exec, planned[i].match.TeamBID, planned[i].deltaB); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			// A team disappeared between validation and commit.
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to record match batch: %w", err)
	}

	for i := range planned {
		result.Matches = append(result.Matches, planned[i].match)
	}
	s.audit.Record(ctx, "INSERT", "Match", fmt.Sprintf("recorded %d match(es)", len(result.Matches)))
	return result, nil
}

func (s *matchService) validateMatchInput(ctx context.Context, input CreateMatchInput) (*plannedMatch, error) {
	if input.TeamAName == input.TeamBName {
		return nil, ErrMatchSameTeam
	}
	if input.TeamAGoals < 0 || input.TeamBGoals < 0 {
		return nil, ErrNegativeGoals
	}

	teamA, err := s.resolveTeam(ctx, input.TeamAName)
	if err != nil {
		return nil, err
	}
	teamB, err := s.resolveTeam(ctx, input.TeamBName)
	if err != nil {
		return nil, err
	}

	return &plannedMatch{
		match: &models.Match{
			TeamAID:    teamA.ID,
			TeamBID:    teamB.ID,
			TeamAName:  teamA.Name,
			TeamBName:  teamB.Name,
			TeamAGoals: input.TeamAGoals,
			TeamBGoals: input.TeamBGoals,
		},
		deltaA: repositories.TeamStatsDelta{
			TotalGoals:      input.TeamAGoals,
			MatchPoints:     s.standard.Award(input.TeamAGoals, input.TeamBGoals),
			AlternatePoints: s.alternate.Award(input.TeamAGoals, input.TeamBGoals),
			MatchesPlayed:   1,
		},
		deltaB: repositories.TeamStatsDelta{
			TotalGoals:      input.TeamBGoals,
			MatchPoints:     s.standard.Award(input.TeamBGoals, input.TeamAGoals),
			AlternatePoints: s.alternate.Award(input.TeamBGoals, input.TeamAGoals),
			MatchesPlayed:   1,
		},
	}, nil
}

func (s *matchService) resolveTeam(ctx context.Context, name string) (*models.Team, error) {
	if name == "" {
		return nil, ErrTeamNameRequired
	}
	team, err := s.teamRepo.GetByName(ctx, nil, name)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrTeamNotFound, name)
		}
		return nil, fmt.Errorf("failed to resolve team %q: %w", name, err)
	}
	return team, nil
}

// affectedTeamIDs returns the unique team ids touched by the batch in
// ascending order, the locking order for every writer.
func affectedTeamIDs(planned []plannedMatch) []int {
	unique := make(map[int]struct{}, len(planned)*2)
	for i := range planned {
		unique[planned[i].match.TeamAID] = struct{}{}
		unique[planned[i].match.TeamBID] = struct{}{}
	}
	ids := make([]int, 0, len(unique))
	for id := range unique {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (s *matchService) ListRecentMatches(ctx context.Context, limit int) ([]*models.Match, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	matches, err := s.matchRepo.ListRecent(ctx, nil, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}
