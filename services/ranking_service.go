package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/Dosada05/football-championship/models"
	"github.com/Dosada05/football-championship/repositories"
)

// DefaultProgressionCutoff is how many teams per group advance to the
// next stage. The cutoff is fixed regardless of group size; smaller
// groups progress everyone.
const DefaultProgressionCutoff = 4

type RankingConfig struct {
	ProgressionCutoff int
}

type RankingService interface {
	// ComputeStandings returns the group's current aggregates in stable
	// insertion order, without ranks or outcomes.
	ComputeStandings(ctx context.Context, groupNumber int) ([]*models.RankingEntry, error)
	// RankGroup orders the standings by the tie-break chain and assigns
	// 1-based ranks and progression outcomes.
	RankGroup(ctx context.Context, groupNumber int) ([]*models.RankingEntry, error)
	GetOutcomeForTeam(ctx context.Context, teamName string, groupNumber int) (bool, error)
}

type rankingService struct {
	teamRepo repositories.TeamRepository
	audit    AuditService
	cutoff   int
}

func NewRankingService(teamRepo repositories.TeamRepository, audit AuditService, cfg RankingConfig) RankingService {
	cutoff := cfg.ProgressionCutoff
	if cutoff <= 0 {
		cutoff = DefaultProgressionCutoff
	}
	return &rankingService{
		teamRepo: teamRepo,
		audit:    audit,
		cutoff:   cutoff,
	}
}

func (s *rankingService) ComputeStandings(ctx context.Context, groupNumber int) ([]*models.RankingEntry, error) {
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

	entries := make([]*models.RankingEntry, 0, len(teams))
	for _, team := range teams {
		entries = append(entries, &models.RankingEntry{
			TeamID:           team.ID,
			Name:             team.Name,
			MatchPoints:      team.MatchPoints,
			TotalGoals:       team.TotalGoals,
			AlternatePoints:  team.AlternatePoints,
			MatchesPlayed:    team.MatchesPlayed,
			RegistrationDate: team.RegistrationDate,
		})
	}
	return entries, nil
}

func (s *rankingService) RankGroup(ctx context.Context, groupNumber int) ([]*models.RankingEntry, error) {
	entries, err := s.ComputeStandings(ctx, groupNumber)
	if err != nil {
		return nil, err
	}

	// Tie-break chain: match points, total goals, alternate points (all
	// descending), then earliest registration, then name. The last two
	// keys make the order total, so repeated calls agree byte for byte.
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.MatchPoints != b.MatchPoints {
			return a.MatchPoints > b.MatchPoints
		}
		if a.TotalGoals != b.TotalGoals {
			return a.TotalGoals > b.TotalGoals
		}
		if a.AlternatePoints != b.AlternatePoints {
			return a.AlternatePoints > b.AlternatePoints
		}
		if !a.RegistrationDate.Equal(b.RegistrationDate) {
			return a.RegistrationDate.Before(b.RegistrationDate)
		}
		return a.Name < b.Name
	})

	for i, entry := range entries {
		entry.Rank = i + 1
		if i < s.cutoff {
			entry.Outcome = models.OutcomeProgressed
		} else {
			entry.Outcome = models.OutcomeEliminated
		}
	}

	s.audit.Record(ctx, "GET", "Team", fmt.Sprintf("ranked group %d", groupNumber))
	return entries, nil
}

func (s *rankingService) GetOutcomeForTeam(ctx context.Context, teamName string, groupNumber int) (bool, error) {
	entries, err := s.RankGroup(ctx, groupNumber)
	if err != nil {
		return false, err
	}
	for _, entry := range entries {
		if entry.Name == teamName {
			return entry.Outcome == models.OutcomeProgressed, nil
		}
	}
	return false, fmt.Errorf("%w: %s is not in group %d", ErrTeamNotFound, teamName, groupNumber)
}
