// Package schedule generates fixture lists for a group's registered
// teams. Generation is pure: nothing is persisted, the ledger only learns
// about a fixture once its result is submitted.
package schedule

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Dosada05/football-championship/models"
)

var ErrNotEnoughTeams = errors.New("not enough teams for a fixture list")

type Fixture struct {
	Order        int    `json:"order"`
	Leg          int    `json:"leg"`
	HomeTeamID   int    `json:"home_team_id"`
	HomeTeamName string `json:"home_team_name"`
	AwayTeamID   int    `json:"away_team_id"`
	AwayTeamName string `json:"away_team_name"`
}

// RoundRobin pairs every team against every other team once per leg.
// legs must be 1 (single round-robin) or 2 (return fixtures with home and
// away swapped).
func RoundRobin(teams []*models.Team, legs int) ([]Fixture, error) {
	if len(teams) < 2 {
		return nil, fmt.Errorf("%w: found %d, min 2 required", ErrNotEnoughTeams, len(teams))
	}
	if legs != 1 && legs != 2 {
		return nil, fmt.Errorf("legs must be 1 or 2, got %d", legs)
	}

	firstLegCount := len(teams) * (len(teams) - 1) / 2
	fixtures := make([]Fixture, 0, firstLegCount*legs)
	order := 0

	for i := 0; i < len(teams); i++ {
		for j := i + 1; j < len(teams); j++ {
			order++
			fixtures = append(fixtures, Fixture{
				Order:        order,
				Leg:          1,
				HomeTeamID:   teams[i].ID,
				HomeTeamName: teams[i].Name,
				AwayTeamID:   teams[j].ID,
				AwayTeamName: teams[j].Name,
			})

			if legs == 2 {
				fixtures = append(fixtures, Fixture{
					Order:        order + firstLegCount,
					Leg:          2,
					HomeTeamID:   teams[j].ID,
					HomeTeamName: teams[j].Name,
					AwayTeamID:   teams[i].ID,
					AwayTeamName: teams[i].Name,
				})
			}
		}
	}

	if legs == 2 {
		// Return fixtures were appended interleaved; restore play order.
		sort.Slice(fixtures, func(i, j int) bool {
			return fixtures[i].Order < fixtures[j].Order
		})
	}
	return fixtures, nil
}
