package models

import "time"

type Outcome string

const (
	OutcomeProgressed Outcome = "progressed"
	OutcomeEliminated Outcome = "eliminated"
)

// RankingEntry is derived from team state per query and never persisted.
// Rank is 1-based; it is zero on unranked standings output.
type RankingEntry struct {
	TeamID           int       `json:"team_id"`
	Name             string    `json:"name"`
	MatchPoints      int       `json:"match_points"`
	TotalGoals       int       `json:"total_goals"`
	AlternatePoints  int       `json:"alternate_points"`
	MatchesPlayed    int       `json:"matches_played"`
	RegistrationDate time.Time `json:"registration_date"`
	Rank             int       `json:"rank,omitempty"`
	Outcome          Outcome   `json:"outcome,omitempty"`
}
