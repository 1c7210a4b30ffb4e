package models

import "time"

// Match is an append-only ledger entry. Teams are referenced by their
// stable ids so renames never touch recorded results; the names are
// denormalized for responses only.
type Match struct {
	ID         int       `json:"id" db:"id"`
	TeamAID    int       `json:"team_a_id" db:"team_a_id"`
	TeamBID    int       `json:"team_b_id" db:"team_b_id"`
	TeamAGoals int       `json:"team_a_goals" db:"team_a_goals"`
	TeamBGoals int       `json:"team_b_goals" db:"team_b_goals"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`

	TeamAName string `json:"team_a_name,omitempty" db:"-"`
	TeamBName string `json:"team_b_name,omitempty" db:"-"`
}
