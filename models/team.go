package models

import "time"

type Team struct {
	ID               int       `json:"id" db:"id"`
	Name             string    `json:"name" db:"name"`
	RegistrationDate time.Time `json:"registration_date" db:"registration_date"`
	GroupNumber      int       `json:"group_number" db:"group_number"`
	TotalGoals       int       `json:"total_goals" db:"total_goals"`
	MatchPoints      int       `json:"match_points" db:"match_points"`
	AlternatePoints  int       `json:"alternate_points" db:"alternate_points"`
	MatchesPlayed    int       `json:"matches_played" db:"matches_played"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`

	LogoKey *string `json:"-" db:"logo_key"`
	LogoURL *string `json:"logo_url,omitempty" db:"-"`
}
