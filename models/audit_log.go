package models

import "time"

type AuditLog struct {
	ID          int       `json:"id" db:"id"`
	Action      string    `json:"action" db:"action"`
	EntityName  string    `json:"entity_name" db:"entity_name"`
	Details     string    `json:"details" db:"details"`
	PerformedBy string    `json:"performed_by" db:"performed_by"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
