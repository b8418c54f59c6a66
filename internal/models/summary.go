package models

import "time"

// InsertSummary describes the outcome of a single seeding run.
type InsertSummary struct {
	RunID     string        `json:"run_id"`
	Inserted  int           `json:"inserted"`
	IDs       []string      `json:"ids"`
	Store     string        `json:"store"`
	Target    string        `json:"target"` // database/collection or table
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}
