package dto

import "time"

type RunResponse struct {
	RunID       string    `json:"run_id"`
	CountryCode string    `json:"country_code"`
	Seed        int64     `json:"seed"`
	AgentCount  int       `json:"agent_count"`
	PersonCount int       `json:"person_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type ListRunsResponse struct {
	Runs []RunResponse `json:"runs"`
}
