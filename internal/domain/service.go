package domain

import "time"

// SLAPolicy maps a severity level to the allowed number of hours from
// incident creation to resolution.
type SLAPolicy map[Severity]int

// Service represents a service that incidents are recorded against.
type Service struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerTeam string    `json:"owner_team"`
	SLAPolicy SLAPolicy `json:"sla_policy"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Runbook is an ordered sequence of remediation steps owned by a service.
// Read-only reference data: applying a step only records a timeline event,
// it does not mark any state on the runbook itself.
type Runbook struct {
	ID        string    `json:"id"`
	ServiceID string    `json:"service_id"`
	Title     string    `json:"title"`
	Steps     []string  `json:"steps"`
	CreatedAt time.Time `json:"created_at"`
}
