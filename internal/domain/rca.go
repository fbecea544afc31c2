package domain

import (
	"strings"
	"time"
)

// RCA holds the root-cause analysis for an incident. At most one RCA exists
// per incident; upserts replace the record wholesale. Partial drafts are
// allowed: completeness is only enforced when the incident is closed.
type RCA struct {
	ID                  string    `json:"id"`
	IncidentID          string    `json:"incident_id"`
	RootCause           string    `json:"root_cause"`
	ContributingFactors string    `json:"contributing_factors"`
	CorrectiveActions   string    `json:"corrective_actions"`
	PreventionActions   string    `json:"prevention_actions"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// IsComplete reports whether all four fields are non-empty after trimming
// whitespace. A complete RCA is the gate for closing an incident.
func (r *RCA) IsComplete() bool {
	for _, field := range []string{
		r.RootCause,
		r.ContributingFactors,
		r.CorrectiveActions,
		r.PreventionActions,
	} {
		if strings.TrimSpace(field) == "" {
			return false
		}
	}
	return true
}
