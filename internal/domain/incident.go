package domain

import "time"

// Severity represents the severity level of an incident.
type Severity string

// Severity levels, SEV1 being the most urgent.
const (
	SeveritySev1 Severity = "SEV1"
	SeveritySev2 Severity = "SEV2"
	SeveritySev3 Severity = "SEV3"
	SeveritySev4 Severity = "SEV4"
)

// Severities lists all valid severity levels.
var Severities = []Severity{SeveritySev1, SeveritySev2, SeveritySev3, SeveritySev4}

// IsValid checks if the severity is one of the four levels.
func (s Severity) IsValid() bool {
	switch s {
	case SeveritySev1, SeveritySev2, SeveritySev3, SeveritySev4:
		return true
	}
	return false
}

// IncidentStatus represents the lifecycle state of an incident.
type IncidentStatus string

// Incident statuses.
const (
	IncidentStatusNew           IncidentStatus = "New"
	IncidentStatusInvestigating IncidentStatus = "Investigating"
	IncidentStatusMitigated     IncidentStatus = "Mitigated"
	IncidentStatusResolved      IncidentStatus = "Resolved"
	IncidentStatusClosed        IncidentStatus = "Closed"
)

// AllowedTransitions is the full forward-only transition table.
// Closed is terminal; any edge not listed here is rejected.
var AllowedTransitions = map[IncidentStatus][]IncidentStatus{
	IncidentStatusNew:           {IncidentStatusInvestigating},
	IncidentStatusInvestigating: {IncidentStatusMitigated, IncidentStatusResolved},
	IncidentStatusMitigated:     {IncidentStatusResolved},
	IncidentStatusResolved:      {IncidentStatusClosed},
	IncidentStatusClosed:        {},
}

// IsValid checks if the status is a known lifecycle state.
func (s IncidentStatus) IsValid() bool {
	_, ok := AllowedTransitions[s]
	return ok
}

// CanTransitionTo reports whether target is a permitted next state.
// Re-requesting the current status is not permitted.
func (s IncidentStatus) CanTransitionTo(target IncidentStatus) bool {
	for _, next := range AllowedTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status has no outgoing edges.
func (s IncidentStatus) IsTerminal() bool {
	return len(AllowedTransitions[s]) == 0
}

// Incident represents a tracked incident against a service.
// SLAHours is frozen at creation time from the service policy and never
// changes, even if the policy is edited afterwards.
type Incident struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	Severity       Severity       `json:"severity"`
	Status         IncidentStatus `json:"status"`
	ServiceID      string         `json:"service_id"`
	AssigneeID     *string        `json:"assignee_id,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	AcknowledgedAt *time.Time     `json:"acknowledged_at,omitempty"`
	ResolvedAt     *time.Time     `json:"resolved_at,omitempty"`
	ClosedAt       *time.Time     `json:"closed_at,omitempty"`
	SLAHours       int            `json:"sla_hours"`
}

// SLADeadline returns the point in time by which the incident must be
// resolved to meet its SLA.
func (i *Incident) SLADeadline() time.Time {
	return i.CreatedAt.Add(time.Duration(i.SLAHours) * time.Hour)
}

// ResolutionEnd returns the time the incident stopped counting against its
// SLA: closed_at if set, otherwise resolved_at, otherwise now.
func (i *Incident) ResolutionEnd(now time.Time) time.Time {
	if i.ClosedAt != nil {
		return *i.ClosedAt
	}
	if i.ResolvedAt != nil {
		return *i.ResolvedAt
	}
	return now
}

// SLABreached reports whether the incident exceeded its SLA deadline.
// For an open incident this depends on now, so it is recomputed on every
// read and never cached.
func (i *Incident) SLABreached(now time.Time) bool {
	return i.ResolutionEnd(now).After(i.SLADeadline())
}

// IsOpen reports whether the incident still counts as open.
// Resolved-but-not-Closed counts as open.
func (i *Incident) IsOpen() bool {
	return i.Status != IncidentStatusClosed
}
