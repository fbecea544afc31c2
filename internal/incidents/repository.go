package incidents

import (
	"context"

	"github.com/bissquit/incident-console/internal/domain"
	"github.com/jackc/pgx/v5"
)

// Repository defines the interface for incident storage. Timeline events are
// append-only and RCAs are replace-or-create; neither has a delete operation.
type Repository interface {
	GetIncident(ctx context.Context, id string) (*domain.Incident, error)
	ListIncidents(ctx context.Context, filters IncidentFilters) ([]domain.Incident, error)

	ListEvents(ctx context.Context, incidentID string) ([]domain.TimelineEvent, error)

	GetRCA(ctx context.Context, incidentID string) (*domain.RCA, error)
	UpsertRCA(ctx context.Context, rca *domain.RCA) error

	// Transaction support: a status/timestamp mutation and its timeline
	// event commit atomically together.
	BeginTx(ctx context.Context) (pgx.Tx, error)
	CreateIncidentTx(ctx context.Context, tx pgx.Tx, incident *domain.Incident) error
	UpdateIncidentTx(ctx context.Context, tx pgx.Tx, incident *domain.Incident) error
	AppendEventTx(ctx context.Context, tx pgx.Tx, event *domain.TimelineEvent) error
}

// IncidentFilters holds filter options for listing incidents.
type IncidentFilters struct {
	Status     *domain.IncidentStatus
	Severity   *domain.Severity
	ServiceID  *string
	AssigneeID *string
}
