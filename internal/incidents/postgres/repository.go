// Package postgres provides PostgreSQL implementation of the incidents repository.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/bissquit/incident-console/internal/domain"
	"github.com/bissquit/incident-console/internal/incidents"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository implements incidents.Repository using PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// BeginTx starts a new transaction.
func (r *Repository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return r.db.Begin(ctx)
}

// CreateIncidentTx inserts a new incident within a transaction.
// created_at and sla_hours come from the caller: the lifecycle engine owns
// the clock and the frozen SLA budget.
func (r *Repository) CreateIncidentTx(ctx context.Context, tx pgx.Tx, incident *domain.Incident) error {
	query := `
		INSERT INTO incidents (
			title, description, severity, status,
			service_id, assignee_id, created_at, sla_hours
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := tx.QueryRow(ctx, query,
		incident.Title,
		incident.Description,
		incident.Severity,
		incident.Status,
		incident.ServiceID,
		incident.AssigneeID,
		incident.CreatedAt,
		incident.SLAHours,
	).Scan(&incident.ID)

	if err != nil {
		return fmt.Errorf("create incident: %w", err)
	}
	return nil
}

// GetIncident retrieves an incident by ID.
func (r *Repository) GetIncident(ctx context.Context, id string) (*domain.Incident, error) {
	query := `
		SELECT
			id, title, description, severity, status,
			service_id, assignee_id, created_at,
			acknowledged_at, resolved_at, closed_at, sla_hours
		FROM incidents
		WHERE id = $1
	`
	var incident domain.Incident
	err := r.db.QueryRow(ctx, query, id).Scan(
		&incident.ID,
		&incident.Title,
		&incident.Description,
		&incident.Severity,
		&incident.Status,
		&incident.ServiceID,
		&incident.AssigneeID,
		&incident.CreatedAt,
		&incident.AcknowledgedAt,
		&incident.ResolvedAt,
		&incident.ClosedAt,
		&incident.SLAHours,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, incidents.ErrIncidentNotFound
		}
		return nil, fmt.Errorf("get incident: %w", err)
	}

	return &incident, nil
}

// ListIncidents retrieves incidents matching the filters, newest first.
func (r *Repository) ListIncidents(ctx context.Context, filters incidents.IncidentFilters) ([]domain.Incident, error) {
	query := `
		SELECT
			id, title, description, severity, status,
			service_id, assignee_id, created_at,
			acknowledged_at, resolved_at, closed_at, sla_hours
		FROM incidents
		WHERE ($1::text IS NULL OR status = $1)
		  AND ($2::text IS NULL OR severity = $2)
		  AND ($3::uuid IS NULL OR service_id = $3)
		  AND ($4::uuid IS NULL OR assignee_id = $4)
		ORDER BY created_at DESC
	`
	var status, severity *string
	if filters.Status != nil {
		s := string(*filters.Status)
		status = &s
	}
	if filters.Severity != nil {
		s := string(*filters.Severity)
		severity = &s
	}

	rows, err := r.db.Query(ctx, query,
		status,
		severity,
		filters.ServiceID,
		filters.AssigneeID,
	)
	if err != nil {
		return nil, fmt.Errorf("list incidents: %w", err)
	}
	defer rows.Close()

	var result []domain.Incident
	for rows.Next() {
		var incident domain.Incident
		if err := rows.Scan(
			&incident.ID,
			&incident.Title,
			&incident.Description,
			&incident.Severity,
			&incident.Status,
			&incident.ServiceID,
			&incident.AssigneeID,
			&incident.CreatedAt,
			&incident.AcknowledgedAt,
			&incident.ResolvedAt,
			&incident.ClosedAt,
			&incident.SLAHours,
		); err != nil {
			return nil, fmt.Errorf("scan incident: %w", err)
		}
		result = append(result, incident)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate incidents: %w", err)
	}

	return result, nil
}

// UpdateIncidentTx updates an incident's status and lifecycle timestamps
// within a transaction. Title, description and the frozen SLA budget are
// immutable here.
func (r *Repository) UpdateIncidentTx(ctx context.Context, tx pgx.Tx, incident *domain.Incident) error {
	query := `
		UPDATE incidents
		SET status = $2,
		    assignee_id = $3,
		    acknowledged_at = $4,
		    resolved_at = $5,
		    closed_at = $6
		WHERE id = $1
	`
	tag, err := tx.Exec(ctx, query,
		incident.ID,
		incident.Status,
		incident.AssigneeID,
		incident.AcknowledgedAt,
		incident.ResolvedAt,
		incident.ClosedAt,
	)
	if err != nil {
		return fmt.Errorf("update incident: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return incidents.ErrIncidentNotFound
	}
	return nil
}

// AppendEventTx appends a timeline event within a transaction. The seq
// column preserves insertion order for events sharing a created_at.
func (r *Repository) AppendEventTx(ctx context.Context, tx pgx.Tx, event *domain.TimelineEvent) error {
	query := `
		INSERT INTO incident_events (incident_id, type, body, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := tx.QueryRow(ctx, query,
		event.IncidentID,
		event.Type,
		event.Body,
		event.CreatedBy,
		event.CreatedAt,
	).Scan(&event.ID)

	if err != nil {
		return fmt.Errorf("append event: %w", err)
	}
	return nil
}

// ListEvents retrieves the timeline for an incident ordered by created_at
// ascending, ties broken by insertion order.
func (r *Repository) ListEvents(ctx context.Context, incidentID string) ([]domain.TimelineEvent, error) {
	query := `
		SELECT id, incident_id, type, body, created_by, created_at
		FROM incident_events
		WHERE incident_id = $1
		ORDER BY created_at ASC, seq ASC
	`
	rows, err := r.db.Query(ctx, query, incidentID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []domain.TimelineEvent
	for rows.Next() {
		var event domain.TimelineEvent
		if err := rows.Scan(
			&event.ID,
			&event.IncidentID,
			&event.Type,
			&event.Body,
			&event.CreatedBy,
			&event.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}

	return events, nil
}

// GetRCA retrieves the RCA for an incident.
func (r *Repository) GetRCA(ctx context.Context, incidentID string) (*domain.RCA, error) {
	query := `
		SELECT id, incident_id, root_cause, contributing_factors,
		       corrective_actions, prevention_actions, created_at, updated_at
		FROM rcas
		WHERE incident_id = $1
	`
	var rca domain.RCA
	err := r.db.QueryRow(ctx, query, incidentID).Scan(
		&rca.ID,
		&rca.IncidentID,
		&rca.RootCause,
		&rca.ContributingFactors,
		&rca.CorrectiveActions,
		&rca.PreventionActions,
		&rca.CreatedAt,
		&rca.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, incidents.ErrRCANotFound
		}
		return nil, fmt.Errorf("get rca: %w", err)
	}

	return &rca, nil
}

// UpsertRCA replaces or creates the RCA for an incident. The incident_id
// unique constraint guarantees at most one RCA per incident.
func (r *Repository) UpsertRCA(ctx context.Context, rca *domain.RCA) error {
	query := `
		INSERT INTO rcas (
			incident_id, root_cause, contributing_factors,
			corrective_actions, prevention_actions, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (incident_id) DO UPDATE SET
			root_cause = EXCLUDED.root_cause,
			contributing_factors = EXCLUDED.contributing_factors,
			corrective_actions = EXCLUDED.corrective_actions,
			prevention_actions = EXCLUDED.prevention_actions,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query,
		rca.IncidentID,
		rca.RootCause,
		rca.ContributingFactors,
		rca.CorrectiveActions,
		rca.PreventionActions,
		rca.UpdatedAt,
	).Scan(&rca.ID, &rca.CreatedAt)

	if err != nil {
		return fmt.Errorf("upsert rca: %w", err)
	}
	return nil
}
