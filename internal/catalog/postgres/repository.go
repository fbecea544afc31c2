// Package postgres provides PostgreSQL implementation of the catalog repository.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/bissquit/incident-console/internal/catalog"
	"github.com/bissquit/incident-console/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository implements the catalog.Repository interface using PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// CreateService creates a new service in the database.
func (r *Repository) CreateService(ctx context.Context, service *domain.Service) error {
	query := `
		INSERT INTO services (name, owner_team, sla_policy)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		service.Name,
		service.OwnerTeam,
		service.SLAPolicy,
	).Scan(&service.ID, &service.CreatedAt, &service.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create service: %w", err)
	}
	return nil
}

// GetServiceByID retrieves a service by its ID.
func (r *Repository) GetServiceByID(ctx context.Context, id string) (*domain.Service, error) {
	query := `
		SELECT id, name, owner_team, sla_policy, created_at, updated_at
		FROM services
		WHERE id = $1
	`
	var service domain.Service
	err := r.db.QueryRow(ctx, query, id).Scan(
		&service.ID,
		&service.Name,
		&service.OwnerTeam,
		&service.SLAPolicy,
		&service.CreatedAt,
		&service.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrServiceNotFound
		}
		return nil, fmt.Errorf("get service by id: %w", err)
	}

	return &service, nil
}

// ListServices retrieves all services ordered by name.
func (r *Repository) ListServices(ctx context.Context) ([]domain.Service, error) {
	query := `
		SELECT id, name, owner_team, sla_policy, created_at, updated_at
		FROM services
		ORDER BY name
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	services := make([]domain.Service, 0)
	for rows.Next() {
		var service domain.Service
		err := rows.Scan(
			&service.ID,
			&service.Name,
			&service.OwnerTeam,
			&service.SLAPolicy,
			&service.CreatedAt,
			&service.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		services = append(services, service)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate services: %w", err)
	}

	return services, nil
}

// CreateRunbook creates a new runbook in the database.
func (r *Repository) CreateRunbook(ctx context.Context, runbook *domain.Runbook) error {
	query := `
		INSERT INTO runbooks (service_id, title, steps)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query,
		runbook.ServiceID,
		runbook.Title,
		runbook.Steps,
	).Scan(&runbook.ID, &runbook.CreatedAt)

	if err != nil {
		return fmt.Errorf("create runbook: %w", err)
	}
	return nil
}

// GetRunbookByID retrieves a runbook by its ID.
func (r *Repository) GetRunbookByID(ctx context.Context, id string) (*domain.Runbook, error) {
	query := `
		SELECT id, service_id, title, steps, created_at
		FROM runbooks
		WHERE id = $1
	`
	var runbook domain.Runbook
	err := r.db.QueryRow(ctx, query, id).Scan(
		&runbook.ID,
		&runbook.ServiceID,
		&runbook.Title,
		&runbook.Steps,
		&runbook.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrRunbookNotFound
		}
		return nil, fmt.Errorf("get runbook by id: %w", err)
	}

	return &runbook, nil
}

// ListRunbooks retrieves runbooks, optionally filtered by service.
func (r *Repository) ListRunbooks(ctx context.Context, filter catalog.RunbookFilter) ([]domain.Runbook, error) {
	query := `
		SELECT id, service_id, title, steps, created_at
		FROM runbooks
		WHERE ($1::text IS NULL OR service_id = $1::uuid)
		ORDER BY title
	`
	rows, err := r.db.Query(ctx, query, filter.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("list runbooks: %w", err)
	}
	defer rows.Close()

	runbooks := make([]domain.Runbook, 0)
	for rows.Next() {
		var runbook domain.Runbook
		err := rows.Scan(
			&runbook.ID,
			&runbook.ServiceID,
			&runbook.Title,
			&runbook.Steps,
			&runbook.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan runbook: %w", err)
		}
		runbooks = append(runbooks, runbook)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runbooks: %w", err)
	}

	return runbooks, nil
}
