// Package catalog provides the service and runbook reference catalog that
// incidents are recorded against.
package catalog

import (
	"context"
	"fmt"

	"github.com/bissquit/incident-console/internal/domain"
)

// Service implements catalog business logic. It also satisfies
// incidents.CatalogResolver for the lifecycle engine.
type Service struct {
	repo Repository
}

// NewService creates a new catalog service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateService registers a new service with its SLA policy.
func (s *Service) CreateService(ctx context.Context, service *domain.Service) error {
	for severity := range service.SLAPolicy {
		if !severity.IsValid() {
			return fmt.Errorf("%w: %s", ErrInvalidSeverity, severity)
		}
	}
	return s.repo.CreateService(ctx, service)
}

// GetServiceByID retrieves a service by ID.
func (s *Service) GetServiceByID(ctx context.Context, id string) (*domain.Service, error) {
	return s.repo.GetServiceByID(ctx, id)
}

// ListServices retrieves all services ordered by name.
func (s *Service) ListServices(ctx context.Context) ([]domain.Service, error) {
	return s.repo.ListServices(ctx)
}

// CreateRunbook registers a runbook for a service.
func (s *Service) CreateRunbook(ctx context.Context, runbook *domain.Runbook) error {
	if _, err := s.repo.GetServiceByID(ctx, runbook.ServiceID); err != nil {
		return err
	}
	return s.repo.CreateRunbook(ctx, runbook)
}

// GetRunbookByID retrieves a runbook by ID.
func (s *Service) GetRunbookByID(ctx context.Context, id string) (*domain.Runbook, error) {
	return s.repo.GetRunbookByID(ctx, id)
}

// ListRunbooks retrieves runbooks, optionally scoped to one service.
func (s *Service) ListRunbooks(ctx context.Context, filter RunbookFilter) ([]domain.Runbook, error) {
	return s.repo.ListRunbooks(ctx, filter)
}

// ListRunbooksByServiceID retrieves the runbooks owned by a service.
func (s *Service) ListRunbooksByServiceID(ctx context.Context, serviceID string) ([]domain.Runbook, error) {
	return s.repo.ListRunbooks(ctx, RunbookFilter{ServiceID: &serviceID})
}
