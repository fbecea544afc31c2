package catalog

import (
	"context"

	"github.com/bissquit/incident-console/internal/domain"
)

// Repository defines the interface for catalog data operations. Services and
// runbooks are reference data: the incident engine only reads them, and
// policy edits are deliberately not exposed here.
type Repository interface {
	CreateService(ctx context.Context, service *domain.Service) error
	GetServiceByID(ctx context.Context, id string) (*domain.Service, error)
	ListServices(ctx context.Context) ([]domain.Service, error)

	CreateRunbook(ctx context.Context, runbook *domain.Runbook) error
	GetRunbookByID(ctx context.Context, id string) (*domain.Runbook, error)
	ListRunbooks(ctx context.Context, filter RunbookFilter) ([]domain.Runbook, error)
}

// RunbookFilter holds filter options for listing runbooks.
type RunbookFilter struct {
	ServiceID *string
}
