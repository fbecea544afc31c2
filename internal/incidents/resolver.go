package incidents

import (
	"context"

	"github.com/bissquit/incident-console/internal/domain"
)

// CatalogResolver supplies service and runbook reference data to the
// lifecycle engine. The engine never mutates the catalog.
type CatalogResolver interface {
	GetServiceByID(ctx context.Context, id string) (*domain.Service, error)
	GetRunbookByID(ctx context.Context, id string) (*domain.Runbook, error)
	ListRunbooksByServiceID(ctx context.Context, serviceID string) ([]domain.Runbook, error)
	ListServices(ctx context.Context) ([]domain.Service, error)
}
