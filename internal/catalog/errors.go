package catalog

import (
	"errors"

	"github.com/bissquit/incident-console/internal/incidents"
)

// Catalog errors. Not-found values alias the incidents package sentinels so
// that catalog.Service satisfies the incidents.CatalogResolver error
// contract directly.
var (
	ErrServiceNotFound = incidents.ErrServiceNotFound
	ErrRunbookNotFound = incidents.ErrRunbookNotFound

	ErrInvalidSeverity = errors.New("invalid severity in sla policy")
)
