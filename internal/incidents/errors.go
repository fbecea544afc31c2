package incidents

import "errors"

// Workflow errors. All are terminal validation failures surfaced directly to
// the caller; nothing here is retried automatically.
var (
	ErrIncidentNotFound    = errors.New("incident not found")
	ErrServiceNotFound     = errors.New("service not found")
	ErrRunbookNotFound     = errors.New("runbook not found for this service")
	ErrStepIndexOutOfRange = errors.New("runbook step index out of range")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrRCAIncomplete       = errors.New("all RCA fields are required before closing")
	ErrRCANotFound         = errors.New("rca not found")
	ErrValidation          = errors.New("validation error")
)
