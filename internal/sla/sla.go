// Package sla resolves per-severity SLA budgets and evaluates breach state.
package sla

import (
	"errors"
	"fmt"
	"time"

	"github.com/bissquit/incident-console/internal/domain"
)

// ErrPolicyNotFound is returned when a service policy has no entry for the
// requested severity.
var ErrPolicyNotFound = errors.New("sla policy not found for severity")

// DefaultPolicy is the baseline per-severity budget used for seed data.
// The engine itself never falls back to it: a service policy missing the
// requested severity surfaces ErrPolicyNotFound to the caller.
var DefaultPolicy = domain.SLAPolicy{
	domain.SeveritySev1: 1,
	domain.SeveritySev2: 4,
	domain.SeveritySev3: 8,
	domain.SeveritySev4: 24,
}

// Hours resolves the allowed hours for severity from the service policy.
func Hours(policy domain.SLAPolicy, severity domain.Severity) (int, error) {
	hours, ok := policy[severity]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrPolicyNotFound, severity)
	}
	return hours, nil
}

// Deadline computes the SLA deadline from creation time and allowed hours.
func Deadline(createdAt time.Time, hours int) time.Time {
	return createdAt.Add(time.Duration(hours) * time.Hour)
}

// Breached reports whether endTime exceeds the deadline derived from
// createdAt and hours. For open incidents callers pass the current time as
// endTime, so breach state is a function of "now" and is never cached.
func Breached(createdAt, endTime time.Time, hours int) bool {
	return endTime.After(Deadline(createdAt, hours))
}
