// Package seed populates an empty database with demo users, services,
// runbooks and one in-flight incident.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bissquit/incident-console/internal/catalog"
	"github.com/bissquit/incident-console/internal/domain"
	"github.com/bissquit/incident-console/internal/identity"
	"github.com/bissquit/incident-console/internal/incidents"
)

// Seeder creates demo data on first startup.
type Seeder struct {
	identity  *identity.Service
	catalog   *catalog.Service
	incidents *incidents.Service
}

// New creates a new seeder.
func New(identityService *identity.Service, catalogService *catalog.Service, incidentsService *incidents.Service) *Seeder {
	return &Seeder{
		identity:  identityService,
		catalog:   catalogService,
		incidents: incidentsService,
	}
}

// Run seeds demo data. It is a no-op when any user already exists.
func (s *Seeder) Run(ctx context.Context) error {
	existing, err := s.identity.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("check existing users: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	slog.Info("seeding demo data")

	users := make([]*domain.User, 0, 3)
	for _, input := range []identity.RegisterInput{
		{Name: "Avery Chen", Username: "avery", Password: "demo123", Role: domain.RoleEngineer},
		{Name: "Jordan Patel", Username: "jordan", Password: "demo123", Role: domain.RoleCommander},
		{Name: "Morgan Diaz", Username: "morgan", Password: "demo123", Role: domain.RoleManager},
	} {
		user, err := s.identity.Register(ctx, input)
		if err != nil {
			return fmt.Errorf("seed user %s: %w", input.Username, err)
		}
		users = append(users, user)
	}

	services := []*domain.Service{
		{
			Name:      "Payments API",
			OwnerTeam: "Core Payments",
			SLAPolicy: domain.SLAPolicy{
				domain.SeveritySev1: 1,
				domain.SeveritySev2: 2,
				domain.SeveritySev3: 6,
				domain.SeveritySev4: 24,
			},
		},
		{
			Name:      "Identity Service",
			OwnerTeam: "Platform Identity",
			SLAPolicy: domain.SLAPolicy{
				domain.SeveritySev1: 1,
				domain.SeveritySev2: 4,
				domain.SeveritySev3: 8,
				domain.SeveritySev4: 24,
			},
		},
		{
			Name:      "Order Pipeline",
			OwnerTeam: "Fulfillment Ops",
			SLAPolicy: domain.SLAPolicy{
				domain.SeveritySev1: 2,
				domain.SeveritySev2: 4,
				domain.SeveritySev3: 12,
				domain.SeveritySev4: 24,
			},
		},
	}
	for _, service := range services {
		if err := s.catalog.CreateService(ctx, service); err != nil {
			return fmt.Errorf("seed service %s: %w", service.Name, err)
		}
	}

	runbooks := []*domain.Runbook{
		{
			ServiceID: services[0].ID,
			Title:     "Payments Timeout Mitigation",
			Steps: []string{
				"Check p95 latency and error rate on API gateway dashboard",
				"Scale worker pool by +2 instances",
				"Enable retry backoff patch in feature flag console",
				"Purge stuck jobs older than 10 minutes",
			},
		},
		{
			ServiceID: services[1].ID,
			Title:     "Identity Login Failure",
			Steps: []string{
				"Validate OAuth provider health endpoints",
				"Rotate cached signing keys",
				"Flush auth gateway cache",
			},
		},
	}
	for _, runbook := range runbooks {
		if err := s.catalog.CreateRunbook(ctx, runbook); err != nil {
			return fmt.Errorf("seed runbook %s: %w", runbook.Title, err)
		}
	}

	commander := users[1]
	incident, err := s.incidents.CreateIncident(ctx, incidents.CreateIncidentInput{
		Title:       "Spike in payment authorization timeouts",
		Description: "Checkout requests are timing out in us-east-1.",
		Severity:    domain.SeveritySev2,
		ServiceID:   services[0].ID,
		AssigneeID:  &commander.ID,
	}, users[0].ID)
	if err != nil {
		return fmt.Errorf("seed incident: %w", err)
	}

	if _, err := s.incidents.TransitionStatus(ctx, incident.ID, domain.IncidentStatusInvestigating, "Moved to Investigating", commander.ID); err != nil {
		return fmt.Errorf("seed incident transition: %w", err)
	}

	if _, err := s.incidents.AddComment(ctx, incident.ID, "Initial rollback did not improve latency.", commander.ID); err != nil {
		return fmt.Errorf("seed incident comment: %w", err)
	}

	slog.Info("demo data seeded",
		"users", len(users),
		"services", len(services),
		"runbooks", len(runbooks),
	)
	return nil
}
