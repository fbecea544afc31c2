// Package incidents implements the incident lifecycle engine: the forward-only
// status state machine, the SLA deadline computation frozen at creation time,
// the RCA gate on closure and the append-only timeline.
package incidents

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/bissquit/incident-console/internal/clock"
	"github.com/bissquit/incident-console/internal/domain"
	"github.com/bissquit/incident-console/internal/pkg/metrics"
	"github.com/bissquit/incident-console/internal/sla"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Service implements incident lifecycle business logic. All mutating
// commands on one incident are serialized through a per-incident lock;
// reads run concurrently and observe committed state only.
type Service struct {
	repo     Repository
	catalog  CatalogResolver
	clock    clock.Clock
	renderer *ReportRenderer
	locks    *incidentLocks
}

// NewService creates a new incident service.
func NewService(repo Repository, catalog CatalogResolver, clk clock.Clock) (*Service, error) {
	renderer, err := NewReportRenderer()
	if err != nil {
		return nil, fmt.Errorf("create report renderer: %w", err)
	}

	return &Service{
		repo:     repo,
		catalog:  catalog,
		clock:    clk,
		renderer: renderer,
		locks:    newIncidentLocks(),
	}, nil
}

// CreateIncidentInput holds data for creating an incident.
type CreateIncidentInput struct {
	Title       string
	Description string
	Severity    domain.Severity
	ServiceID   string
	AssigneeID  *string
}

// RCAInput holds the four free-text RCA fields.
type RCAInput struct {
	RootCause           string
	ContributingFactors string
	CorrectiveActions   string
	PreventionActions   string
}

// IncidentView is an incident with its derived SLA fields attached.
// SLABreached is recomputed against the clock on every read.
type IncidentView struct {
	domain.Incident
	SLADeadline time.Time `json:"sla_deadline"`
	SLABreached bool      `json:"sla_breached"`
}

// IncidentDetail is the full read model for one incident.
type IncidentDetail struct {
	IncidentView
	ServiceName string                 `json:"service_name"`
	Events      []domain.TimelineEvent `json:"events"`
	Runbooks    []domain.Runbook       `json:"runbooks"`
	RCA         *domain.RCA            `json:"rca,omitempty"`
}

func (s *Service) view(incident domain.Incident) IncidentView {
	return IncidentView{
		Incident:    incident,
		SLADeadline: incident.SLADeadline(),
		SLABreached: incident.SLABreached(s.clock.Now()),
	}
}

// CreateIncident creates an incident in state New with its SLA budget frozen
// from the owning service's policy, and appends the Created timeline event.
func (s *Service) CreateIncident(ctx context.Context, input CreateIncidentInput, createdBy string) (*IncidentView, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: title must not be empty", ErrValidation)
	}
	if !input.Severity.IsValid() {
		return nil, fmt.Errorf("%w: unknown severity %q", ErrValidation, input.Severity)
	}

	service, err := s.catalog.GetServiceByID(ctx, input.ServiceID)
	if err != nil {
		if errors.Is(err, ErrServiceNotFound) {
			return nil, fmt.Errorf("%w: service %s does not resolve", ErrValidation, input.ServiceID)
		}
		return nil, fmt.Errorf("resolve service: %w", err)
	}

	hours, err := sla.Hours(service.SLAPolicy, input.Severity)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	incident := &domain.Incident{
		Title:       input.Title,
		Description: input.Description,
		Severity:    input.Severity,
		Status:      domain.IncidentStatusNew,
		ServiceID:   service.ID,
		AssigneeID:  input.AssigneeID,
		CreatedAt:   now,
		SLAHours:    hours,
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer s.rollback(ctx, tx)

	if err := s.repo.CreateIncidentTx(ctx, tx, incident); err != nil {
		return nil, fmt.Errorf("create incident: %w", err)
	}

	event := &domain.TimelineEvent{
		IncidentID: incident.ID,
		Type:       domain.EventTypeCreated,
		Body:       fmt.Sprintf("Incident created with status %s", domain.IncidentStatusNew),
		CreatedBy:  actorID(createdBy),
		CreatedAt:  now,
	}
	if err := s.repo.AppendEventTx(ctx, tx, event); err != nil {
		return nil, fmt.Errorf("append created event: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	metrics.IncidentsCreatedTotal.WithLabelValues(string(incident.Severity)).Inc()

	v := s.view(*incident)
	return &v, nil
}

// TransitionStatus moves an incident along a permitted edge of the lifecycle
// table. Closing requires a complete RCA. Lifecycle timestamps are each set
// exactly once: acknowledged_at on the first exit from New, resolved_at on
// entering Resolved, closed_at on entering Closed.
func (s *Service) TransitionStatus(ctx context.Context, incidentID string, target domain.IncidentStatus, note, actor string) (*IncidentView, error) {
	if !target.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, target)
	}

	unlock := s.locks.Lock(incidentID)
	defer unlock()

	incident, err := s.repo.GetIncident(ctx, incidentID)
	if err != nil {
		return nil, err
	}

	if !incident.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, incident.Status, target)
	}

	if target == domain.IncidentStatusClosed {
		rca, err := s.repo.GetRCA(ctx, incidentID)
		if err != nil && !errors.Is(err, ErrRCANotFound) {
			return nil, fmt.Errorf("get rca: %w", err)
		}
		if rca == nil || !rca.IsComplete() {
			return nil, ErrRCAIncomplete
		}
	}

	now := s.clock.Now()
	from := incident.Status

	if incident.Status == domain.IncidentStatusNew && incident.AcknowledgedAt == nil {
		incident.AcknowledgedAt = &now
	}
	if target == domain.IncidentStatusResolved && incident.ResolvedAt == nil {
		incident.ResolvedAt = &now
	}
	if target == domain.IncidentStatusClosed && incident.ClosedAt == nil {
		incident.ClosedAt = &now
	}
	incident.Status = target

	body := note
	if strings.TrimSpace(body) == "" {
		body = fmt.Sprintf("Status changed to %s", target)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer s.rollback(ctx, tx)

	if err := s.repo.UpdateIncidentTx(ctx, tx, incident); err != nil {
		return nil, fmt.Errorf("update incident: %w", err)
	}

	event := &domain.TimelineEvent{
		IncidentID: incident.ID,
		Type:       domain.EventTypeStatusChanged,
		Body:       body,
		CreatedBy:  actorID(actor),
		CreatedAt:  now,
	}
	if err := s.repo.AppendEventTx(ctx, tx, event); err != nil {
		return nil, fmt.Errorf("append status event: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	metrics.IncidentTransitionsTotal.WithLabelValues(string(from), string(target)).Inc()

	v := s.view(*incident)
	return &v, nil
}

// AddComment appends a Comment timeline event. The incident status does not
// change.
func (s *Service) AddComment(ctx context.Context, incidentID, body, actor string) (*domain.TimelineEvent, error) {
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("%w: comment body must not be empty", ErrValidation)
	}

	unlock := s.locks.Lock(incidentID)
	defer unlock()

	if _, err := s.repo.GetIncident(ctx, incidentID); err != nil {
		return nil, err
	}

	event := &domain.TimelineEvent{
		IncidentID: incidentID,
		Type:       domain.EventTypeComment,
		Body:       body,
		CreatedBy:  actorID(actor),
		CreatedAt:  s.clock.Now(),
	}

	if err := s.appendEvent(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// ApplyRunbookStep records that an operator executed one step of a runbook
// belonging to the incident's service. It only produces a timeline event;
// any resulting status change is a separate explicit transition.
func (s *Service) ApplyRunbookStep(ctx context.Context, incidentID, runbookID string, stepIndex int, actor string) (*domain.TimelineEvent, error) {
	unlock := s.locks.Lock(incidentID)
	defer unlock()

	incident, err := s.repo.GetIncident(ctx, incidentID)
	if err != nil {
		return nil, err
	}

	runbook, err := s.catalog.GetRunbookByID(ctx, runbookID)
	if err != nil {
		return nil, err
	}
	if runbook.ServiceID != incident.ServiceID {
		return nil, ErrRunbookNotFound
	}
	if stepIndex < 0 || stepIndex >= len(runbook.Steps) {
		return nil, fmt.Errorf("%w: index %d of %d steps", ErrStepIndexOutOfRange, stepIndex, len(runbook.Steps))
	}

	event := &domain.TimelineEvent{
		IncidentID: incidentID,
		Type:       domain.EventTypeRunbookStepApplied,
		Body:       fmt.Sprintf("Applied runbook %q step %d: %s", runbook.Title, stepIndex+1, runbook.Steps[stepIndex]),
		CreatedBy:  actorID(actor),
		CreatedAt:  s.clock.Now(),
	}

	if err := s.appendEvent(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// UpsertRCA replaces or creates the incident's RCA wholesale. No completeness
// check happens here so that partial drafts can be saved; completeness is
// only enforced when the incident transitions to Closed.
func (s *Service) UpsertRCA(ctx context.Context, incidentID string, input RCAInput) (*domain.RCA, error) {
	unlock := s.locks.Lock(incidentID)
	defer unlock()

	if _, err := s.repo.GetIncident(ctx, incidentID); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	rca := &domain.RCA{
		IncidentID:          incidentID,
		RootCause:           input.RootCause,
		ContributingFactors: input.ContributingFactors,
		CorrectiveActions:   input.CorrectiveActions,
		PreventionActions:   input.PreventionActions,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.repo.UpsertRCA(ctx, rca); err != nil {
		return nil, fmt.Errorf("upsert rca: %w", err)
	}
	return rca, nil
}

// GetIncident returns the full read model for one incident.
func (s *Service) GetIncident(ctx context.Context, id string) (*IncidentDetail, error) {
	incident, err := s.repo.GetIncident(ctx, id)
	if err != nil {
		return nil, err
	}

	service, err := s.catalog.GetServiceByID(ctx, incident.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("resolve service: %w", err)
	}

	events, err := s.repo.ListEvents(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	runbooks, err := s.catalog.ListRunbooksByServiceID(ctx, incident.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("list runbooks: %w", err)
	}

	rca, err := s.repo.GetRCA(ctx, id)
	if err != nil && !errors.Is(err, ErrRCANotFound) {
		return nil, fmt.Errorf("get rca: %w", err)
	}

	return &IncidentDetail{
		IncidentView: s.view(*incident),
		ServiceName:  service.Name,
		Events:       events,
		Runbooks:     runbooks,
		RCA:          rca,
	}, nil
}

// ListIncidents returns incidents matching the filters, newest first, with
// derived SLA fields recomputed at call time.
func (s *Service) ListIncidents(ctx context.Context, filters IncidentFilters) ([]IncidentView, error) {
	incidents, err := s.repo.ListIncidents(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("list incidents: %w", err)
	}

	views := make([]IncidentView, 0, len(incidents))
	for _, incident := range incidents {
		views = append(views, s.view(incident))
	}
	return views, nil
}

// ListEvents returns the incident's timeline ordered by created_at ascending,
// ties broken by insertion order.
func (s *Service) ListEvents(ctx context.Context, incidentID string) ([]domain.TimelineEvent, error) {
	if _, err := s.repo.GetIncident(ctx, incidentID); err != nil {
		return nil, err
	}
	return s.repo.ListEvents(ctx, incidentID)
}

// Metrics recomputes the operational metrics over the whole incident set.
func (s *Service) Metrics(ctx context.Context) (*Metrics, error) {
	incidents, err := s.repo.ListIncidents(ctx, IncidentFilters{})
	if err != nil {
		return nil, fmt.Errorf("list incidents: %w", err)
	}

	m := ComputeMetrics(incidents, s.clock.Now())
	return &m, nil
}

// RenderReport renders the Markdown post-incident document for one incident.
func (s *Service) RenderReport(ctx context.Context, incidentID string) (string, error) {
	detail, err := s.GetIncident(ctx, incidentID)
	if err != nil {
		return "", err
	}
	return s.renderer.Render(detail)
}

// GenerateAlerts creates between 1 and 25 synthetic incidents with random
// severity across the service catalog, assigned to the caller. Count is
// clamped into that range.
func (s *Service) GenerateAlerts(ctx context.Context, count int, createdBy string) ([]IncidentView, error) {
	services, err := s.catalog.ListServices(ctx)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	if len(services) == 0 {
		return []IncidentView{}, nil
	}

	if count < 1 {
		count = 1
	}
	if count > 25 {
		count = 25
	}

	created := make([]IncidentView, 0, count)
	for i := 0; i < count; i++ {
		service := services[rand.Intn(len(services))]
		severity := domain.Severities[rand.Intn(len(domain.Severities))]

		assignee := createdBy
		view, err := s.CreateIncident(ctx, CreateIncidentInput{
			Title:       fmt.Sprintf("Synthetic alert #%d - %s", i+1, service.Name),
			Description: fmt.Sprintf("Generated from mock log rule: error_rate > threshold (alert %s).", uuid.NewString()),
			Severity:    severity,
			ServiceID:   service.ID,
			AssigneeID:  &assignee,
		}, createdBy)
		if err != nil {
			// A service policy without the drawn severity is skipped, not fatal.
			if errors.Is(err, sla.ErrPolicyNotFound) {
				slog.Warn("skipping synthetic alert", "service_id", service.ID, "severity", severity, "error", err)
				continue
			}
			return nil, err
		}
		created = append(created, *view)
	}

	return created, nil
}

// appendEvent commits a single timeline event atomically.
func (s *Service) appendEvent(ctx context.Context, event *domain.TimelineEvent) error {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer s.rollback(ctx, tx)

	if err := s.repo.AppendEventTx(ctx, tx, event); err != nil {
		return fmt.Errorf("append event: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *Service) rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		slog.Error("failed to rollback transaction", "error", err)
	}
}

func actorID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
