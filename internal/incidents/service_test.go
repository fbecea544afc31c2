package incidents

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/bissquit/incident-console/internal/clock"
	"github.com/bissquit/incident-console/internal/domain"
	"github.com/bissquit/incident-console/internal/sla"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTx satisfies pgx.Tx for the in-memory repository. The mock applies
// writes immediately, so Commit and Rollback are no-ops.
type fakeTx struct{}

func (fakeTx) Begin(_ context.Context) (pgx.Tx, error)   { return fakeTx{}, nil }
func (fakeTx) Commit(_ context.Context) error            { return nil }
func (fakeTx) Rollback(_ context.Context) error          { return pgx.ErrTxClosed }
func (fakeTx) Conn() *pgx.Conn                           { return nil }
func (fakeTx) LargeObjects() pgx.LargeObjects            { return pgx.LargeObjects{} }
func (fakeTx) SendBatch(_ context.Context, _ *pgx.Batch) pgx.BatchResults { return nil }
func (fakeTx) CopyFrom(_ context.Context, _ pgx.Identifier, _ []string, _ pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (fakeTx) Prepare(_ context.Context, _, _ string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (fakeTx) Exec(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (fakeTx) Query(_ context.Context, _ string, _ ...any) (pgx.Rows, error) { return nil, nil }
func (fakeTx) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row        { return nil }

// mockRepository implements Repository in memory for testing.
type mockRepository struct {
	mu        sync.Mutex
	incidents map[string]*domain.Incident
	events    []domain.TimelineEvent
	rcas      map[string]*domain.RCA
	nextID    int
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		incidents: make(map[string]*domain.Incident),
		rcas:      make(map[string]*domain.RCA),
	}
}

func (m *mockRepository) BeginTx(_ context.Context) (pgx.Tx, error) {
	return fakeTx{}, nil
}

func (m *mockRepository) CreateIncidentTx(_ context.Context, _ pgx.Tx, incident *domain.Incident) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	incident.ID = fmt.Sprintf("inc-%d", m.nextID)
	copied := *incident
	m.incidents[incident.ID] = &copied
	return nil
}

func (m *mockRepository) GetIncident(_ context.Context, id string) (*domain.Incident, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	incident, ok := m.incidents[id]
	if !ok {
		return nil, ErrIncidentNotFound
	}
	copied := *incident
	return &copied, nil
}

func (m *mockRepository) ListIncidents(_ context.Context, filters IncidentFilters) ([]domain.Incident, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []domain.Incident
	for _, incident := range m.incidents {
		if filters.Status != nil && incident.Status != *filters.Status {
			continue
		}
		if filters.Severity != nil && incident.Severity != *filters.Severity {
			continue
		}
		if filters.ServiceID != nil && incident.ServiceID != *filters.ServiceID {
			continue
		}
		if filters.AssigneeID != nil && (incident.AssigneeID == nil || *incident.AssigneeID != *filters.AssigneeID) {
			continue
		}
		result = append(result, *incident)
	}
	return result, nil
}

func (m *mockRepository) UpdateIncidentTx(_ context.Context, _ pgx.Tx, incident *domain.Incident) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.incidents[incident.ID]; !ok {
		return ErrIncidentNotFound
	}
	copied := *incident
	m.incidents[incident.ID] = &copied
	return nil
}

func (m *mockRepository) AppendEventTx(_ context.Context, _ pgx.Tx, event *domain.TimelineEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	event.ID = fmt.Sprintf("evt-%d", len(m.events)+1)
	m.events = append(m.events, *event)
	return nil
}

func (m *mockRepository) ListEvents(_ context.Context, incidentID string) ([]domain.TimelineEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []domain.TimelineEvent
	for _, event := range m.events {
		if event.IncidentID == incidentID {
			result = append(result, event)
		}
	}
	return result, nil
}

func (m *mockRepository) GetRCA(_ context.Context, incidentID string) (*domain.RCA, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rca, ok := m.rcas[incidentID]
	if !ok {
		return nil, ErrRCANotFound
	}
	copied := *rca
	return &copied, nil
}

func (m *mockRepository) UpsertRCA(_ context.Context, rca *domain.RCA) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.rcas[rca.IncidentID]; ok {
		rca.ID = existing.ID
		rca.CreatedAt = existing.CreatedAt
	} else {
		rca.ID = fmt.Sprintf("rca-%d", len(m.rcas)+1)
	}
	copied := *rca
	m.rcas[rca.IncidentID] = &copied
	return nil
}

// mockCatalog implements CatalogResolver for testing.
type mockCatalog struct {
	services map[string]*domain.Service
	runbooks map[string]*domain.Runbook
}

func newMockCatalog() *mockCatalog {
	return &mockCatalog{
		services: make(map[string]*domain.Service),
		runbooks: make(map[string]*domain.Runbook),
	}
}

func (m *mockCatalog) GetServiceByID(_ context.Context, id string) (*domain.Service, error) {
	service, ok := m.services[id]
	if !ok {
		return nil, ErrServiceNotFound
	}
	return service, nil
}

func (m *mockCatalog) GetRunbookByID(_ context.Context, id string) (*domain.Runbook, error) {
	runbook, ok := m.runbooks[id]
	if !ok {
		return nil, ErrRunbookNotFound
	}
	return runbook, nil
}

func (m *mockCatalog) ListRunbooksByServiceID(_ context.Context, serviceID string) ([]domain.Runbook, error) {
	var result []domain.Runbook
	for _, runbook := range m.runbooks {
		if runbook.ServiceID == serviceID {
			result = append(result, *runbook)
		}
	}
	return result, nil
}

func (m *mockCatalog) ListServices(_ context.Context) ([]domain.Service, error) {
	var result []domain.Service
	for _, service := range m.services {
		result = append(result, *service)
	}
	return result, nil
}

var testStart = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *mockRepository, *mockCatalog, *clock.Fake) {
	t.Helper()

	repo := newMockRepository()
	catalog := newMockCatalog()
	catalog.services["a4f7c8ee-0000-0000-0000-000000000001"] = &domain.Service{
		ID:   "a4f7c8ee-0000-0000-0000-000000000001",
		Name: "Payments API",
		SLAPolicy: domain.SLAPolicy{
			domain.SeveritySev1: 1,
			domain.SeveritySev2: 4,
			domain.SeveritySev3: 8,
			domain.SeveritySev4: 24,
		},
	}

	clk := clock.NewFake(testStart)
	service, err := NewService(repo, catalog, clk)
	require.NoError(t, err)

	return service, repo, catalog, clk
}

const testServiceID = "a4f7c8ee-0000-0000-0000-000000000001"

func createTestIncident(t *testing.T, s *Service, severity domain.Severity) *IncidentView {
	t.Helper()
	incident, err := s.CreateIncident(context.Background(), CreateIncidentInput{
		Title:       "Spike in payment authorization timeouts",
		Description: "Checkout requests are timing out in us-east-1.",
		Severity:    severity,
		ServiceID:   testServiceID,
	}, "user-1")
	require.NoError(t, err)
	return incident
}

func completeRCA() RCAInput {
	return RCAInput{
		RootCause:           "Connection pool exhausted",
		ContributingFactors: "Retry storm from mobile clients",
		CorrectiveActions:   "Increased pool size",
		PreventionActions:   "Added saturation alerting",
	}
}

func TestCreateIncident_FreezesSLAFromPolicy(t *testing.T) {
	s, _, _, _ := newTestService(t)

	incident := createTestIncident(t, s, domain.SeveritySev2)

	assert.Equal(t, domain.IncidentStatusNew, incident.Status)
	assert.Equal(t, 4, incident.SLAHours)
	assert.Equal(t, testStart, incident.CreatedAt)
	assert.Equal(t, testStart.Add(4*time.Hour), incident.SLADeadline)
	assert.False(t, incident.SLABreached)
	assert.Nil(t, incident.AcknowledgedAt)
}

func TestCreateIncident_SLAHoursImmuneToPolicyEdits(t *testing.T) {
	s, repo, catalog, _ := newTestService(t)

	incident := createTestIncident(t, s, domain.SeveritySev2)

	// Edit the service policy after creation; the captured budget must not move.
	catalog.services[testServiceID].SLAPolicy[domain.SeveritySev2] = 99

	stored, err := repo.GetIncident(context.Background(), incident.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, stored.SLAHours)
	assert.Equal(t, testStart.Add(4*time.Hour), stored.SLADeadline())
}

func TestCreateIncident_AppendsCreatedEvent(t *testing.T) {
	s, repo, _, _ := newTestService(t)

	incident := createTestIncident(t, s, domain.SeveritySev1)

	events, err := repo.ListEvents(context.Background(), incident.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventTypeCreated, events[0].Type)
	require.NotNil(t, events[0].CreatedBy)
	assert.Equal(t, "user-1", *events[0].CreatedBy)
}

func TestCreateIncident_Validation(t *testing.T) {
	s, _, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := s.CreateIncident(ctx, CreateIncidentInput{
		Title:     "   ",
		Severity:  domain.SeveritySev1,
		ServiceID: testServiceID,
	}, "user-1")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.CreateIncident(ctx, CreateIncidentInput{
		Title:     "broken",
		Severity:  domain.Severity("SEV9"),
		ServiceID: testServiceID,
	}, "user-1")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.CreateIncident(ctx, CreateIncidentInput{
		Title:     "broken",
		Severity:  domain.SeveritySev1,
		ServiceID: "missing",
	}, "user-1")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateIncident_PolicyMissingSeverity(t *testing.T) {
	s, _, catalog, _ := newTestService(t)

	catalog.services["svc-partial"] = &domain.Service{
		ID:        "svc-partial",
		Name:      "Partial Policy",
		SLAPolicy: domain.SLAPolicy{domain.SeveritySev1: 1},
	}

	_, err := s.CreateIncident(context.Background(), CreateIncidentInput{
		Title:     "no budget for SEV3",
		Severity:  domain.SeveritySev3,
		ServiceID: "svc-partial",
	}, "user-1")
	assert.ErrorIs(t, err, sla.ErrPolicyNotFound)
}

func TestTransition_PermittedEdgesOnly(t *testing.T) {
	// Enumerate the full status x status grid: everything outside the
	// permitted-edge table must fail with ErrInvalidTransition.
	statuses := []domain.IncidentStatus{
		domain.IncidentStatusNew,
		domain.IncidentStatusInvestigating,
		domain.IncidentStatusMitigated,
		domain.IncidentStatusResolved,
		domain.IncidentStatusClosed,
	}

	for _, from := range statuses {
		for _, to := range statuses {
			t.Run(fmt.Sprintf("%s_to_%s", from, to), func(t *testing.T) {
				s, repo, _, _ := newTestService(t)
				incident := createTestIncident(t, s, domain.SeveritySev2)

				// Force the starting status directly in the store.
				stored := repo.incidents[incident.ID]
				stored.Status = from

				if from == domain.IncidentStatusResolved || from == domain.IncidentStatusClosed {
					// Satisfy the closure gate so only edge validity is under test.
					_, err := s.UpsertRCA(context.Background(), incident.ID, completeRCA())
					require.NoError(t, err)
				}

				_, err := s.TransitionStatus(context.Background(), incident.ID, to, "", "user-1")
				if from.CanTransitionTo(to) {
					assert.NoError(t, err)
				} else {
					assert.ErrorIs(t, err, ErrInvalidTransition)
				}
			})
		}
	}
}

func TestTransition_RestatingCurrentStatusRejected(t *testing.T) {
	s, _, _, _ := newTestService(t)
	incident := createTestIncident(t, s, domain.SeveritySev2)

	_, err := s.TransitionStatus(context.Background(), incident.ID, domain.IncidentStatusNew, "", "user-1")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransition_BackwardRejected(t *testing.T) {
	s, _, _, _ := newTestService(t)
	incident := createTestIncident(t, s, domain.SeveritySev2)

	_, err := s.TransitionStatus(context.Background(), incident.ID, domain.IncidentStatusInvestigating, "", "user-1")
	require.NoError(t, err)

	_, err = s.TransitionStatus(context.Background(), incident.ID, domain.IncidentStatusNew, "", "user-1")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransition_ClosureGatedOnCompleteRCA(t *testing.T) {
	s, _, _, clk := newTestService(t)
	ctx := context.Background()
	incident := createTestIncident(t, s, domain.SeveritySev2)

	_, err := s.TransitionStatus(ctx, incident.ID, domain.IncidentStatusInvestigating, "", "user-1")
	require.NoError(t, err)
	_, err = s.TransitionStatus(ctx, incident.ID, domain.IncidentStatusResolved, "", "user-1")
	require.NoError(t, err)

	// No RCA at all.
	_, err = s.TransitionStatus(ctx, incident.ID, domain.IncidentStatusClosed, "", "user-1")
	assert.ErrorIs(t, err, ErrRCAIncomplete)

	// Draft with a whitespace-only field is still incomplete.
	draft := completeRCA()
	draft.PreventionActions = "   "
	_, err = s.UpsertRCA(ctx, incident.ID, draft)
	require.NoError(t, err)

	_, err = s.TransitionStatus(ctx, incident.ID, domain.IncidentStatusClosed, "", "user-1")
	assert.ErrorIs(t, err, ErrRCAIncomplete)

	// Complete RCA unlocks closure.
	_, err = s.UpsertRCA(ctx, incident.ID, completeRCA())
	require.NoError(t, err)

	clk.Advance(10 * time.Minute)
	closed, err := s.TransitionStatus(ctx, incident.ID, domain.IncidentStatusClosed, "", "user-1")
	require.NoError(t, err)
	assert.Equal(t, domain.IncidentStatusClosed, closed.Status)
	require.NotNil(t, closed.ClosedAt)
	assert.Equal(t, clk.Now(), *closed.ClosedAt)
}

func TestTransition_TimestampsSetExactlyOnce(t *testing.T) {
	s, _, _, clk := newTestService(t)
	ctx := context.Background()
	incident := createTestIncident(t, s, domain.SeveritySev2)

	clk.Advance(5 * time.Minute)
	ack, err := s.TransitionStatus(ctx, incident.ID, domain.IncidentStatusInvestigating, "", "user-1")
	require.NoError(t, err)
	require.NotNil(t, ack.AcknowledgedAt)
	ackAt := *ack.AcknowledgedAt
	assert.Equal(t, testStart.Add(5*time.Minute), ackAt)

	clk.Advance(30 * time.Minute)
	mitigated, err := s.TransitionStatus(ctx, incident.ID, domain.IncidentStatusMitigated, "", "user-1")
	require.NoError(t, err)
	assert.Equal(t, ackAt, *mitigated.AcknowledgedAt)
	assert.Nil(t, mitigated.ResolvedAt)

	clk.Advance(30 * time.Minute)
	resolved, err := s.TransitionStatus(ctx, incident.ID, domain.IncidentStatusResolved, "", "user-1")
	require.NoError(t, err)
	require.NotNil(t, resolved.ResolvedAt)
	resolvedAt := *resolved.ResolvedAt

	_, err = s.UpsertRCA(ctx, incident.ID, completeRCA())
	require.NoError(t, err)

	clk.Advance(30 * time.Minute)
	closed, err := s.TransitionStatus(ctx, incident.ID, domain.IncidentStatusClosed, "", "user-1")
	require.NoError(t, err)
	assert.Equal(t, ackAt, *closed.AcknowledgedAt)
	assert.Equal(t, resolvedAt, *closed.ResolvedAt)
	require.NotNil(t, closed.ClosedAt)
}

func TestTransition_SynthesizesNoteWhenEmpty(t *testing.T) {
	s, repo, _, _ := newTestService(t)
	incident := createTestIncident(t, s, domain.SeveritySev2)

	_, err := s.TransitionStatus(context.Background(), incident.ID, domain.IncidentStatusInvestigating, "", "user-1")
	require.NoError(t, err)

	events, err := repo.ListEvents(context.Background(), incident.ID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, domain.EventTypeStatusChanged, events[1].Type)
	assert.Equal(t, "Status changed to Investigating", events[1].Body)
}

func TestTransition_NotFound(t *testing.T) {
	s, _, _, _ := newTestService(t)

	_, err := s.TransitionStatus(context.Background(), "missing", domain.IncidentStatusInvestigating, "", "user-1")
	assert.ErrorIs(t, err, ErrIncidentNotFound)
}

func TestTransition_ConcurrentCommandsSerialized(t *testing.T) {
	s, _, _, _ := newTestService(t)
	incident := createTestIncident(t, s, domain.SeveritySev2)

	// Two goroutines race the same edge; exactly one may win.
	const racers = 2
	errs := make(chan error, racers)
	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.TransitionStatus(context.Background(), incident.ID, domain.IncidentStatusInvestigating, "", "user-1")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, invalid int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, ErrInvalidTransition):
			invalid++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, invalid)
}

func TestAddComment(t *testing.T) {
	s, _, _, _ := newTestService(t)
	ctx := context.Background()
	incident := createTestIncident(t, s, domain.SeveritySev3)

	event, err := s.AddComment(ctx, incident.ID, "Initial rollback did not improve latency.", "user-2")
	require.NoError(t, err)
	assert.Equal(t, domain.EventTypeComment, event.Type)

	// Status must not change.
	detail, err := s.GetIncident(ctx, incident.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.IncidentStatusNew, detail.Status)

	_, err = s.AddComment(ctx, incident.ID, "  ", "user-2")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.AddComment(ctx, "missing", "hello", "user-2")
	assert.ErrorIs(t, err, ErrIncidentNotFound)
}

func TestApplyRunbookStep(t *testing.T) {
	s, _, catalog, _ := newTestService(t)
	ctx := context.Background()
	incident := createTestIncident(t, s, domain.SeveritySev2)

	catalog.runbooks["rb-1"] = &domain.Runbook{
		ID:        "rb-1",
		ServiceID: testServiceID,
		Title:     "Payments Timeout Mitigation",
		Steps:     []string{"Check p95 latency", "Scale worker pool by +2 instances"},
	}
	catalog.runbooks["rb-other"] = &domain.Runbook{
		ID:        "rb-other",
		ServiceID: "svc-other",
		Title:     "Unrelated",
		Steps:     []string{"noop"},
	}

	event, err := s.ApplyRunbookStep(ctx, incident.ID, "rb-1", 1, "user-1")
	require.NoError(t, err)
	assert.Equal(t, domain.EventTypeRunbookStepApplied, event.Type)
	assert.Contains(t, event.Body, "Scale worker pool by +2 instances")
	assert.Contains(t, event.Body, "step 2")

	// Runbook owned by another service.
	_, err = s.ApplyRunbookStep(ctx, incident.ID, "rb-other", 0, "user-1")
	assert.ErrorIs(t, err, ErrRunbookNotFound)

	// Index out of range, both directions.
	_, err = s.ApplyRunbookStep(ctx, incident.ID, "rb-1", 2, "user-1")
	assert.ErrorIs(t, err, ErrStepIndexOutOfRange)
	_, err = s.ApplyRunbookStep(ctx, incident.ID, "rb-1", -1, "user-1")
	assert.ErrorIs(t, err, ErrStepIndexOutOfRange)

	// Status untouched by runbook application.
	detail, err := s.GetIncident(ctx, incident.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.IncidentStatusNew, detail.Status)
}

func TestUpsertRCA_ReplacesWholesale(t *testing.T) {
	s, _, _, _ := newTestService(t)
	ctx := context.Background()
	incident := createTestIncident(t, s, domain.SeveritySev2)

	draft, err := s.UpsertRCA(ctx, incident.ID, RCAInput{RootCause: "draft only"})
	require.NoError(t, err)
	assert.False(t, draft.IsComplete())

	full, err := s.UpsertRCA(ctx, incident.ID, completeRCA())
	require.NoError(t, err)
	assert.True(t, full.IsComplete())
	assert.Equal(t, draft.ID, full.ID, "upsert replaces the single RCA record")

	_, err = s.UpsertRCA(ctx, "missing", completeRCA())
	assert.ErrorIs(t, err, ErrIncidentNotFound)
}

func TestTimeline_OrderedByCreationTime(t *testing.T) {
	s, _, _, clk := newTestService(t)
	ctx := context.Background()
	incident := createTestIncident(t, s, domain.SeveritySev2)

	for i := 0; i < 5; i++ {
		clk.Advance(time.Minute)
		_, err := s.AddComment(ctx, incident.ID, fmt.Sprintf("comment %d", i), "user-1")
		require.NoError(t, err)
	}

	events, err := s.ListEvents(ctx, incident.ID)
	require.NoError(t, err)
	require.Len(t, events, 6)
	for i := 1; i < len(events); i++ {
		assert.False(t, events[i].CreatedAt.Before(events[i-1].CreatedAt),
			"events must be non-decreasing by creation time")
	}
}

func TestGetIncident_DerivedBreachRecomputedOnRead(t *testing.T) {
	s, _, _, clk := newTestService(t)
	ctx := context.Background()
	incident := createTestIncident(t, s, domain.SeveritySev2) // 4h budget

	detail, err := s.GetIncident(ctx, incident.ID)
	require.NoError(t, err)
	assert.False(t, detail.SLABreached)

	clk.Advance(5 * time.Hour)
	detail, err = s.GetIncident(ctx, incident.ID)
	require.NoError(t, err)
	assert.True(t, detail.SLABreached)
}

func TestServiceMetrics_BreachRateScenario(t *testing.T) {
	s, _, _, clk := newTestService(t)
	ctx := context.Background()

	// Two incidents with a 4h budget; advance past one deadline only.
	createTestIncident(t, s, domain.SeveritySev2)
	clk.Advance(5 * time.Hour)
	createTestIncident(t, s, domain.SeveritySev2)

	m, err := s.Metrics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, m.TotalIncidents)
	assert.Equal(t, 2, m.OpenIncidents)
	assert.Equal(t, 0, m.ClosedIncidents)
	assert.InDelta(t, 50.0, m.BreachRate, 0.001)
}

func TestGenerateAlerts_ClampsCount(t *testing.T) {
	s, _, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := s.GenerateAlerts(ctx, 0, "user-1")
	require.NoError(t, err)
	assert.Len(t, created, 1)

	created, err = s.GenerateAlerts(ctx, 100, "user-1")
	require.NoError(t, err)
	assert.Len(t, created, 25)

	for _, incident := range created {
		assert.Equal(t, domain.IncidentStatusNew, incident.Status)
		require.NotNil(t, incident.AssigneeID)
		assert.Equal(t, "user-1", *incident.AssigneeID)
	}
}
