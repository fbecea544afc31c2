package incidents

import (
	"context"
	"testing"
	"time"

	"github.com/bissquit/incident-console/internal/clock"
	"github.com/bissquit/incident-console/internal/domain"
	"github.com/bissquit/incident-console/internal/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedMonitorIncident(t *testing.T, repo *mockRepository, severity domain.Severity, slaHours int, createdAt time.Time) *domain.Incident {
	t.Helper()

	incident := &domain.Incident{
		Title:     "test incident",
		Severity:  severity,
		Status:    domain.IncidentStatusNew,
		ServiceID: "svc-1",
		CreatedAt: createdAt,
		SLAHours:  slaHours,
	}
	require.NoError(t, repo.CreateIncidentTx(context.Background(), fakeTx{}, incident))
	return incident
}

func TestMonitorScan_CountsBreachedPerSeverity(t *testing.T) {
	repo := newMockRepository()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	fakeClock := clock.NewFake(now)

	// Two SEV1 past deadline, one SEV2 still inside its window.
	seedMonitorIncident(t, repo, domain.SeveritySev1, 1, now.Add(-3*time.Hour))
	seedMonitorIncident(t, repo, domain.SeveritySev1, 1, now.Add(-2*time.Hour))
	seedMonitorIncident(t, repo, domain.SeveritySev2, 4, now.Add(-1*time.Hour))

	monitor := NewMonitor(DefaultMonitorConfig(), repo, fakeClock)
	monitor.Scan(context.Background())

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.SLABreachedIncidents.WithLabelValues("SEV1")))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.SLABreachedIncidents.WithLabelValues("SEV2")))
}

func TestMonitorScan_GaugeDropsWhenIncidentCloses(t *testing.T) {
	repo := newMockRepository()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	fakeClock := clock.NewFake(now)

	incident := seedMonitorIncident(t, repo, domain.SeveritySev3, 1, now.Add(-2*time.Hour))

	monitor := NewMonitor(DefaultMonitorConfig(), repo, fakeClock)
	monitor.Scan(context.Background())
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.SLABreachedIncidents.WithLabelValues("SEV3")))

	incident.Status = domain.IncidentStatusClosed
	closedAt := now
	incident.ClosedAt = &closedAt
	require.NoError(t, repo.UpdateIncidentTx(context.Background(), fakeTx{}, incident))

	monitor.Scan(context.Background())
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.SLABreachedIncidents.WithLabelValues("SEV3")))
}

func TestMonitorScan_ReportsEachIncidentOnce(t *testing.T) {
	repo := newMockRepository()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	fakeClock := clock.NewFake(now)

	incident := seedMonitorIncident(t, repo, domain.SeveritySev4, 1, now.Add(-2*time.Hour))

	monitor := NewMonitor(DefaultMonitorConfig(), repo, fakeClock)
	monitor.Scan(context.Background())
	monitor.Scan(context.Background())

	monitor.mu.Lock()
	_, seen := monitor.reported[incident.ID]
	monitor.mu.Unlock()
	assert.True(t, seen)

	// Closing the incident clears its reported entry so a hypothetical
	// reopen would be reported again.
	incident.Status = domain.IncidentStatusClosed
	closedAt := now
	incident.ClosedAt = &closedAt
	require.NoError(t, repo.UpdateIncidentTx(context.Background(), fakeTx{}, incident))
	monitor.Scan(context.Background())

	monitor.mu.Lock()
	_, seen = monitor.reported[incident.ID]
	monitor.mu.Unlock()
	assert.False(t, seen)
}

func TestMonitorStartStop(t *testing.T) {
	repo := newMockRepository()
	fakeClock := clock.NewFake(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))

	monitor := NewMonitor(MonitorConfig{PollInterval: 10 * time.Millisecond}, repo, fakeClock)
	monitor.Start(context.Background())
	time.Sleep(30 * time.Millisecond)
	monitor.Stop()
}
