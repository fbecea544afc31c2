package incidents

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/bissquit/incident-console/internal/clock"
	"github.com/bissquit/incident-console/internal/domain"
	"github.com/bissquit/incident-console/internal/pkg/metrics"
)

// MonitorConfig contains breach monitor configuration.
type MonitorConfig struct {
	PollInterval time.Duration
}

// DefaultMonitorConfig returns default monitor configuration.
func DefaultMonitorConfig() MonitorConfig {
	return MonitorConfig{
		PollInterval: 30 * time.Second,
	}
}

// Monitor periodically scans open incidents for SLA breaches, exports
// per-severity breach gauges and logs incidents that crossed their
// deadline since the previous scan.
type Monitor struct {
	config MonitorConfig
	repo   Repository
	clock  clock.Clock

	stopCh chan struct{}
	wg     sync.WaitGroup

	mu       sync.Mutex
	reported map[string]struct{}
}

// NewMonitor creates a new SLA breach monitor.
func NewMonitor(config MonitorConfig, repo Repository, clk clock.Clock) *Monitor {
	return &Monitor{
		config:   config,
		repo:     repo,
		clock:    clk,
		stopCh:   make(chan struct{}),
		reported: make(map[string]struct{}),
	}
}

// Start launches the monitor goroutine.
func (m *Monitor) Start(ctx context.Context) {
	slog.Info("starting sla breach monitor", "poll_interval", m.config.PollInterval)

	m.wg.Add(1)
	go m.run(ctx)
}

// Stop gracefully stops the monitor.
func (m *Monitor) Stop() {
	close(m.stopCh)
	m.wg.Wait()
	slog.Info("sla breach monitor stopped")
}

func (m *Monitor) run(ctx context.Context) {
	defer m.wg.Done()

	ticker := time.NewTicker(m.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-m.stopCh:
			return
		case <-ticker.C:
			m.Scan(ctx)
		}
	}
}

// Scan runs one breach sweep. Exported for tests and for an immediate
// sweep on startup.
func (m *Monitor) Scan(ctx context.Context) {
	incidents, err := m.repo.ListIncidents(ctx, IncidentFilters{})
	if err != nil {
		slog.Error("sla breach scan failed", "error", err)
		return
	}

	now := m.clock.Now()
	breached := make(map[domain.Severity]int, len(domain.Severities))
	for _, severity := range domain.Severities {
		breached[severity] = 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, incident := range incidents {
		if !incident.IsOpen() {
			delete(m.reported, incident.ID)
			continue
		}
		if !incident.SLABreached(now) {
			continue
		}

		breached[incident.Severity]++

		if _, seen := m.reported[incident.ID]; !seen {
			m.reported[incident.ID] = struct{}{}
			slog.Warn("incident breached sla deadline",
				"incident_id", incident.ID,
				"severity", incident.Severity,
				"deadline", incident.SLADeadline(),
			)
		}
	}

	for severity, count := range breached {
		metrics.SLABreachedIncidents.WithLabelValues(string(severity)).Set(float64(count))
	}
}
