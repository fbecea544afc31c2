package incidents

import (
	"math"
	"time"

	"github.com/bissquit/incident-console/internal/domain"
)

// Metrics holds operational metrics aggregated over the incident set.
// Values are recomputed from current data on every call because breach state
// of open incidents depends on the evaluation time.
type Metrics struct {
	TotalIncidents  int     `json:"total_incidents"`
	OpenIncidents   int     `json:"open_incidents"`
	ClosedIncidents int     `json:"closed_incidents"`
	MTTAMinutes     float64 `json:"mtta_minutes"`
	MTTRMinutes     float64 `json:"mttr_minutes"`
	BreachRate      float64 `json:"breach_rate"`
}

// ComputeMetrics aggregates metrics over incidents at evaluation time now.
//
// MTTA averages acknowledged_at-created_at over acknowledged incidents,
// MTTR averages resolved_at-created_at over resolved incidents; both are 0
// when no incident qualifies. BreachRate is the percentage of all incidents
// whose derived breach state is true at now, rounded to one decimal place.
func ComputeMetrics(incidents []domain.Incident, now time.Time) Metrics {
	m := Metrics{TotalIncidents: len(incidents)}
	if len(incidents) == 0 {
		return m
	}

	var ackSum, resolveSum float64
	var ackCount, resolveCount, breached int

	for _, incident := range incidents {
		if incident.IsOpen() {
			m.OpenIncidents++
		} else {
			m.ClosedIncidents++
		}

		if incident.AcknowledgedAt != nil {
			ackSum += incident.AcknowledgedAt.Sub(incident.CreatedAt).Minutes()
			ackCount++
		}
		if incident.ResolvedAt != nil {
			resolveSum += incident.ResolvedAt.Sub(incident.CreatedAt).Minutes()
			resolveCount++
		}
		if incident.SLABreached(now) {
			breached++
		}
	}

	if ackCount > 0 {
		m.MTTAMinutes = round2(ackSum / float64(ackCount))
	}
	if resolveCount > 0 {
		m.MTTRMinutes = round2(resolveSum / float64(resolveCount))
	}
	m.BreachRate = round1(float64(breached) / float64(len(incidents)) * 100)

	return m
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
