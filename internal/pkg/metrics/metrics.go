// Package metrics provides Prometheus metrics definitions.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "incidentconsole"

var (
	// HTTPRequestDuration tracks HTTP request latency.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "route", "status_code"},
	)

	// DBPoolConnections tracks database connection pool state.
	DBPoolConnections = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "db",
			Name:      "pool_connections",
			Help:      "Number of database connections by state",
		},
		[]string{"state"},
	)

	// IncidentsCreatedTotal counts incidents created by severity.
	IncidentsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "lifecycle",
			Name:      "incidents_created_total",
			Help:      "Total number of incidents created",
		},
		[]string{"severity"},
	)

	// IncidentTransitionsTotal counts successful status transitions by edge.
	IncidentTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "lifecycle",
			Name:      "incident_transitions_total",
			Help:      "Total number of successful incident status transitions",
		},
		[]string{"from", "to"},
	)

	// SLABreachedIncidents tracks open incidents currently past their SLA
	// deadline, by severity. Updated by the breach monitor.
	SLABreachedIncidents = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "sla",
			Name:      "breached_open_incidents",
			Help:      "Open incidents currently past their SLA deadline",
		},
		[]string{"severity"},
	)
)
