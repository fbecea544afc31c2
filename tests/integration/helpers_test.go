//go:build integration

package integration

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/bissquit/incident-console/internal/testutil"
	"github.com/stretchr/testify/require"
)

type userDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type serviceDTO struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	OwnerTeam string         `json:"owner_team"`
	SLAPolicy map[string]int `json:"sla_policy"`
}

type runbookDTO struct {
	ID        string   `json:"id"`
	ServiceID string   `json:"service_id"`
	Title     string   `json:"title"`
	Steps     []string `json:"steps"`
}

type incidentDTO struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Severity       string     `json:"severity"`
	Status         string     `json:"status"`
	ServiceID      string     `json:"service_id"`
	AssigneeID     *string    `json:"assignee_id"`
	SLAHours       int        `json:"sla_hours"`
	SLADeadline    time.Time  `json:"sla_deadline"`
	SLABreached    bool       `json:"sla_breached"`
	CreatedAt      time.Time  `json:"created_at"`
	AcknowledgedAt *time.Time `json:"acknowledged_at"`
	ResolvedAt     *time.Time `json:"resolved_at"`
	ClosedAt       *time.Time `json:"closed_at"`
}

type eventDTO struct {
	ID         string    `json:"id"`
	IncidentID string    `json:"incident_id"`
	Type       string    `json:"type"`
	Body       string    `json:"body"`
	CreatedBy  *string   `json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
}

type incidentDetailDTO struct {
	incidentDTO
	ServiceName string       `json:"service_name"`
	Events      []eventDTO   `json:"events"`
	Runbooks    []runbookDTO `json:"runbooks"`
	RCA         *rcaDTO      `json:"rca"`
}

type rcaDTO struct {
	ID                  string `json:"id"`
	IncidentID          string `json:"incident_id"`
	RootCause           string `json:"root_cause"`
	ContributingFactors string `json:"contributing_factors"`
	CorrectiveActions   string `json:"corrective_actions"`
	PreventionActions   string `json:"prevention_actions"`
}

type metricsDTO struct {
	TotalIncidents int     `json:"total_incidents"`
	OpenIncidents  int     `json:"open_incidents"`
	ClosedIncidents int    `json:"closed_incidents"`
	MTTAMinutes    float64 `json:"mtta_minutes"`
	MTTRMinutes    float64 `json:"mttr_minutes"`
	BreachRate     float64 `json:"breach_rate"`
}

type errorDTO struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// findService returns the seeded service with the given name.
func findService(t *testing.T, client *testutil.Client, name string) serviceDTO {
	t.Helper()

	resp, err := client.GET("/api/v1/services")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var envelope struct {
		Data []serviceDTO `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &envelope)

	for _, service := range envelope.Data {
		if service.Name == name {
			return service
		}
	}
	t.Fatalf("service %q not found", name)
	return serviceDTO{}
}

// createIncident creates an incident and returns it.
func createIncident(t *testing.T, client *testutil.Client, serviceID, severity, title string) incidentDTO {
	t.Helper()

	resp, err := client.POST("/api/v1/incidents", map[string]interface{}{
		"title":       title,
		"description": "integration test incident",
		"severity":    severity,
		"service_id":  serviceID,
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var envelope struct {
		Data incidentDTO `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &envelope)
	return envelope.Data
}

// transition moves an incident to the target status and returns the response.
func transition(t *testing.T, client *testutil.Client, incidentID, status string) (*http.Response, error) {
	t.Helper()
	return client.POST(fmt.Sprintf("/api/v1/incidents/%s/status", incidentID), map[string]string{
		"status": status,
	})
}

// putCompleteRCA stores a complete RCA on the incident.
func putCompleteRCA(t *testing.T, client *testutil.Client, incidentID string) {
	t.Helper()

	resp, err := client.PUT(fmt.Sprintf("/api/v1/incidents/%s/rca", incidentID), map[string]string{
		"root_cause":           "Connection pool exhaustion",
		"contributing_factors": "Retry storm from downstream clients",
		"corrective_actions":   "Scaled the pool and added circuit breaker",
		"prevention_actions":   "Load test before quarterly peak",
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()
}
