package incidents

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/bissquit/incident-console/internal/domain"
	"github.com/bissquit/incident-console/internal/pkg/httputil"
	"github.com/bissquit/incident-console/internal/sla"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// Handler handles HTTP requests for the incidents module.
type Handler struct {
	service   *Service
	validator *validator.Validate
}

// NewHandler creates a new incidents handler.
func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(),
	}
}

// RegisterRoutes registers incident routes. All of them require
// authentication.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/incidents", func(r chi.Router) {
		r.Get("/", h.ListIncidents)
		r.Post("/", h.CreateIncident)
		r.Get("/{id}", h.GetIncident)
		r.Post("/{id}/status", h.TransitionStatus)
		r.Post("/{id}/comments", h.AddComment)
		r.Post("/{id}/apply-runbook-step", h.ApplyRunbookStep)
		r.Put("/{id}/rca", h.UpsertRCA)
		r.Get("/{id}/report.md", h.ExportReport)
	})

	r.Get("/metrics", h.Metrics)
	r.Post("/alerts/generate", h.GenerateAlerts)
}

// CreateIncidentRequest represents the request body for creating an incident.
type CreateIncidentRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=255"`
	Description string  `json:"description"`
	Severity    string  `json:"severity" validate:"required,oneof=SEV1 SEV2 SEV3 SEV4"`
	ServiceID   string  `json:"service_id" validate:"required,uuid"`
	AssigneeID  *string `json:"assignee_id" validate:"omitempty,uuid"`
}

// StatusUpdateRequest represents the request body for a status transition.
type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required,oneof=New Investigating Mitigated Resolved Closed"`
	Note   string `json:"note"`
}

// CommentRequest represents the request body for adding a comment.
type CommentRequest struct {
	Body string `json:"body" validate:"required,min=1"`
}

// RunbookStepRequest represents the request body for applying a runbook step.
type RunbookStepRequest struct {
	RunbookID string `json:"runbook_id" validate:"required,uuid"`
	StepIndex int    `json:"step_index" validate:"gte=0"`
}

// RCARequest represents the request body for upserting an RCA.
// Fields are intentionally not required so partial drafts can be saved.
type RCARequest struct {
	RootCause           string `json:"root_cause"`
	ContributingFactors string `json:"contributing_factors"`
	CorrectiveActions   string `json:"corrective_actions"`
	PreventionActions   string `json:"prevention_actions"`
}

// AlertGenerateRequest represents the request body for the synthetic alert
// generator.
type AlertGenerateRequest struct {
	Count int `json:"count"`
}

// CreateIncident handles POST /incidents.
func (h *Handler) CreateIncident(w http.ResponseWriter, r *http.Request) {
	var req CreateIncidentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	incident, err := h.service.CreateIncident(r.Context(), CreateIncidentInput{
		Title:       req.Title,
		Description: req.Description,
		Severity:    domain.Severity(req.Severity),
		ServiceID:   req.ServiceID,
		AssigneeID:  req.AssigneeID,
	}, httputil.GetUserID(r.Context()))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	httputil.Success(w, http.StatusCreated, incident)
}

// GetIncident handles GET /incidents/{id}.
func (h *Handler) GetIncident(w http.ResponseWriter, r *http.Request) {
	detail, err := h.service.GetIncident(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	httputil.Success(w, http.StatusOK, detail)
}

// ListIncidents handles GET /incidents.
func (h *Handler) ListIncidents(w http.ResponseWriter, r *http.Request) {
	filters := IncidentFilters{}

	q := r.URL.Query()
	if v := q.Get("status"); v != "" {
		status := domain.IncidentStatus(v)
		filters.Status = &status
	}
	if v := q.Get("severity"); v != "" {
		severity := domain.Severity(v)
		filters.Severity = &severity
	}
	if v := q.Get("service_id"); v != "" {
		filters.ServiceID = &v
	}
	if v := q.Get("assignee_id"); v != "" {
		filters.AssigneeID = &v
	}

	incidents, err := h.service.ListIncidents(r.Context(), filters)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	httputil.Success(w, http.StatusOK, incidents)
}

// TransitionStatus handles POST /incidents/{id}/status.
func (h *Handler) TransitionStatus(w http.ResponseWriter, r *http.Request) {
	var req StatusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	incident, err := h.service.TransitionStatus(
		r.Context(),
		chi.URLParam(r, "id"),
		domain.IncidentStatus(req.Status),
		req.Note,
		httputil.GetUserID(r.Context()),
	)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	httputil.Success(w, http.StatusOK, incident)
}

// AddComment handles POST /incidents/{id}/comments.
func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	var req CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	event, err := h.service.AddComment(r.Context(), chi.URLParam(r, "id"), req.Body, httputil.GetUserID(r.Context()))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	httputil.Success(w, http.StatusCreated, event)
}

// ApplyRunbookStep handles POST /incidents/{id}/apply-runbook-step.
func (h *Handler) ApplyRunbookStep(w http.ResponseWriter, r *http.Request) {
	var req RunbookStepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	event, err := h.service.ApplyRunbookStep(
		r.Context(),
		chi.URLParam(r, "id"),
		req.RunbookID,
		req.StepIndex,
		httputil.GetUserID(r.Context()),
	)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	httputil.Success(w, http.StatusCreated, event)
}

// UpsertRCA handles PUT /incidents/{id}/rca.
func (h *Handler) UpsertRCA(w http.ResponseWriter, r *http.Request) {
	var req RCARequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	rca, err := h.service.UpsertRCA(r.Context(), chi.URLParam(r, "id"), RCAInput(req))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	httputil.Success(w, http.StatusOK, rca)
}

// ExportReport handles GET /incidents/{id}/report.md.
func (h *Handler) ExportReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.RenderReport(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(report)); err != nil {
		slog.Error("failed to write report", "error", err)
	}
}

// Metrics handles GET /metrics (API metrics, not Prometheus).
func (h *Handler) Metrics(w http.ResponseWriter, r *http.Request) {
	m, err := h.service.Metrics(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	httputil.Success(w, http.StatusOK, m)
}

// GenerateAlerts handles POST /alerts/generate.
func (h *Handler) GenerateAlerts(w http.ResponseWriter, r *http.Request) {
	var req AlertGenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	incidents, err := h.service.GenerateAlerts(r.Context(), req.Count, httputil.GetUserID(r.Context()))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	httputil.Success(w, http.StatusCreated, incidents)
}

func (h *Handler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrIncidentNotFound),
		errors.Is(err, ErrServiceNotFound),
		errors.Is(err, ErrRunbookNotFound):
		httputil.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrStepIndexOutOfRange),
		errors.Is(err, sla.ErrPolicyNotFound):
		httputil.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidTransition),
		errors.Is(err, ErrRCAIncomplete):
		httputil.Error(w, http.StatusConflict, err.Error())
	default:
		slog.Error("internal error", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "internal error")
	}
}
