package catalog

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/bissquit/incident-console/internal/domain"
	"github.com/bissquit/incident-console/internal/pkg/httputil"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// Handler handles HTTP requests for the catalog module.
type Handler struct {
	service   *Service
	validator *validator.Validate
}

// NewHandler creates a new catalog handler.
func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(),
	}
}

// RegisterRoutes registers read-only catalog routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/services", func(r chi.Router) {
		r.Get("/", h.ListServices)
		r.Get("/{id}", h.GetService)
	})

	r.Get("/runbooks", h.ListRunbooks)
	r.Get("/runbooks/{id}", h.GetRunbook)
}

// RegisterManagerRoutes registers routes that require the manager role.
func (h *Handler) RegisterManagerRoutes(r chi.Router) {
	r.Post("/services", h.CreateService)
	r.Post("/runbooks", h.CreateRunbook)
}

// CreateServiceRequest represents the request body for creating a service.
type CreateServiceRequest struct {
	Name      string         `json:"name" validate:"required,min=1,max=255"`
	OwnerTeam string         `json:"owner_team" validate:"required,min=1,max=255"`
	SLAPolicy map[string]int `json:"sla_policy" validate:"required,min=1,dive,gt=0"`
}

// ToDomain converts the request to a domain model.
func (r *CreateServiceRequest) ToDomain() *domain.Service {
	policy := make(domain.SLAPolicy, len(r.SLAPolicy))
	for severity, hours := range r.SLAPolicy {
		policy[domain.Severity(severity)] = hours
	}

	return &domain.Service{
		Name:      r.Name,
		OwnerTeam: r.OwnerTeam,
		SLAPolicy: policy,
	}
}

// CreateRunbookRequest represents the request body for creating a runbook.
type CreateRunbookRequest struct {
	ServiceID string   `json:"service_id" validate:"required,uuid"`
	Title     string   `json:"title" validate:"required,min=1,max=255"`
	Steps     []string `json:"steps" validate:"required,min=1,dive,min=1"`
}

// ToDomain converts the request to a domain model.
func (r *CreateRunbookRequest) ToDomain() *domain.Runbook {
	return &domain.Runbook{
		ServiceID: r.ServiceID,
		Title:     r.Title,
		Steps:     r.Steps,
	}
}

// CreateService handles POST /services request.
func (h *Handler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req CreateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	service := req.ToDomain()
	if err := h.service.CreateService(r.Context(), service); err != nil {
		h.handleServiceError(w, err)
		return
	}

	httputil.Success(w, http.StatusCreated, service)
}

// GetService handles GET /services/{id} request.
func (h *Handler) GetService(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	service, err := h.service.GetServiceByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	httputil.Success(w, http.StatusOK, service)
}

// ListServices handles GET /services request.
func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.service.ListServices(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	httputil.Success(w, http.StatusOK, services)
}

// CreateRunbook handles POST /runbooks request.
func (h *Handler) CreateRunbook(w http.ResponseWriter, r *http.Request) {
	var req CreateRunbookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	runbook := req.ToDomain()
	if err := h.service.CreateRunbook(r.Context(), runbook); err != nil {
		h.handleServiceError(w, err)
		return
	}

	httputil.Success(w, http.StatusCreated, runbook)
}

// GetRunbook handles GET /runbooks/{id} request.
func (h *Handler) GetRunbook(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	runbook, err := h.service.GetRunbookByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	httputil.Success(w, http.StatusOK, runbook)
}

// ListRunbooks handles GET /runbooks request.
func (h *Handler) ListRunbooks(w http.ResponseWriter, r *http.Request) {
	filter := RunbookFilter{}

	if serviceID := r.URL.Query().Get("service_id"); serviceID != "" {
		filter.ServiceID = &serviceID
	}

	runbooks, err := h.service.ListRunbooks(r.Context(), filter)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	httputil.Success(w, http.StatusOK, runbooks)
}

func (h *Handler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrServiceNotFound), errors.Is(err, ErrRunbookNotFound):
		httputil.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidSeverity):
		httputil.Error(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("internal error", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "internal error")
	}
}
