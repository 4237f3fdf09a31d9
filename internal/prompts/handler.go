package prompts

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/promptstash/promptstash/pkg/handlers"
	"github.com/promptstash/promptstash/pkg/middleware"
	"github.com/promptstash/promptstash/pkg/pagination"
	"github.com/promptstash/promptstash/pkg/routes"
)

// Handler provides HTTP endpoints for prompt operations.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// NewHandler creates a Handler with the given system, logger, and pagination config.
func NewHandler(
	sys System,
	logger *slog.Logger,
	pagination pagination.Config,
) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "prompts"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for prompt endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/prompts",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "POST", Pattern: "", Handler: h.Create},
			{Method: "POST", Pattern: "/combine", Handler: h.Combine},
			{Method: "PUT", Pattern: "/{id}", Handler: h.Update},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete},
		},
	}
}

// TagRoutes returns the route group definition for the tag listing endpoint.
func (h *Handler) TagRoutes() routes.Group {
	return routes.Group{
		Prefix: "/tags",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.Tags},
		},
	}
}

// List returns a paginated list of the caller's prompts with optional
// search, type, and tag filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	page, err := pagination.FromQuery(r.URL.Query(), h.pagination)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), owner, page, filters)
	if err != nil {
		h.respondError(w, err, ErrListFailed)
		return
	}

	handlers.RespondPage(w, http.StatusOK, result)
}

// Find returns a single prompt by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidID)
		return
	}

	p, err := h.sys.Find(r.Context(), owner, id)
	if err != nil {
		h.respondError(w, err, ErrFindFailed)
		return
	}

	handlers.RespondData(w, http.StatusOK, p)
}

// Create stores a new prompt owned by the caller.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	var cmd CreateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidBody)
		return
	}

	p, err := h.sys.Create(r.Context(), owner, cmd)
	if err != nil {
		h.respondError(w, err, ErrCreateFailed)
		return
	}

	handlers.RespondData(w, http.StatusCreated, p)
}

// Combine resolves the referenced source prompts and stores a new combined
// prompt owned by the caller.
func (h *Handler) Combine(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	var cmd CombineCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidBody)
		return
	}

	p, err := h.sys.Combine(r.Context(), owner, cmd)
	if err != nil {
		h.respondError(w, err, ErrCreateFailed)
		return
	}

	handlers.RespondData(w, http.StatusCreated, p)
}

// Update replaces the user-editable fields of a prompt by its UUID path parameter.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidID)
		return
	}

	var cmd UpdateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidBody)
		return
	}

	p, err := h.sys.Update(r.Context(), owner, id, cmd)
	if err != nil {
		h.respondError(w, err, ErrUpdateFailed)
		return
	}

	handlers.RespondData(w, http.StatusOK, p)
}

// Delete removes a prompt by its UUID path parameter.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidID)
		return
	}

	if err := h.sys.Delete(r.Context(), owner, id); err != nil {
		h.respondError(w, err, ErrDeleteFailed)
		return
	}

	handlers.RespondData(w, http.StatusOK, struct{}{})
}

// Tags returns the sorted distinct tags across the caller's prompts.
func (h *Handler) Tags(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	tags, err := h.sys.DistinctTags(r.Context(), owner)
	if err != nil {
		h.respondError(w, err, ErrTagsFailed)
		return
	}

	handlers.RespondData(w, http.StatusOK, tags)
}

// owner extracts the authenticated subject from the request context. The
// auth middleware guarantees its presence on normal deployments; a missing
// subject is rejected rather than trusted.
func (h *Handler) owner(w http.ResponseWriter, r *http.Request) (string, bool) {
	subject, ok := middleware.Subject(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, middleware.ErrUnauthorized)
		return "", false
	}
	return subject, true
}

// respondError maps a domain error to its HTTP status. Internal failures
// are logged and replaced with the operation's generic message.
func (h *Handler) respondError(w http.ResponseWriter, err error, fallback error) {
	status := MapHTTPStatus(err)
	if status == http.StatusInternalServerError && !errors.Is(err, fallback) {
		h.logger.Error("prompt operation failed", "error", err)
		err = fallback
	}
	handlers.RespondError(w, h.logger, status, err)
}
