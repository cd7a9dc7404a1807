// Package handler exposes the ping HTTP API consumed by the map page.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pingmap/internal/ping/service"
	id "pingmap/pkg/domain"
	dErrors "pingmap/pkg/domain-errors"
	"pingmap/pkg/platform/httputil"
	"pingmap/pkg/requestcontext"
)

// Handler serves the JSON ping endpoints. All routes require an
// authenticated session; the identity comes from the request context.
type Handler struct {
	pings  *service.PingService
	logger *slog.Logger
}

// New creates a ping API handler.
func New(pings *service.PingService, logger *slog.Logger) *Handler {
	return &Handler{pings: pings, logger: logger}
}

// Routes registers the ping endpoints on the router. The caller wraps the
// group in the session middleware.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/get_pings", h.list)
	r.Post("/add_ping", h.create)
	r.Put("/update_ping/{id}", h.update)
	r.Delete("/delete_ping/{id}", h.remove)
}

type pingResponse struct {
	ID     string  `json:"id"`
	UserID string  `json:"user_id"`
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Info   string  `json:"info"`
}

type pingRequest struct {
	Lat  *float64 `json:"lat"`
	Lng  *float64 `json:"lng"`
	Info string   `json:"info"`
}

func (req pingRequest) fields() service.PingFields {
	return service.PingFields{Lat: req.Lat, Lng: req.Lng, Info: req.Info}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	owner := requestcontext.UserID(r.Context())

	pings, err := h.pings.List(r.Context(), owner)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	result := make([]pingResponse, 0, len(pings))
	for _, p := range pings {
		result = append(result, pingResponse{
			ID:     p.ID.String(),
			UserID: p.OwnerID.String(),
			Lat:    p.Lat,
			Lng:    p.Lng,
			Info:   p.Info,
		})
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.Decode[pingRequest](w, r)
	if !ok {
		return
	}
	owner := requestcontext.UserID(r.Context())

	ping, err := h.pings.Create(r.Context(), owner, req.fields())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"id":      ping.ID.String(),
	})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	pingID, ok := h.pathID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.Decode[pingRequest](w, r)
	if !ok {
		return
	}
	owner := requestcontext.UserID(r.Context())

	affected, err := h.pings.Update(r.Context(), owner, pingID, req.fields())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"success": affected})
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	pingID, ok := h.pathID(w, r)
	if !ok {
		return
	}
	owner := requestcontext.UserID(r.Context())

	affected, err := h.pings.Delete(r.Context(), owner, pingID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"success": affected})
}

// pathID parses the {id} path segment. A malformed id is a client error,
// answered before any store access.
func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (id.PingID, bool) {
	pingID, err := id.ParsePingID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "Identificador inválido",
		})
		return id.PingID{}, false
	}
	return pingID, true
}

// fail renders a service error in the ping API shape. Validation failures
// carry their message; anything else is logged and answered as a bare 500.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if dErrors.HasCode(err, dErrors.CodeValidation) {
		httputil.WriteJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   dErrors.MessageOf(err),
		})
		return
	}

	h.logger.ErrorContext(r.Context(), "ping operation failed",
		"path", r.URL.Path, "error", err)
	httputil.WriteJSON(w, http.StatusInternalServerError, map[string]any{
		"success": false,
		"error":   "internal_error",
	})
}
