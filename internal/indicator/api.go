package indicator

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kerala-gov/migrant-health/internal/shared/errors"
	"github.com/kerala-gov/migrant-health/internal/shared/events"
	"github.com/kerala-gov/migrant-health/internal/shared/metrics"
)

// Handler provides HTTP handlers for SDG indicators
type Handler struct {
	store Store
	bus   *events.Bus
}

// NewHandler creates a new indicator handler
func NewHandler(store Store, bus *events.Bus) *Handler {
	return &Handler{store: store, bus: bus}
}

// Routes registers the indicator routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Put("/{name}", h.Upsert)

	return r
}

// List lists all stored indicators
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	indicators, err := h.store.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":  indicators,
		"total": len(indicators),
	})
}

// Upsert writes an indicator value by name (manual entry)
func (h *Handler) Upsert(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		writeError(w, errors.BadRequest("indicator name is required"))
		return
	}

	var req UpsertIndicatorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.BadRequest("invalid request body"))
		return
	}

	ind, err := h.store.Upsert(r.Context(), name, req.Value)
	if err != nil {
		writeError(w, err)
		return
	}

	metrics.RecordIndicatorUpsert()

	if h.bus != nil {
		event := events.NewEvent("indicator.updated", "indicator", map[string]any{
			"indicator_name":  ind.Name,
			"indicator_value": ind.Value,
		})
		h.bus.Publish(r.Context(), event)
	}

	writeJSON(w, http.StatusOK, ind)
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")

	if appErr, ok := err.(*errors.AppError); ok {
		w.WriteHeader(appErr.HTTPStatus)
		json.NewEncoder(w).Encode(map[string]any{
			"error":   appErr.Message,
			"code":    appErr.Code,
			"details": appErr.Details,
		})
		return
	}

	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(map[string]string{"error": "internal server error"})
}
