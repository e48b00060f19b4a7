package dashboard

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	apperrors "github.com/kerala-gov/migrant-health/internal/shared/errors"
	"github.com/kerala-gov/migrant-health/internal/shared/events"
)

// Handler provides HTTP handlers for the SDG dashboard
type Handler struct {
	svc *Service
	bus *events.Bus
}

// NewHandler creates a new dashboard handler
func NewHandler(svc *Service, bus *events.Bus) *Handler {
	return &Handler{svc: svc, bus: bus}
}

// Routes registers the dashboard routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.Summary)

	return r
}

// Summary computes and returns the dashboard summary. An empty store is
// a defined outcome, not an error.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.Summary(r.Context())
	if errors.Is(err, ErrInsufficientData) {
		writeJSON(w, http.StatusOK, map[string]any{
			"insufficient_data": true,
			"message":           "need migrant profiles and health records to show analytics",
		})
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}

	if h.bus != nil {
		event := events.NewEvent("dashboard.computed", "dashboard", map[string]any{
			"total_migrants":       summary.TotalMigrants,
			"migrants_with_visits": summary.MigrantsWithVisits,
			"coverage_percent":     summary.CoveragePercent,
		})
		h.bus.Publish(r.Context(), event)
	}

	writeJSON(w, http.StatusOK, summary)
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")

	if appErr, ok := err.(*apperrors.AppError); ok {
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
