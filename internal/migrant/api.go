package migrant

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/kerala-gov/migrant-health/internal/shared/auth"
	"github.com/kerala-gov/migrant-health/internal/shared/errors"
	"github.com/kerala-gov/migrant-health/internal/shared/events"
	"github.com/kerala-gov/migrant-health/internal/shared/metrics"
	"github.com/kerala-gov/migrant-health/internal/shared/types"
	"github.com/kerala-gov/migrant-health/internal/visit"
)

// Handler provides HTTP handlers for migrant registration and lookup
type Handler struct {
	store   Store
	records visit.Store
	bus     *events.Bus
}

// NewHandler creates a new migrant handler
func NewHandler(store Store, records visit.Store, bus *events.Bus) *Handler {
	return &Handler{store: store, records: records, bus: bus}
}

// Routes registers the migrant routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/", h.Register)

	r.Route("/{migrantID}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Get("/records", h.ListRecords)
	})

	return r
}

// List lists all registered migrant profiles
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	migrants, err := h.store.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":  migrants,
		"total": len(migrants),
	})
}

// Get looks up a profile by migrant health ID (exact match)
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	migrantID := chi.URLParam(r, "migrantID")

	m, err := h.store.GetByMigrantID(r.Context(), migrantID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, m)
}

// ListRecords lists the health records for a migrant health ID, newest
// visit first. The ID is not required to belong to a registered profile.
func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	migrantID := chi.URLParam(r, "migrantID")

	records, err := h.records.ListForMigrant(r.Context(), migrantID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":  records,
		"total": len(records),
	})
}

// Register registers a new migrant worker
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterMigrantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.BadRequest("invalid request body"))
		return
	}

	if req.MigrantID == "" {
		writeError(w, errors.Validation("validation failed", map[string]string{
			"migrant_id": "migrant health ID is required",
		}))
		return
	}

	m := &Migrant{
		ID:           types.NewID(),
		MigrantID:    req.MigrantID,
		Name:         req.Name,
		Age:          req.Age,
		Gender:       req.Gender,
		StateOrigin:  req.StateOrigin,
		LanguagePref: req.LanguagePref,
		Phone:        req.Phone,
		Aadhaar:      req.Aadhaar,
		District:     req.District,
		Occupation:   req.Occupation,
		CreatedAt:    time.Now().UTC(),
	}

	if err := h.store.Create(r.Context(), m); err != nil {
		writeError(w, err)
		return
	}

	metrics.RecordMigrantRegistered()

	// Publish event
	if h.bus != nil {
		actorID, actorName := actorFrom(r)
		event := events.NewEvent("migrant.registered", "migrant", map[string]any{
			"migrant_id": m.MigrantID,
			"district":   m.District,
		}).WithActor(actorID, actorName)

		h.bus.Publish(r.Context(), event)
	}

	writeJSON(w, http.StatusCreated, m)
}

func actorFrom(r *http.Request) (types.ID, string) {
	user := auth.GetUser(r.Context())
	if user == nil {
		return "", ""
	}
	return user.ID, user.Username
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
