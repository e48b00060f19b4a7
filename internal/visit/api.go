package visit

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
)

// Handler provides HTTP handlers for health records
type Handler struct {
	store Store
	bus   *events.Bus
}

// NewHandler creates a new health record handler
func NewHandler(store Store, bus *events.Bus) *Handler {
	return &Handler{store: store, bus: bus}
}

// Routes registers the health record routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListAll)
	r.Post("/", h.Add)

	return r
}

// ListAll lists every health record
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.ListAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":  records,
		"total": len(records),
	})
}

// Add saves a new health record. The migrant health ID is taken as given:
// a record may reference an unregistered migrant.
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	var req AddRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.BadRequest("invalid request body"))
		return
	}

	details := make(map[string]string)
	if req.MigrantID == "" {
		details["migrant_id"] = "migrant health ID is required"
	}
	if req.VisitDate == "" {
		details["visit_date"] = "visit date is required"
	}
	if len(details) > 0 {
		writeError(w, errors.Validation("validation failed", details))
		return
	}

	rec := &HealthRecord{
		ID:           types.NewID(),
		MigrantID:    req.MigrantID,
		VisitDate:    req.VisitDate,
		Facility:     req.Facility,
		Complaints:   req.Complaints,
		Diagnosis:    req.Diagnosis,
		Treatment:    req.Treatment,
		FollowUpDate: req.FollowUpDate,
		DoctorName:   req.DoctorName,
		SDGTag:       req.SDGTag,
		CreatedAt:    time.Now().UTC(),
	}

	if err := h.store.Add(r.Context(), rec); err != nil {
		writeError(w, err)
		return
	}

	metrics.RecordHealthRecordAdded(string(rec.SDGTag))

	// Publish event
	if h.bus != nil {
		actorID, actorName := actorFrom(r)
		event := events.NewEvent("record.added", "visit", map[string]any{
			"record_id":  rec.ID,
			"migrant_id": rec.MigrantID,
			"visit_date": rec.VisitDate,
			"sdg_tag":    rec.SDGTag,
		}).WithActor(actorID, actorName)

		h.bus.Publish(r.Context(), event)
	}

	writeJSON(w, http.StatusCreated, rec)
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
