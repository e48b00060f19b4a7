package auth

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kerala-gov/migrant-health/internal/shared/errors"
	"github.com/kerala-gov/migrant-health/internal/shared/metrics"
	"github.com/kerala-gov/migrant-health/internal/shared/middleware"
)

// Handler provides the login HTTP handler
type Handler struct {
	svc     *Service
	limiter *middleware.IPRateLimiter
}

// NewHandler creates a new auth handler. limiter bounds login attempts
// per client IP and may be nil in tests.
func NewHandler(svc *Service, limiter *middleware.IPRateLimiter) *Handler {
	return &Handler{svc: svc, limiter: limiter}
}

// Routes registers the auth routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	if h.limiter != nil {
		r.With(h.limiter.Middleware).Post("/login", h.Login)
	} else {
		r.Post("/login", h.Login)
	}

	return r
}

// Login authenticates an operator and returns a session token
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.BadRequest("invalid request body"))
		return
	}

	details := make(map[string]string)
	if req.Username == "" {
		details["username"] = "username is required"
	}
	if req.Password == "" {
		details["password"] = "password is required"
	}
	if len(details) > 0 {
		writeError(w, errors.Validation("validation failed", details))
		return
	}

	resp, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		metrics.RecordLoginAttempt(false)
		writeError(w, err)
		return
	}

	metrics.RecordLoginAttempt(true)
	writeJSON(w, http.StatusOK, resp)
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
