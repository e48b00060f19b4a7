package auth

import (
	"time"

	"github.com/kerala-gov/migrant-health/internal/shared/types"
)

// Default operator account seeded on startup. Demo convenience carried
// over from the prototype; replace before any real deployment.
const (
	DefaultUsername = "admin"
	DefaultPassword = "admin"
	DefaultRole     = "doctor"
)

// User is an operator account for the demo login
type User struct {
	ID        types.ID  `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginRequest is the demo login request
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the session token and the operator it belongs to
type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
