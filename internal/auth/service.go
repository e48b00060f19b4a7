package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	sharedauth "github.com/kerala-gov/migrant-health/internal/shared/auth"
	"github.com/kerala-gov/migrant-health/internal/shared/config"
	"github.com/kerala-gov/migrant-health/internal/shared/errors"
)

// Service implements the demo login: plaintext credential check plus a
// signed session token. Intentionally not real authentication.
type Service struct {
	store    Store
	secret   []byte
	tokenTTL time.Duration
}

// NewService creates a login service
func NewService(store Store, cfg config.AuthConfig) *Service {
	return &Service{
		store:    store,
		secret:   []byte(cfg.JWTSecret),
		tokenTTL: time.Duration(cfg.TokenTTLMinutes) * time.Minute,
	}
}

// Login checks the credentials and issues a session token
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	user, err := s.store.FindByCredentials(ctx, username, password)
	if err != nil {
		return nil, err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue session token")
	}

	return &LoginResponse{Token: token, User: user}, nil
}

func (s *Service) issueToken(user *User) (string, error) {
	now := time.Now().UTC()

	claims := sharedauth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
		Username: user.Username,
		Role:     user.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
