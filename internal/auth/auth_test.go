package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	sharedauth "github.com/kerala-gov/migrant-health/internal/shared/auth"
	"github.com/kerala-gov/migrant-health/internal/shared/config"
	apperrors "github.com/kerala-gov/migrant-health/internal/shared/errors"
)

func newTestService(t *testing.T) (*Service, *MemoryStore) {
	t.Helper()

	store := NewMemoryStore()
	if err := store.EnsureDefaultAdmin(context.Background()); err != nil {
		t.Fatalf("EnsureDefaultAdmin failed: %v", err)
	}

	cfg := config.AuthConfig{
		JWTSecret:       "test-secret",
		TokenTTLMinutes: 60,
	}
	return NewService(store, cfg), store
}

func TestLoginWithDefaultCredentials(t *testing.T) {
	svc, _ := newTestService(t)

	resp, err := svc.Login(context.Background(), DefaultUsername, DefaultPassword)
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if resp.Token == "" {
		t.Error("Token should not be empty")
	}

	if resp.User == nil {
		t.Fatal("User should be set")
	}

	if resp.User.Username != DefaultUsername {
		t.Errorf("Expected username '%s', got '%s'", DefaultUsername, resp.User.Username)
	}

	if resp.User.Role != DefaultRole {
		t.Errorf("Expected role '%s', got '%s'", DefaultRole, resp.User.Role)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), DefaultUsername, "wrong")
	if err == nil {
		t.Fatal("Expected error for wrong password")
	}

	if !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Errorf("Expected unauthorized error, got %v", err)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), "nobody", "admin")
	if err == nil {
		t.Fatal("Expected error for unknown user")
	}

	if !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Errorf("Expected unauthorized error, got %v", err)
	}
}

func TestIssuedTokenCarriesClaims(t *testing.T) {
	svc, _ := newTestService(t)

	resp, err := svc.Login(context.Background(), DefaultUsername, DefaultPassword)
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	claims := &sharedauth.Claims{}
	token, err := jwt.ParseWithClaims(resp.Token, claims, func(token *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	if err != nil {
		t.Fatalf("Token parse failed: %v", err)
	}

	if !token.Valid {
		t.Fatal("Token should be valid")
	}

	if claims.Username != DefaultUsername {
		t.Errorf("Expected username claim '%s', got '%s'", DefaultUsername, claims.Username)
	}

	if claims.Role != DefaultRole {
		t.Errorf("Expected role claim '%s', got '%s'", DefaultRole, claims.Role)
	}

	if claims.Subject != resp.User.ID.String() {
		t.Errorf("Expected subject '%s', got '%s'", resp.User.ID, claims.Subject)
	}

	if claims.ExpiresAt == nil {
		t.Error("Expiry claim should be set")
	}
}

func TestEnsureDefaultAdminIsIdempotent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.EnsureDefaultAdmin(ctx); err != nil {
		t.Fatalf("EnsureDefaultAdmin failed: %v", err)
	}

	first, err := store.FindByCredentials(ctx, DefaultUsername, DefaultPassword)
	if err != nil {
		t.Fatalf("FindByCredentials failed: %v", err)
	}

	if err := store.EnsureDefaultAdmin(ctx); err != nil {
		t.Fatalf("Second EnsureDefaultAdmin failed: %v", err)
	}

	second, err := store.FindByCredentials(ctx, DefaultUsername, DefaultPassword)
	if err != nil {
		t.Fatalf("FindByCredentials failed: %v", err)
	}

	if first.ID != second.ID {
		t.Error("Re-seeding should not replace the existing account")
	}
}
