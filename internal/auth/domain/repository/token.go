package repository

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the session identity embedded in access tokens.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// TokenService issues and validates access tokens.
type TokenService interface {
	GenerateToken(ctx context.Context, username, role string) (string, error)
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// CredentialVerifier checks a username/password pair. Implementations decide
// where credentials live; the login flow only sees accept or reject.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) error
}
