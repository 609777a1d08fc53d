package usecase

import (
	"context"
	"crypto/subtle"
	"errors"

	"shipping-admin/internal/admin/config"
	"shipping-admin/internal/auth/domain/repository"
	"shipping-admin/internal/shared/eventbus"
	"shipping-admin/internal/shared/logger"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenInvalid       = errors.New("token is invalid")
)

// devFallbackPassword authenticates the default admin account when neither a
// bcrypt hash nor a plain password is configured. Development only.
const devFallbackPassword = "admin123"

// AuthUsecaseInterface defines the contract for the session flows.
type AuthUsecaseInterface interface {
	Login(ctx context.Context, req LoginRequest) (string, *repository.Claims, error)
	Logout(ctx context.Context, username string)
	ValidateToken(ctx context.Context, tokenString string) (*repository.Claims, error)
}

// LoginRequest represents the login request
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// StaticVerifier checks credentials against the configured admin account. The
// bcrypt hash takes precedence; a configured plain password, and finally the
// development fallback, are compared in constant time.
type StaticVerifier struct {
	username     string
	passwordHash string
	password     string
}

// NewStaticVerifier creates a verifier for the configured admin account.
func NewStaticVerifier(cfg *config.Config) *StaticVerifier {
	return &StaticVerifier{
		username:     cfg.AdminUsername,
		passwordHash: cfg.AdminPasswordHash,
		password:     cfg.AdminPassword,
	}
}

// Verify implements repository.CredentialVerifier.
func (v *StaticVerifier) Verify(ctx context.Context, username, password string) error {
	if subtle.ConstantTimeCompare([]byte(username), []byte(v.username)) != 1 {
		// Still burn a comparison so unknown usernames cost the same.
		_ = bcrypt.CompareHashAndPassword([]byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"), []byte(password))
		return ErrInvalidCredentials
	}

	if v.passwordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(v.passwordHash), []byte(password)); err != nil {
			return ErrInvalidCredentials
		}
		return nil
	}

	expected := v.password
	if expected == "" {
		expected = devFallbackPassword
	}
	if subtle.ConstantTimeCompare([]byte(password), []byte(expected)) != 1 {
		return ErrInvalidCredentials
	}
	return nil
}

// AuthUsecase implements the session logic over a pluggable verifier.
type AuthUsecase struct {
	verifier repository.CredentialVerifier
	tokenSvc repository.TokenService
	bus      eventbus.EventBusInterface
	log      logger.Logger
}

// NewAuthUsecase creates a new instance of AuthUsecase.
func NewAuthUsecase(
	verifier repository.CredentialVerifier,
	tokenSvc repository.TokenService,
	bus eventbus.EventBusInterface,
	log logger.Logger,
) *AuthUsecase {
	return &AuthUsecase{
		verifier: verifier,
		tokenSvc: tokenSvc,
		bus:      bus,
		log:      log.WithComponent("auth"),
	}
}

// Login verifies credentials and issues an access token.
func (uc *AuthUsecase) Login(ctx context.Context, req LoginRequest) (string, *repository.Claims, error) {
	if req.Username == "" || req.Password == "" {
		return "", nil, ErrInvalidCredentials
	}

	if err := uc.verifier.Verify(ctx, req.Username, req.Password); err != nil {
		uc.log.Warnf("Login failed for %q", req.Username)
		return "", nil, ErrInvalidCredentials
	}

	token, err := uc.tokenSvc.GenerateToken(ctx, req.Username, "admin")
	if err != nil {
		uc.log.Errorf("Failed to issue token: %v", err)
		return "", nil, err
	}

	claims, err := uc.tokenSvc.ValidateToken(ctx, token)
	if err != nil {
		return "", nil, err
	}

	uc.bus.PublishAndForget(ctx, eventbus.NewBasicEventWithSource(eventbus.EventTypeUserLoggedIn, req.Username, "auth"))
	uc.log.Infof("User %q logged in", req.Username)
	return token, claims, nil
}

// Logout announces the end of a session. Tokens are stateless, so there is
// nothing to revoke server side; the transport clears the cookie.
func (uc *AuthUsecase) Logout(ctx context.Context, username string) {
	uc.bus.PublishAndForget(ctx, eventbus.NewBasicEventWithSource(eventbus.EventTypeUserLoggedOut, username, "auth"))
	uc.log.Infof("User %q logged out", username)
}

// ValidateToken validates a token string and returns its claims.
func (uc *AuthUsecase) ValidateToken(ctx context.Context, tokenString string) (*repository.Claims, error) {
	claims, err := uc.tokenSvc.ValidateToken(ctx, tokenString)
	if err != nil {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
