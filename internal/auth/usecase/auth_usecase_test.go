package usecase

import (
	"context"
	"testing"
	"time"

	"shipping-admin/internal/admin/config"
	"shipping-admin/internal/auth/adapter/security"
	"shipping-admin/internal/shared/eventbus"
	"shipping-admin/internal/shared/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthFixture(t *testing.T, cfg *config.Config) *AuthUsecase {
	t.Helper()
	if cfg.JWTSecretKey == "" {
		cfg.JWTSecretKey = "test-secret-key"
	}
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "shipping-admin-test"
	}
	if cfg.AccessTokenTTL <= 0 {
		cfg.AccessTokenTTL = time.Hour
	}
	if cfg.AdminUsername == "" {
		cfg.AdminUsername = "admin"
	}

	tokenSvc, err := security.NewJWTokenService(cfg)
	require.NoError(t, err)

	log := logger.NewLoggerWithConfig("error", "text")
	return NewAuthUsecase(NewStaticVerifier(cfg), tokenSvc, eventbus.NewEventBus(log), log)
}

func TestStaticVerifier_BcryptHashTakesPrecedence(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cure-Pass!"), bcrypt.MinCost)
	require.NoError(t, err)

	v := NewStaticVerifier(&config.Config{
		AdminUsername:     "admin",
		AdminPasswordHash: string(hash),
		AdminPassword:     "ignored-plain",
	})
	ctx := context.Background()

	assert.NoError(t, v.Verify(ctx, "admin", "s3cure-Pass!"))
	assert.ErrorIs(t, v.Verify(ctx, "admin", "ignored-plain"), ErrInvalidCredentials)
}

func TestStaticVerifier_PlainPassword(t *testing.T) {
	v := NewStaticVerifier(&config.Config{AdminUsername: "admin", AdminPassword: "harbor-pass"})
	ctx := context.Background()

	assert.NoError(t, v.Verify(ctx, "admin", "harbor-pass"))
	assert.ErrorIs(t, v.Verify(ctx, "admin", "wrong"), ErrInvalidCredentials)
}

func TestStaticVerifier_DevFallback(t *testing.T) {
	v := NewStaticVerifier(&config.Config{AdminUsername: "admin"})
	ctx := context.Background()

	assert.NoError(t, v.Verify(ctx, "admin", "admin123"))
	assert.ErrorIs(t, v.Verify(ctx, "admin", "wrong"), ErrInvalidCredentials)
}

func TestStaticVerifier_RejectsUnknownUsername(t *testing.T) {
	v := NewStaticVerifier(&config.Config{AdminUsername: "admin", AdminPassword: "harbor-pass"})

	assert.ErrorIs(t, v.Verify(context.Background(), "intruder", "harbor-pass"), ErrInvalidCredentials)
}

func TestAuthUsecase_LoginIssuesValidatableToken(t *testing.T) {
	uc := newAuthFixture(t, &config.Config{AdminPassword: "harbor-pass"})
	ctx := context.Background()

	token, claims, err := uc.Login(ctx, LoginRequest{Username: "admin", Password: "harbor-pass"})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "admin", claims.Role)

	validated, err := uc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "admin", validated.Username)
}

func TestAuthUsecase_LoginRejectsBadCredentials(t *testing.T) {
	uc := newAuthFixture(t, &config.Config{AdminPassword: "harbor-pass"})
	ctx := context.Background()

	_, _, err := uc.Login(ctx, LoginRequest{Username: "admin", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = uc.Login(ctx, LoginRequest{Username: "", Password: ""})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthUsecase_ValidateTokenRejectsGarbage(t *testing.T) {
	uc := newAuthFixture(t, &config.Config{AdminPassword: "harbor-pass"})

	_, err := uc.ValidateToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
