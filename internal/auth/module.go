package auth

import (
	"shipping-admin/internal/admin/config"
	authhttp "shipping-admin/internal/auth/adapter/http"
	"shipping-admin/internal/auth/adapter/security"
	"shipping-admin/internal/auth/usecase"
	"shipping-admin/internal/shared/eventbus"
	"shipping-admin/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
)

// AuthModule bundles the session components behind one initialization point.
type AuthModule struct {
	Usecase    *usecase.AuthUsecase
	Handler    *authhttp.AuthHTTPHandler
	Middleware *authhttp.AuthMiddleware
}

// NewAuthModule wires the token service, verifier, usecase and transport.
func NewAuthModule(cfg *config.Config, bus eventbus.EventBusInterface, log logger.Logger) (*AuthModule, error) {
	tokenSvc, err := security.NewJWTokenService(cfg)
	if err != nil {
		return nil, err
	}

	uc := usecase.NewAuthUsecase(usecase.NewStaticVerifier(cfg), tokenSvc, bus, log)

	return &AuthModule{
		Usecase:    uc,
		Handler:    authhttp.NewAuthHTTPHandler(uc, cfg.CookieName, cfg.CookieSecure, cfg.AccessTokenTTL),
		Middleware: authhttp.NewAuthMiddleware(uc, cfg.CookieName),
	}, nil
}

// RegisterRoutes mounts the auth endpoints under /api/v1/auth.
func (m *AuthModule) RegisterRoutes(app *fiber.App) {
	group := app.Group("/api/v1/auth", m.Middleware.RateLimiter())
	m.Handler.SetupAuthRoutes(group, m.Middleware)
}
