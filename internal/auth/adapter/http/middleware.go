package http

import (
	"context"
	"strings"
	"time"

	"shipping-admin/internal/auth/usecase"
	"shipping-admin/internal/shared/contextkeys"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// AuthMiddleware provides authentication middleware for Fiber
type AuthMiddleware struct {
	usecase    usecase.AuthUsecaseInterface
	cookieName string
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(uc usecase.AuthUsecaseInterface, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{
		usecase:    uc,
		cookieName: cookieName,
	}
}

// CORS middleware for the dashboard frontend
func (m *AuthMiddleware) CORS() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000,http://localhost:5173",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization,X-Requested-With",
		AllowCredentials: true,
		MaxAge:           86400,
	})
}

// RateLimiter creates rate limiting middleware for auth endpoints
func (m *AuthMiddleware) RateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.Get("X-Forwarded-For", c.IP())
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Rate limit exceeded. Please try again later.",
			})
		},
	})
}

// RequestID middleware
func (m *AuthMiddleware) RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     "X-Request-ID",
		ContextKey: string(contextkeys.RequestIDKey),
	})
}

// Protect returns middleware that requires authentication
func (m *AuthMiddleware) Protect() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := m.extractToken(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}

		claims, err := m.usecase.ValidateToken(c.Context(), token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}

		ctx := c.UserContext()
		ctx = context.WithValue(ctx, contextkeys.UsernameKey, claims.Username)
		ctx = context.WithValue(ctx, contextkeys.TokenKey, token)
		ctx = context.WithValue(ctx, contextkeys.ClaimsKey, claims)
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// extractToken reads the session token from the cookie or a bearer header.
func (m *AuthMiddleware) extractToken(c *fiber.Ctx) (string, bool) {
	if cookie := c.Cookies(m.cookieName); cookie != "" {
		return cookie, true
	}

	header := c.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		token := strings.TrimPrefix(header, "Bearer ")
		if token != "" {
			return token, true
		}
	}
	return "", false
}
