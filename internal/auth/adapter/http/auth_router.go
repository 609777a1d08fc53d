package http

import (
	"time"

	"shipping-admin/internal/auth/domain/repository"
	"shipping-admin/internal/auth/usecase"
	"shipping-admin/internal/shared/contextkeys"

	"github.com/gofiber/fiber/v2"
)

// AuthHTTPHandler handles HTTP requests for authentication
type AuthHTTPHandler struct {
	usecase      usecase.AuthUsecaseInterface
	cookieName   string
	cookieSecure bool
	cookieMaxAge time.Duration
}

// NewAuthHTTPHandler creates a new authentication HTTP handler
func NewAuthHTTPHandler(uc usecase.AuthUsecaseInterface, cookieName string, cookieSecure bool, cookieMaxAge time.Duration) *AuthHTTPHandler {
	return &AuthHTTPHandler{
		usecase:      uc,
		cookieName:   cookieName,
		cookieSecure: cookieSecure,
		cookieMaxAge: cookieMaxAge,
	}
}

// SetupAuthRoutes sets up authentication routes with middleware
func (h *AuthHTTPHandler) SetupAuthRoutes(router fiber.Router, middleware *AuthMiddleware) {
	router.Post("/login", h.Login)

	protected := router.Group("/", middleware.Protect())
	protected.Post("/logout", h.Logout)
	protected.Get("/me", h.GetCurrentUser)
}

// Login handles the session login
func (h *AuthHTTPHandler) Login(c *fiber.Ctx) error {
	var req usecase.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	token, claims, err := h.usecase.Login(c.Context(), req)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid username or password",
		})
	}

	h.setCookie(c, token)

	return c.JSON(fiber.Map{
		"message":     "Login successful",
		"accessToken": token,
		"username":    claims.Username,
		"role":        claims.Role,
		"expiresAt":   claims.ExpiresAt.Time,
	})
}

// Logout handles the session logout
func (h *AuthHTTPHandler) Logout(c *fiber.Ctx) error {
	username, _ := c.UserContext().Value(contextkeys.UsernameKey).(string)
	if username == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	h.usecase.Logout(c.Context(), username)
	h.clearCookie(c)

	return c.JSON(fiber.Map{
		"message": "Logged out successfully",
	})
}

// GetCurrentUser returns the authenticated session identity
func (h *AuthHTTPHandler) GetCurrentUser(c *fiber.Ctx) error {
	username, _ := c.UserContext().Value(contextkeys.UsernameKey).(string)
	if username == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	role := ""
	if claims, ok := c.UserContext().Value(contextkeys.ClaimsKey).(*repository.Claims); ok {
		role = claims.Role
	}
	return c.JSON(fiber.Map{
		"username": username,
		"role":     role,
	})
}

func (h *AuthHTTPHandler) setCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.cookieMaxAge),
		Secure:   h.cookieSecure,
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

func (h *AuthHTTPHandler) clearCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		Secure:   h.cookieSecure,
		HTTPOnly: true,
		SameSite: "Lax",
	})
}
