package http

import (
	"context"
	"errors"

	"shipping-admin/internal/admin/domain/repository"
	apperrors "shipping-admin/internal/shared/errors"

	"github.com/gofiber/fiber/v2"
)

type confirmKeyType struct{}

var confirmKey confirmKeyType

// WithConfirmation marks a request context as carrying the caller's answer to
// the destructive-operation prompt.
func WithConfirmation(ctx context.Context, confirmed bool) context.Context {
	return context.WithValue(ctx, confirmKey, confirmed)
}

// ConfirmFromContext is the transport-level confirmation gate: HTTP callers
// confirm destructive operations with an explicit confirm=true query
// parameter instead of a dialog. Absence counts as declined.
var ConfirmFromContext = repository.ConfirmFunc(func(ctx context.Context, message string) bool {
	confirmed, _ := ctx.Value(confirmKey).(bool)
	return confirmed
})

// respondError maps data-layer errors onto HTTP responses.
func respondError(c *fiber.Ctx, err error) error {
	if apperrors.IsConfirmationDeclined(err) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Deletion not confirmed. Retry with confirm=true.",
		})
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		status := appErr.HTTPCode
		if status == 0 {
			status = fiber.StatusInternalServerError
		}
		body := fiber.Map{"error": appErr.Message, "type": appErr.Type}
		if len(appErr.Details) > 0 {
			body["details"] = appErr.Details
		}
		return c.Status(status).JSON(body)
	}

	var ve *apperrors.ValidationErrors
	if errors.As(err, &ve) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"errors": ve.Errors,
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Internal server error",
	})
}
