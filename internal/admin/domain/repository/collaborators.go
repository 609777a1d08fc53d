package repository

import "context"

// Severity levels for the notification surface.
const (
	SeverityInfo    = "info"
	SeveritySuccess = "success"
	SeverityWarning = "warning"
	SeverityError   = "error"
)

// Notifier is the external notification surface. The data layer calls it on
// validation failures, save failures and successful CRUD completion, and
// treats every call as fire-and-forget.
type Notifier interface {
	Notify(ctx context.Context, message, severity string)
}

// ConfirmationGate is the human-in-the-loop collaborator consulted before
// destructive operations. Delete aborts cleanly, with no mutation, when the
// gate declines.
type ConfirmationGate interface {
	Confirm(ctx context.Context, message string) bool
}

// ConfirmFunc adapts a function to the ConfirmationGate interface.
type ConfirmFunc func(ctx context.Context, message string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, message string) bool {
	return f(ctx, message)
}

// NotifyFunc adapts a function to the Notifier interface.
type NotifyFunc func(ctx context.Context, message, severity string)

func (f NotifyFunc) Notify(ctx context.Context, message, severity string) {
	f(ctx, message, severity)
}
