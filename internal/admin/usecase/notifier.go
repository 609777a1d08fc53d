package usecase

import (
	"context"

	"shipping-admin/internal/admin/domain/repository"
	"shipping-admin/internal/shared/logger"
)

// LogNotifier routes the notification surface to the structured logger. It is
// the default Notifier; the HTTP adapter additionally reports outcomes in
// response bodies.
type LogNotifier struct {
	log logger.Logger
}

var _ repository.Notifier = (*LogNotifier)(nil)

// NewLogNotifier creates a logger-backed notifier.
func NewLogNotifier(log logger.Logger) *LogNotifier {
	return &LogNotifier{log: log.WithComponent("notifier")}
}

// Notify logs the message at a level matching its severity.
func (n *LogNotifier) Notify(ctx context.Context, message, severity string) {
	entry := n.log.WithContext(ctx).WithFields(map[string]interface{}{"severity": severity})
	switch severity {
	case repository.SeverityError:
		entry.Error(message)
	case repository.SeverityWarning:
		entry.Warn(message)
	default:
		entry.Info(message)
	}
}
