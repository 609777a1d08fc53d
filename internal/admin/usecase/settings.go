package usecase

import (
	"context"
	"encoding/json"
	"sync"

	"shipping-admin/internal/admin/domain/model"
	"shipping-admin/internal/admin/domain/repository"
	"shipping-admin/internal/shared/eventbus"
	"shipping-admin/internal/shared/logger"
)

// SettingsService owns the single object-typed settings document. Unlike the
// entity collections it has no ids, no validation rules and no confirmation
// gate: saves always replace the whole document.
type SettingsService struct {
	store    repository.Store
	changes  *ChangeLog
	notifier repository.Notifier
	bus      eventbus.EventBusInterface
	log      logger.Logger

	mu sync.Mutex
}

// NewSettingsService creates the settings service.
func NewSettingsService(
	store repository.Store,
	changes *ChangeLog,
	notifier repository.Notifier,
	bus eventbus.EventBusInterface,
	log logger.Logger,
) *SettingsService {
	return &SettingsService{
		store:    store,
		changes:  changes,
		notifier: notifier,
		bus:      bus,
		log:      log.WithComponent("settings"),
	}
}

// Get loads the settings document. Missing fields fall back to zero values;
// a corrupt document degrades to empty settings with a notice.
func (s *SettingsService) Get(ctx context.Context) model.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *SettingsService) load(ctx context.Context) model.Settings {
	var settings model.Settings

	raw, err := s.store.Load(ctx, model.CollectionSettings)
	if err != nil {
		s.log.Warnf("Failed to load settings, using defaults: %v", err)
		s.notifier.Notify(ctx, "Error loading settings", repository.SeverityError)
		return settings
	}
	if err := json.Unmarshal(raw, &settings); err != nil {
		s.log.Warnf("Stored settings document does not decode, using defaults: %v", err)
		s.notifier.Notify(ctx, "Error loading settings", repository.SeverityError)
		return model.Settings{}
	}
	return settings
}

// Update replaces the whole settings document, records the change and fires a
// settings-updated event.
func (s *SettingsService) Update(ctx context.Context, settings model.Settings) (model.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Save(ctx, model.CollectionSettings, settings); err != nil {
		s.log.Errorf("Failed to save settings: %v", err)
		s.notifier.Notify(ctx, "Error saving settings", repository.SeverityError)
		return model.Settings{}, err
	}

	s.changes.Record(ctx, "settings", "updated", settings.SiteName)
	s.bus.PublishAndForget(ctx, eventbus.NewBasicEventWithSource(eventbus.EventTypeSettingsUpdated, settings, "settings"))
	s.notifier.Notify(ctx, "Settings saved successfully", repository.SeveritySuccess)
	s.log.WithContext(ctx).Info("Settings updated")
	return settings, nil
}

// Reset restores the empty settings document.
func (s *SettingsService) Reset(ctx context.Context) (model.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	empty := model.Settings{}
	if err := s.store.Save(ctx, model.CollectionSettings, empty); err != nil {
		s.log.Errorf("Failed to reset settings: %v", err)
		s.notifier.Notify(ctx, "Error saving settings", repository.SeverityError)
		return model.Settings{}, err
	}

	s.changes.Record(ctx, "settings", "reset", "")
	s.bus.PublishAndForget(ctx, eventbus.NewBasicEventWithSource(eventbus.EventTypeSettingsUpdated, empty, "settings"))
	s.notifier.Notify(ctx, "Settings reset to defaults", repository.SeveritySuccess)
	s.log.WithContext(ctx).Info("Settings reset")
	return empty, nil
}
