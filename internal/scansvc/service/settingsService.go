package service

import (
	"context"

	"github.com/aurapass/kiosk-services/internal/scansvc/models"
	"github.com/aurapass/kiosk-services/internal/scansvc/store"
)

// SettingsService hands out configuration snapshots. The engine never
// reads settings itself; the broker fetches one snapshot per scan job and
// passes it in, so a mid-job settings change cannot split a decision.
type SettingsService struct {
	settingsStore *store.SettingsStore
}

func NewSettingsService(settingsStore *store.SettingsStore) *SettingsService {
	return &SettingsService{settingsStore: settingsStore}
}

// Snapshot returns the current settings, falling back to the hardcoded
// defaults when the singleton row does not exist yet. A failing query is
// surfaced as an error: that is an infrastructure problem the queue layer
// retries, not a business outcome.
func (s *SettingsService) Snapshot(ctx context.Context) (models.Settings, error) {
	cfg, err := s.settingsStore.Get(ctx)
	if err != nil {
		return models.Settings{}, err
	}
	if cfg == nil {
		return models.DefaultSettings(), nil
	}
	return *cfg, nil
}
