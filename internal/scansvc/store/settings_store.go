package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aurapass/kiosk-services/internal/scansvc/models"
)

type SettingsStore struct {
	db *pgxpool.Pool
}

func NewSettingsStore(db *pgxpool.Pool) *SettingsStore {
	return &SettingsStore{db: db}
}

// Get returns the gym_settings singleton row, or nil, nil when it has not
// been created yet (callers fall back to defaults). A query failure is an
// infrastructure error and is returned as such.
func (s *SettingsStore) Get(ctx context.Context) (*models.Settings, error) {
	query := `
		SELECT id, camera_mirror, kiosk_debounce_seconds, strict_mode, auto_checkout_hours, email_reminders_enabled, created_at, updated_at
		FROM gym_settings
		ORDER BY id
		LIMIT 1
	`

	cfg := &models.Settings{}
	err := s.db.QueryRow(ctx, query).Scan(
		&cfg.ID,
		&cfg.CameraMirror,
		&cfg.KioskDebounceSeconds,
		&cfg.StrictMode,
		&cfg.AutoCheckoutHours,
		&cfg.EmailRemindersEnabled,
		&cfg.CreatedAt,
		&cfg.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get gym settings: %w", err)
	}

	return cfg, nil
}
