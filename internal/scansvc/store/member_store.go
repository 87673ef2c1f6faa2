package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aurapass/kiosk-services/internal/scansvc/models"
)

type MemberStore struct {
	db *pgxpool.Pool
}

func NewMemberStore(db *pgxpool.Pool) *MemberStore {
	return &MemberStore{db: db}
}

// GetByUniqueIdForUpdate resolves a member by badge code inside tx and
// locks the row. Scans for the same member queue on this lock, which is
// what keeps the find-open-session / open / close sequence serialized per
// member; scans for different members proceed in parallel. Soft-deleted
// members resolve as not found (nil, nil).
func (s *MemberStore) GetByUniqueIdForUpdate(ctx context.Context, tx pgx.Tx, uniqueId string) (*models.Member, error) {
	query := `
		SELECT id, unique_id, name, email, membership_expiry_date, profile_photo, deleted_at, created_at, updated_at
		FROM members
		WHERE unique_id = $1 AND deleted_at IS NULL
		FOR UPDATE
	`

	m := &models.Member{}
	err := tx.QueryRow(ctx, query, uniqueId).Scan(
		&m.ID,
		&m.UniqueId,
		&m.Name,
		&m.Email,
		&m.MembershipExpiryDate,
		&m.ProfilePhoto,
		&m.DeletedAt,
		&m.CreatedAt,
		&m.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // unknown code
		}
		return nil, fmt.Errorf("failed to get member by unique_id: %w", err)
	}

	return m, nil
}

// GetByUniqueId is the lock-free variant used outside the scan path.
func (s *MemberStore) GetByUniqueId(ctx context.Context, uniqueId string) (*models.Member, error) {
	query := `
		SELECT id, unique_id, name, email, membership_expiry_date, profile_photo, deleted_at, created_at, updated_at
		FROM members
		WHERE unique_id = $1 AND deleted_at IS NULL
	`

	m := &models.Member{}
	err := s.db.QueryRow(ctx, query, uniqueId).Scan(
		&m.ID,
		&m.UniqueId,
		&m.Name,
		&m.Email,
		&m.MembershipExpiryDate,
		&m.ProfilePhoto,
		&m.DeletedAt,
		&m.CreatedAt,
		&m.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get member by unique_id: %w", err)
	}

	return m, nil
}
