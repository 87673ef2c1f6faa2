package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aurapass/kiosk-services/internal/scansvc/models"
)

type SessionStore struct {
	db *pgxpool.Pool
}

func NewSessionStore(db *pgxpool.Pool) *SessionStore {
	return &SessionStore{db: db}
}

// FindOpen returns the most recently started session for the member with
// no checkout yet and a start inside the auto-checkout window. Older open
// sessions are treated as abandoned and not returned, so they never block
// a new check-in. Returns nil, nil when there is none.
func (s *SessionStore) FindOpen(ctx context.Context, tx pgx.Tx, memberID int64, now time.Time, window time.Duration) (*models.Session, error) {
	query := `
		SELECT id, member_id, check_out_at, created_at, updated_at
		FROM check_ins
		WHERE member_id = $1 AND check_out_at IS NULL AND created_at >= $2
		ORDER BY created_at DESC
		LIMIT 1
	`

	sess := &models.Session{}
	err := tx.QueryRow(ctx, query, memberID, now.Add(-window)).Scan(
		&sess.ID,
		&sess.MemberID,
		&sess.CheckOutAt,
		&sess.CreatedAt,
		&sess.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // nobody inside
		}
		return nil, fmt.Errorf("failed to find open session: %w", err)
	}

	return sess, nil
}

// Open creates a new session starting now.
func (s *SessionStore) Open(ctx context.Context, tx pgx.Tx, memberID int64, now time.Time) (*models.Session, error) {
	query := `
		INSERT INTO check_ins (member_id, created_at, updated_at)
		VALUES ($1, $2, $2)
		RETURNING id
	`

	sess := &models.Session{MemberID: memberID, CreatedAt: now, UpdatedAt: now}
	err := tx.QueryRow(ctx, query, memberID, now).Scan(&sess.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to open session: %w", err)
	}

	return sess, nil
}

// Close stamps the checkout time on a session.
func (s *SessionStore) Close(ctx context.Context, tx pgx.Tx, sessionID int64, now time.Time) error {
	query := `
		UPDATE check_ins
		SET check_out_at = $2, updated_at = $2
		WHERE id = $1
	`

	_, err := tx.Exec(ctx, query, sessionID, now)
	if err != nil {
		return fmt.Errorf("failed to close session %d: %w", sessionID, err)
	}

	return nil
}

// SweepStale closes every open session that fell out of the auto-checkout
// window, stamping the checkout at start + window rather than now so the
// recorded visit length stays plausible. Returns how many were closed.
func (s *SessionStore) SweepStale(ctx context.Context, now time.Time, window time.Duration) (int64, error) {
	query := `
		UPDATE check_ins
		SET check_out_at = created_at + make_interval(secs => $1), updated_at = $2
		WHERE check_out_at IS NULL AND created_at < $3
	`

	tag, err := s.db.Exec(ctx, query, window.Seconds(), now, now.Add(-window))
	if err != nil {
		return 0, fmt.Errorf("failed to sweep stale sessions: %w", err)
	}

	return tag.RowsAffected(), nil
}
