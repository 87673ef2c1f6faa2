package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/aurapass/kiosk-services/internal/scansvc/models"
	"github.com/aurapass/kiosk-services/internal/scansvc/store"
)

// SessionService is the session ledger: it owns the one-open-session-per-
// member bookkeeping the engine relies on. All scan-path methods run inside
// the caller's transaction so they sit under the member row lock.
type SessionService struct {
	sessionStore *store.SessionStore
}

func NewSessionService(sessionStore *store.SessionStore) *SessionService {
	return &SessionService{sessionStore: sessionStore}
}

// FindOpen returns the member's current open session within the
// auto-checkout window, or nil when there is none (stale ones included).
func (s *SessionService) FindOpen(ctx context.Context, tx pgx.Tx, memberID int64, now time.Time, window time.Duration) (*models.Session, error) {
	return s.sessionStore.FindOpen(ctx, tx, memberID, now, window)
}

// Open starts a new visit. The broker only calls this after FindOpen came
// back empty, which is what upholds the single-open-session invariant.
func (s *SessionService) Open(ctx context.Context, tx pgx.Tx, memberID int64, now time.Time) (*models.Session, error) {
	return s.sessionStore.Open(ctx, tx, memberID, now)
}

// Close ends a visit.
func (s *SessionService) Close(ctx context.Context, tx pgx.Tx, sessionID int64, now time.Time) error {
	return s.sessionStore.Close(ctx, tx, sessionID, now)
}

// SweepStale closes abandoned sessions that fell out of the window.
func (s *SessionService) SweepStale(ctx context.Context, now time.Time, window time.Duration) (int64, error) {
	return s.sessionStore.SweepStale(ctx, now, window)
}
