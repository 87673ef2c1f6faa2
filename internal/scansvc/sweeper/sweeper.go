package sweeper

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/aurapass/kiosk-services/internal/scansvc/models"
)

// SessionLedger is the slice of the session service the sweeper needs.
type SessionLedger interface {
	SweepStale(ctx context.Context, now time.Time, window time.Duration) (int64, error)
}

// SettingsSource provides the current auto-checkout window.
type SettingsSource interface {
	Snapshot(ctx context.Context) (models.Settings, error)
}

// Sweeper periodically closes open sessions that fell out of the
// auto-checkout window. The engine already ignores them, so this is
// hygiene for the books, not a correctness dependency: without it stale
// "currently inside" rows would accumulate forever.
//
// An interval of 0 disables the sweeper.
type Sweeper struct {
	sessions SessionLedger
	settings SettingsSource
	interval time.Duration
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewSweeper(sessions SessionLedger, settings SettingsSource, interval time.Duration) *Sweeper {
	return &Sweeper{
		sessions: sessions,
		settings: settings,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Start begins the background loop: one sweep immediately, then one per
// interval, until ctx is cancelled or Stop is called.
func (s *Sweeper) Start(ctx context.Context) {
	if s.interval <= 0 {
		log.Info("session sweeper disabled (interval=0)")
		close(s.done)
		return
	}

	ctx, s.cancel = context.WithCancel(ctx)

	go func() {
		defer close(s.done)

		s.RunOnce(ctx)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.RunOnce(ctx)
			}
		}
	}()
}

// RunOnce performs a single sweep using the current settings.
func (s *Sweeper) RunOnce(ctx context.Context) {
	cfg, err := s.settings.Snapshot(ctx)
	if err != nil {
		log.Errorf("sweeper: failed to load settings: %v", err)
		return
	}

	closed, err := s.sessions.SweepStale(ctx, time.Now().UTC(), cfg.AutoCheckoutWindow())
	if err != nil {
		log.Errorf("sweeper: sweep failed: %v", err)
		return
	}

	if closed > 0 {
		log.Infof("sweeper: closed %d stale session(s)", closed)
	}
}

// Stop cancels the loop and waits for it to exit. Safe to call twice.
func (s *Sweeper) Stop() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	<-s.done
}
