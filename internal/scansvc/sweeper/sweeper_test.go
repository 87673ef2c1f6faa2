package sweeper_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aurapass/kiosk-services/internal/scansvc/models"
	"github.com/aurapass/kiosk-services/internal/scansvc/sweeper"
)

type fakeLedger struct {
	mu      sync.Mutex
	calls   int
	windows []time.Duration
	err     error
}

func (f *fakeLedger) SweepStale(ctx context.Context, now time.Time, window time.Duration) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.windows = append(f.windows, window)
	if f.err != nil {
		return 0, f.err
	}
	return 2, nil
}

func (f *fakeLedger) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeSettings struct {
	cfg models.Settings
	err error
}

func (f *fakeSettings) Snapshot(ctx context.Context) (models.Settings, error) {
	return f.cfg, f.err
}

func TestSweeperRunOnceUsesSettingsWindow(t *testing.T) {
	ledger := &fakeLedger{}
	cfg := models.DefaultSettings()
	cfg.AutoCheckoutHours = 6

	s := sweeper.NewSweeper(ledger, &fakeSettings{cfg: cfg}, time.Hour)
	s.RunOnce(context.Background())

	require.Equal(t, 1, ledger.callCount())
	require.Equal(t, 6*time.Hour, ledger.windows[0])
}

func TestSweeperSkipsSweepWhenSettingsFail(t *testing.T) {
	ledger := &fakeLedger{}
	s := sweeper.NewSweeper(ledger, &fakeSettings{err: errors.New("db down")}, time.Hour)

	s.RunOnce(context.Background())
	require.Equal(t, 0, ledger.callCount())
}

func TestSweeperDisabledWhenIntervalZero(t *testing.T) {
	ledger := &fakeLedger{}
	s := sweeper.NewSweeper(ledger, &fakeSettings{cfg: models.DefaultSettings()}, 0)

	s.Start(context.Background())
	// Stop should return immediately.
	s.Stop()
	require.Equal(t, 0, ledger.callCount())
}

func TestSweeperRunsImmediatelyOnStart(t *testing.T) {
	ledger := &fakeLedger{}
	s := sweeper.NewSweeper(ledger, &fakeSettings{cfg: models.DefaultSettings()}, time.Hour)

	s.Start(context.Background())
	defer s.Stop()

	require.Eventually(t, func() bool {
		return ledger.callCount() >= 1
	}, time.Second, 10*time.Millisecond)
}

func TestSweeperStopIsIdempotent(t *testing.T) {
	ledger := &fakeLedger{}
	s := sweeper.NewSweeper(ledger, &fakeSettings{cfg: models.DefaultSettings()}, time.Hour)

	s.Start(context.Background())
	s.Stop()
	s.Stop()
}
