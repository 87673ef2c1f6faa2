package store_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/aurapass/kiosk-services/internal/scansvc/store"
)

// testTx opens a transaction against the database named by TEST_POSTGRES_URL
// and rolls it back when the test ends, so fixtures never leak. Skips when
// the variable is unset.
func testTx(t *testing.T) (*pgxpool.Pool, pgx.Tx) {
	t.Helper()

	dsn := os.Getenv("TEST_POSTGRES_URL")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	tx, err := pool.Begin(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = tx.Rollback(ctx) })

	return pool, tx
}

func insertMember(t *testing.T, tx pgx.Tx, uniqueId string) int64 {
	t.Helper()

	var id int64
	err := tx.QueryRow(context.Background(), `
		INSERT INTO members (unique_id, name, membership_expiry_date, created_at, updated_at)
		VALUES ($1, 'Test Member', now() + interval '30 days', now(), now())
		RETURNING id
	`, uniqueId).Scan(&id)
	require.NoError(t, err)

	return id
}

func insertSession(t *testing.T, tx pgx.Tx, memberID int64, createdAt time.Time, checkOutAt *time.Time) int64 {
	t.Helper()

	var id int64
	err := tx.QueryRow(context.Background(), `
		INSERT INTO check_ins (member_id, check_out_at, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		RETURNING id
	`, memberID, checkOutAt, createdAt).Scan(&id)
	require.NoError(t, err)

	return id
}

func TestFindOpenIgnoresSessionsOutsideWindow(t *testing.T) {
	pool, tx := testTx(t)
	ctx := context.Background()

	memberID := insertMember(t, tx, "mem_window_cut")
	now := time.Now().UTC()
	window := 12 * time.Hour

	// Open, but started 13 hours ago: abandoned, must not block a check-in.
	insertSession(t, tx, memberID, now.Add(-13*time.Hour), nil)

	sessions := store.NewSessionStore(pool)
	open, err := sessions.FindOpen(ctx, tx, memberID, now, window)
	require.NoError(t, err)
	require.Nil(t, open)
}

func TestFindOpenReturnsMostRecentInWindow(t *testing.T) {
	pool, tx := testTx(t)
	ctx := context.Background()

	memberID := insertMember(t, tx, "mem_most_recent")
	now := time.Now().UTC()
	window := 12 * time.Hour

	insertSession(t, tx, memberID, now.Add(-3*time.Hour), nil)
	newest := insertSession(t, tx, memberID, now.Add(-1*time.Hour), nil)

	sessions := store.NewSessionStore(pool)
	open, err := sessions.FindOpen(ctx, tx, memberID, now, window)
	require.NoError(t, err)
	require.NotNil(t, open)
	require.Equal(t, newest, open.ID)
	require.Equal(t, memberID, open.MemberID)
	require.True(t, open.Open())
}

func TestFindOpenSkipsClosedSessions(t *testing.T) {
	pool, tx := testTx(t)
	ctx := context.Background()

	memberID := insertMember(t, tx, "mem_closed")
	now := time.Now().UTC()
	window := 12 * time.Hour

	out := now.Add(-30 * time.Minute)
	insertSession(t, tx, memberID, now.Add(-1*time.Hour), &out)

	sessions := store.NewSessionStore(pool)
	open, err := sessions.FindOpen(ctx, tx, memberID, now, window)
	require.NoError(t, err)
	require.Nil(t, open)
}

func TestFindOpenIncludesWindowBoundary(t *testing.T) {
	pool, tx := testTx(t)
	ctx := context.Background()

	memberID := insertMember(t, tx, "mem_boundary")
	now := time.Now().UTC().Truncate(time.Microsecond)
	window := 12 * time.Hour

	// Started exactly one window ago: still inside.
	boundary := insertSession(t, tx, memberID, now.Add(-window), nil)

	sessions := store.NewSessionStore(pool)
	open, err := sessions.FindOpen(ctx, tx, memberID, now, window)
	require.NoError(t, err)
	require.NotNil(t, open)
	require.Equal(t, boundary, open.ID)
}

func TestOpenThenCloseRoundTrip(t *testing.T) {
	pool, tx := testTx(t)
	ctx := context.Background()

	memberID := insertMember(t, tx, "mem_round_trip")
	now := time.Now().UTC()
	window := 12 * time.Hour

	sessions := store.NewSessionStore(pool)

	sess, err := sessions.Open(ctx, tx, memberID, now)
	require.NoError(t, err)
	require.NotZero(t, sess.ID)

	open, err := sessions.FindOpen(ctx, tx, memberID, now, window)
	require.NoError(t, err)
	require.NotNil(t, open)
	require.Equal(t, sess.ID, open.ID)

	require.NoError(t, sessions.Close(ctx, tx, sess.ID, now.Add(time.Hour)))

	open, err = sessions.FindOpen(ctx, tx, memberID, now.Add(time.Hour), window)
	require.NoError(t, err)
	require.Nil(t, open)
}
