package db_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aurapass/kiosk-services/internal/scansvc/db"
)

func TestConnectRejectsMalformedURL(t *testing.T) {
	t.Setenv("POSTGRES_URL", "://not-a-dsn")

	_, err := db.Connect()
	require.Error(t, err)
	require.Contains(t, err.Error(), "kiosk db")
}
