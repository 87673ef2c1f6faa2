package config_test

import (
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/require"

	config "github.com/aurapass/kiosk-services/configs"
)

func TestCreateUniqueInstance(t *testing.T) {
	a := config.CreateUniqueInstance("scan")
	require.NotEmpty(t, a)
	require.Equal(t, a, config.GetInstanceId())

	// Each service start gets a fresh, well-formed id.
	b := config.CreateUniqueInstance("scan")
	require.NotEqual(t, a, b)
	require.Equal(t, b, config.GetInstanceId())

	_, err := uuid.FromString(b)
	require.NoError(t, err)
}
