package ws_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aurapass/kiosk-services/internal/comm"
	"github.com/aurapass/kiosk-services/internal/monitorsvc/ws"
)

func initMessage(channel string) *comm.WSMessage {
	data, _ := json.Marshal(comm.ChannelInit{Channel: channel})
	return &comm.WSMessage{Type: "init", Data: data}
}

func TestInitJoinsChannel(t *testing.T) {
	s := ws.NewWs()

	s.SocketMessage("sock-1", initMessage(comm.ChannelMonitor))
	s.SocketMessage("sock-2", initMessage(comm.ChannelAdmin))
	s.SocketMessage("sock-3", initMessage(comm.ChannelMonitor))

	require.ElementsMatch(t, []string{"sock-1", "sock-3"}, s.ChannelSockets(comm.ChannelMonitor))
	require.ElementsMatch(t, []string{"sock-2"}, s.ChannelSockets(comm.ChannelAdmin))
}

func TestInitRejectsUnknownChannel(t *testing.T) {
	s := ws.NewWs()

	s.SocketMessage("sock-1", initMessage("lobby"))
	require.Empty(t, s.ChannelSockets(comm.ChannelMonitor))
	require.Empty(t, s.ChannelSockets(comm.ChannelAdmin))
}

func TestDisconnectLeavesChannel(t *testing.T) {
	s := ws.NewWs()

	s.SocketMessage("sock-1", initMessage(comm.ChannelMonitor))
	s.HandleDisconnect("sock-1")

	require.Empty(t, s.ChannelSockets(comm.ChannelMonitor))
	_, ok := s.GetConnection("sock-1")
	require.False(t, ok)
}
