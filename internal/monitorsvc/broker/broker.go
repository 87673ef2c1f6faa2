package broker

import (
	"encoding/json"

	"github.com/gorilla/websocket"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"

	"github.com/aurapass/kiosk-services/internal/comm"
)

// Broker bridges the NATS outcome topics to connected websockets. Scan
// outcomes land on the monitor-screen channel, admin notices on the admin
// channel; the broker just fans each message out to its channel.
type Broker struct {
	Conn           *nats.Conn
	GetConnection  func(string) (*websocket.Conn, bool)
	ChannelSockets func(string) []string
	Disconnect     func(string)
}

func NewBroker(conn *nats.Conn, fncGetConnection func(string) (*websocket.Conn, bool),
	fncChannelSockets func(string) []string, fncDisconnect func(string)) *Broker {
	return &Broker{
		Conn:           conn,
		GetConnection:  fncGetConnection,
		ChannelSockets: fncChannelSockets,
		Disconnect:     fncDisconnect,
	}
}

// SubscribeMonitorEvents consumes scan outcomes from the scan service.
func (b *Broker) SubscribeMonitorEvents() (*nats.Subscription, error) {
	sub, err := b.Conn.Subscribe(comm.TopicMonitor, func(msgNats *nats.Msg) {
		b.broadcast(comm.ChannelMonitor, &comm.WSMessage{
			Type: "monitor-event",
			Data: json.RawMessage(msgNats.Data),
		})
	})
	if err != nil {
		return nil, err
	}

	return sub, nil
}

// SubscribeAdminNotices consumes admin notifications.
func (b *Broker) SubscribeAdminNotices() (*nats.Subscription, error) {
	sub, err := b.Conn.Subscribe(comm.TopicAdminNotice, func(msgNats *nats.Msg) {
		b.broadcast(comm.ChannelAdmin, &comm.WSMessage{
			Type: "admin-notice",
			Data: json.RawMessage(msgNats.Data),
		})
	})
	if err != nil {
		return nil, err
	}

	return sub, nil
}

// broadcast sends a message to every socket on a channel. A socket that
// fails a write is dropped; it will reconnect on its own.
func (b *Broker) broadcast(channel string, m *comm.WSMessage) {
	for _, socketId := range b.ChannelSockets(channel) {
		conn, ok := b.GetConnection(socketId)
		if !ok {
			continue
		}

		if err := conn.WriteJSON(m); err != nil {
			log.Errorf("Failed to write to socket %s, dropping: %v", socketId, err)
			conn.Close()
			b.Disconnect(socketId)
		}
	}
}
