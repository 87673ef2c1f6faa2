package ws

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/aurapass/kiosk-services/internal/comm"
)

// Ws tracks connected sockets and which broadcast channel each one joined.
// Monitor screens and admin dashboards share the same endpoint and declare
// their channel with an init message.
type Ws struct {
	connMap    sync.Map // socketId -> *websocket.Conn
	channelMap sync.Map // socketId -> channel name
}

func NewWs() *Ws {
	return &Ws{}
}

// handle socket message from web clients
func (s *Ws) SocketMessage(socketId string, message *comm.WSMessage) {
	switch message.Type {
	case "init":
		s.handleInit(socketId, message)
	default:
		log.Warnf("unknown event received: %s", message.Type)
	}
}

func (s *Ws) handleInit(socketId string, msg *comm.WSMessage) {
	var payload comm.ChannelInit

	if err := json.Unmarshal(msg.Data, &payload); err != nil {
		log.Errorf("Error: invalid_init_data Malformed init payload %s", err)
		return
	}

	if payload.Channel != comm.ChannelMonitor && payload.Channel != comm.ChannelAdmin {
		log.Errorf("Invalid channel in init payload: %s", payload.Channel)
		return
	}

	s.channelMap.Store(socketId, payload.Channel)
	log.Infof("socket %s joined channel %s", socketId, payload.Channel)
}

func (s *Ws) StoreConnection(socketId string, conn *websocket.Conn) {
	s.connMap.Store(socketId, conn)
}

func (s *Ws) GetConnection(socketId string) (*websocket.Conn, bool) {
	conn, ok := s.connMap.Load(socketId)
	if !ok {
		return nil, false
	}
	return conn.(*websocket.Conn), true
}

// ChannelSockets returns every socket that joined the given channel.
func (s *Ws) ChannelSockets(channel string) []string {
	var sockets []string

	s.channelMap.Range(func(key, value interface{}) bool {
		if value.(string) == channel {
			sockets = append(sockets, key.(string))
		}
		return true // continue iterating
	})

	return sockets
}

// HandleDisconnect forgets a socket entirely.
func (s *Ws) HandleDisconnect(socketId string) {
	s.connMap.Delete(socketId)
	s.channelMap.Delete(socketId)
}
