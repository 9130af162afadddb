package gateway

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/udisondev/regionflags/internal/model"
)

// session is one websocket connection bound to a player slot.
// Writes go through the outbox so the tick never blocks on a slow client.
type session struct {
	slot      int
	player    *model.Player
	conn      *websocket.Conn
	writeWait time.Duration

	outbox    chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func newSession(slot int, player *model.Player, conn *websocket.Conn, cfg Config) *session {
	return &session{
		slot:      slot,
		player:    player,
		conn:      conn,
		writeWait: cfg.WriteWait,
		outbox:    make(chan []byte, cfg.SendQueue),
		done:      make(chan struct{}),
	}
}

func (s *session) send(msg any) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("marshal message", "player", s.player.Name(), "error", err)
		return
	}
	s.sendRaw(data)
}

// sendRaw queues data; a full outbox drops the message.
func (s *session) sendRaw(data []byte) {
	select {
	case <-s.done:
	case s.outbox <- data:
	default:
		slog.Warn("outbox full, dropping message", "player", s.player.Name(), "slot", s.slot)
	}
}

func (s *session) writeLoop() {
	for {
		select {
		case <-s.done:
			return
		case data := <-s.outbox:
			_ = s.conn.SetWriteDeadline(time.Now().Add(s.writeWait))
			if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				s.close()
				return
			}
		}
	}
}

func (s *session) close() {
	s.closeOnce.Do(func() {
		close(s.done)
		_ = s.conn.Close()
	})
}
