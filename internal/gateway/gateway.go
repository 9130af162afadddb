// Package gateway connects players over websocket: each connection claims a
// player slot in the effect engine, and entity state changes are pushed back.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/udisondev/regionflags/internal/engine"
	"github.com/udisondev/regionflags/internal/model"
	"github.com/udisondev/regionflags/internal/world"
)

// Engine is the part of the effect engine the gateway drives.
type Engine interface {
	ClaimSlot(p *model.Player) (int, error)
	Disconnect(slot int)
	OnItemDrop(ev *engine.ItemDropEvent) bool
	OnStrike(ev *engine.StrikeEvent) bool
}

// CommandHandler runs chat commands for a player.
type CommandHandler interface {
	Handle(ctx context.Context, player *model.Player, text string) bool
}

// Config holds gateway settings.
type Config struct {
	PlayerMaxHP int32
	Admins      []string      // names granted every permission
	WriteWait   time.Duration // per-write deadline
	SendQueue   int           // per-session outbox capacity
}

// DefaultConfig returns default gateway settings.
func DefaultConfig() Config {
	return Config{
		PlayerMaxHP: 100,
		WriteWait:   5 * time.Second,
		SendQueue:   64,
	}
}

// Gateway is the websocket endpoint. It implements engine.Notifier.
type Gateway struct {
	cfg      Config
	engine   Engine
	world    *world.World
	commands CommandHandler
	upgrader websocket.Upgrader

	mu       sync.RWMutex
	sessions map[int]*session // slot → session
}

var _ engine.Notifier = (*Gateway)(nil)

// New creates a gateway.
func New(cfg Config, eng Engine, w *world.World, commands CommandHandler) *Gateway {
	def := DefaultConfig()
	if cfg.PlayerMaxHP <= 0 {
		cfg.PlayerMaxHP = def.PlayerMaxHP
	}
	if cfg.WriteWait <= 0 {
		cfg.WriteWait = def.WriteWait
	}
	if cfg.SendQueue <= 0 {
		cfg.SendQueue = def.SendQueue
	}

	return &Gateway{
		cfg:      cfg,
		engine:   eng,
		world:    w,
		commands: commands,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		sessions: make(map[int]*session),
	}
}

// Handle serves /ws?name=<player>.
func (g *Gateway) Handle(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		http.Error(w, "missing name", http.StatusBadRequest)
		return
	}

	player := model.NewPlayer(g.world.IDs().NextPlayerID(), name, model.Location{}, g.cfg.PlayerMaxHP, g.permissionsFor(name)...)

	slot, err := g.engine.ClaimSlot(player)
	if err != nil {
		if errors.Is(err, engine.ErrServerFull) {
			http.Error(w, "server full", http.StatusServiceUnavailable)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "player", name, "error", err)
		g.engine.Disconnect(slot)
		return
	}

	s := newSession(slot, player, conn, g.cfg)
	s.send(welcomeMessage{
		Type:     "welcome",
		Slot:     slot,
		ObjectID: player.ObjectID(),
		HP:       player.CurrentHP(),
		MaxHP:    player.MaxHP(),
	})
	player.SetMessageSink(func(msg string) {
		s.send(textMessage{Type: "message", Text: msg})
	})

	g.mu.Lock()
	g.sessions[slot] = s
	g.mu.Unlock()

	slog.Info("player connected", "player", name, "slot", slot, "remote", r.RemoteAddr)

	go s.writeLoop()
	g.readLoop(r.Context(), s)
}

func (g *Gateway) permissionsFor(name string) []string {
	for _, admin := range g.cfg.Admins {
		if strings.EqualFold(admin, name) {
			return []string{"*"}
		}
	}
	return nil
}

func (g *Gateway) readLoop(ctx context.Context, s *session) {
	defer g.disconnect(s)

	for {
		_, payload, err := s.conn.ReadMessage()
		if err != nil {
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			slog.Debug("discarding malformed message", "player", s.player.Name(), "error", err)
			continue
		}

		switch msg.Type {
		case "move":
			s.player.SetLocation(model.NewLocation(msg.X, msg.Y))
		case "drop":
			g.handleDrop(s, msg)
		case "strike":
			g.handleStrike(s, msg)
		case "cmd":
			g.commands.Handle(context.WithoutCancel(ctx), s.player, msg.Text)
		default:
			slog.Debug("unknown message type", "player", s.player.Name(), "type", msg.Type)
		}
	}
}

func (g *Gateway) handleDrop(s *session, msg clientMessage) {
	if msg.Item == "" {
		return
	}
	count := max(msg.Count, 1)
	item := g.world.DropItem(msg.Item, count, s.player.Location(), s.player.ObjectID())

	if g.engine.OnItemDrop(&engine.ItemDropEvent{Item: item}) {
		g.world.RemoveItem(item.ObjectID())
		s.send(dropResultMessage{Type: "drop", Item: msg.Item, Cancelled: true})
		return
	}
	s.send(dropResultMessage{Type: "drop", Item: msg.Item, ObjectID: item.ObjectID()})
}

func (g *Gateway) handleStrike(s *session, msg clientMessage) {
	npc, ok := g.world.GetNpc(msg.Target)
	if !ok {
		s.send(strikeResultMessage{Type: "strike", Target: msg.Target, Cancelled: true})
		return
	}

	ev := &engine.StrikeEvent{Attacker: s.player.Character, Target: npc, Damage: msg.Damage}
	if g.engine.OnStrike(ev) {
		s.send(strikeResultMessage{Type: "strike", Target: msg.Target, Cancelled: true})
		return
	}

	npc.Strike(ev.Damage)
	s.send(strikeResultMessage{Type: "strike", Target: msg.Target})
	g.NpcUpdated(npc)
}

func (g *Gateway) disconnect(s *session) {
	g.mu.Lock()
	if g.sessions[s.slot] == s {
		delete(g.sessions, s.slot)
	}
	g.mu.Unlock()

	g.engine.Disconnect(s.slot)
	s.close()

	slog.Info("player disconnected", "player", s.player.Name(), "slot", s.slot)
}

// PlayerUpdated pushes the player's HP to its own connection.
func (g *Gateway) PlayerUpdated(slot int, p *model.Player) {
	g.mu.RLock()
	s, ok := g.sessions[slot]
	g.mu.RUnlock()

	if !ok || s.player != p {
		return
	}
	s.send(stateMessage{Type: "state", HP: p.CurrentHP(), MaxHP: p.MaxHP()})
}

// NpcUpdated broadcasts the NPC's HP to every connection.
func (g *Gateway) NpcUpdated(npc *model.Npc) {
	g.broadcast(npcMessage{Type: "npc", ObjectID: npc.ObjectID(), HP: npc.CurrentHP(), MaxHP: npc.MaxHP()})
}

// NpcRemoved broadcasts the NPC's removal to every connection.
func (g *Gateway) NpcRemoved(npc *model.Npc) {
	g.broadcast(npcRemovedMessage{Type: "npc_removed", ObjectID: npc.ObjectID()})
}

func (g *Gateway) broadcast(msg any) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("marshal broadcast", "error", err)
		return
	}

	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, s := range g.sessions {
		s.sendRaw(data)
	}
}

// SessionCount returns the number of open connections.
func (g *Gateway) SessionCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.sessions)
}

// Close closes every connection. Read loops then clean up their slots.
func (g *Gateway) Close() {
	g.mu.RLock()
	sessions := make([]*session, 0, len(g.sessions))
	for _, s := range g.sessions {
		sessions = append(sessions, s)
	}
	g.mu.RUnlock()

	for _, s := range sessions {
		s.close()
	}
}
