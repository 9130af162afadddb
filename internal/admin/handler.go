// Package admin dispatches chat-style administrative commands (/rflags, /dreg ...)
// and turns their errors into player messages.
package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/udisondev/regionflags/internal/model"
	"github.com/udisondev/regionflags/internal/region"
)

// Command is the interface for admin commands (/command).
// Each command registers one or more names and a required permission.
type Command interface {
	// Handle executes the command. args includes command name at [0].
	Handle(ctx context.Context, player *model.Player, args []string) error
	// Names returns all registered command names (without / prefix).
	Names() []string
	// Permission returns the permission needed to use this command.
	Permission() string
}

// UsageError is returned by commands called with wrong arguments.
// Its text is the usage line shown to the player.
type UsageError string

func (e UsageError) Error() string { return string(e) }

// Handler dispatches admin commands.
// Thread-safe: commands are registered once at startup, then read-only.
type Handler struct {
	mu   sync.RWMutex
	cmds map[string]Command // name → Command (lowercase)
}

// NewHandler creates a new command handler.
func NewHandler() *Handler {
	return &Handler{
		cmds: make(map[string]Command, 16),
	}
}

// Register registers a command under all its names.
// All command names are lowercased for case-insensitive lookup.
func (h *Handler) Register(cmd Command) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, name := range cmd.Names() {
		h.cmds[strings.ToLower(name)] = cmd
	}
}

// Handle processes a command line. A leading "/" is optional.
// Returns true if a command was found and executed.
func (h *Handler) Handle(ctx context.Context, player *model.Player, text string) bool {
	parts := strings.Fields(strings.TrimPrefix(strings.TrimSpace(text), "/"))
	if len(parts) == 0 {
		return false
	}
	cmdName := strings.ToLower(parts[0])

	h.mu.RLock()
	cmd, ok := h.cmds[cmdName]
	h.mu.RUnlock()

	if !ok {
		player.SendMessage("Unknown command: /" + cmdName)
		return false
	}

	if !player.HasPermission(cmd.Permission()) {
		player.SendMessage("You do not have access to that command.")
		slog.Warn("admin command access denied",
			"player", player.Name(),
			"command", cmdName,
			"permission", cmd.Permission())
		return false
	}

	slog.Info("admin command",
		"player", player.Name(),
		"command", text)

	if err := cmd.Handle(ctx, player, parts); err != nil {
		player.SendMessage(Message(err))
		slog.Warn("admin command failed",
			"player", player.Name(),
			"command", text,
			"error", err)
	}

	return true
}

// Count returns number of registered command names.
func (h *Handler) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.cmds)
}

// Message turns a command error into the text shown to the player.
func Message(err error) string {
	var usage UsageError
	switch {
	case errors.As(err, &usage):
		return "Invalid usage: " + string(usage)
	case errors.Is(err, region.ErrPersistence):
		return "Change applied but could not be saved; it will be lost on reload."
	case errors.Is(err, region.ErrNotFound):
		return "Region is not defined. Use /dreg first."
	case errors.Is(err, region.ErrAlreadyExists):
		return "Region already defined."
	case errors.Is(err, region.ErrUnknownRegion):
		return "Region does not exist."
	case errors.Is(err, region.ErrInvalidInput):
		return fmt.Sprintf("Invalid input: %s", err)
	default:
		return fmt.Sprintf("Command error: %s", err)
	}
}
