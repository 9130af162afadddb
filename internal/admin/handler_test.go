package admin

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/udisondev/regionflags/internal/model"
	"github.com/udisondev/regionflags/internal/region"
)

// mockCmd is a test command.
type mockCmd struct {
	names       []string
	perm        string
	err         error
	handleCalls int
	lastArgs    []string
}

func (c *mockCmd) Names() []string    { return c.names }
func (c *mockCmd) Permission() string { return c.perm }
func (c *mockCmd) Handle(_ context.Context, player *model.Player, args []string) error {
	c.handleCalls++
	c.lastArgs = args
	if c.err != nil {
		return c.err
	}
	player.SendMessage("ok: " + args[0])
	return nil
}

func newAdmin(perms ...string) *model.Player {
	return model.NewPlayer(1, "TestGM", model.Location{}, 100, perms...)
}

func TestHandler_RegisterAndCount(t *testing.T) {
	h := NewHandler()
	if h.Count() != 0 {
		t.Errorf("Count = %d, want 0", h.Count())
	}

	h.Register(&mockCmd{names: []string{"rflags", "rf"}, perm: "setflags"})
	if h.Count() != 2 {
		t.Errorf("Count = %d, want 2 (two aliases)", h.Count())
	}
}

func TestHandler_Success(t *testing.T) {
	h := NewHandler()
	cmd := &mockCmd{names: []string{"rd"}, perm: "setflags"}
	h.Register(cmd)

	player := newAdmin("setflags")

	if !h.Handle(context.Background(), player, "/RD Arena 5") {
		t.Fatal("Handle returned false, want true")
	}
	if cmd.handleCalls != 1 {
		t.Errorf("Handle called %d times, want 1", cmd.handleCalls)
	}
	if len(cmd.lastArgs) != 3 || cmd.lastArgs[1] != "Arena" || cmd.lastArgs[2] != "5" {
		t.Errorf("Handle args = %v, want [RD Arena 5]", cmd.lastArgs)
	}
	if msg := player.LastMessage(); msg != "ok: RD" {
		t.Errorf("LastMessage = %q, want %q", msg, "ok: RD")
	}
}

func TestHandler_UnknownAndEmpty(t *testing.T) {
	h := NewHandler()
	player := newAdmin("*")

	if h.Handle(context.Background(), player, "   ") {
		t.Error("Handle should return false for empty text")
	}
	if h.Handle(context.Background(), player, "/nosuchcmd") {
		t.Error("Handle should return false for unknown command")
	}
	if player.LastMessage() != "Unknown command: /nosuchcmd" {
		t.Errorf("LastMessage = %q", player.LastMessage())
	}
}

func TestHandler_PermissionDenied(t *testing.T) {
	h := NewHandler()
	cmd := &mockCmd{names: []string{"dreg"}, perm: "defineflag"}
	h.Register(cmd)

	player := newAdmin("setflags")
	if h.Handle(context.Background(), player, "dreg Arena") {
		t.Error("Handle should return false without permission")
	}
	if cmd.handleCalls != 0 {
		t.Errorf("Handle called %d times, want 0", cmd.handleCalls)
	}
	if player.LastMessage() != "You do not have access to that command." {
		t.Errorf("LastMessage = %q", player.LastMessage())
	}
}

func TestHandler_ErrorBecomesMessage(t *testing.T) {
	h := NewHandler()
	cmd := &mockCmd{names: []string{"rf"}, perm: "setflags", err: fmt.Errorf("updating %q: %w", "Arena", region.ErrNotFound)}
	h.Register(cmd)

	player := newAdmin("setflags")
	if !h.Handle(context.Background(), player, "rf set Arena NOITEM") {
		t.Error("Handle should return true when the command ran")
	}
	if player.LastMessage() != "Region is not defined. Use /dreg first." {
		t.Errorf("LastMessage = %q", player.LastMessage())
	}
}

func TestMessage(t *testing.T) {
	dbErr := errors.New("connection reset")

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "usage", err: UsageError("/dreg <region>"), want: "Invalid usage: /dreg <region>"},
		{name: "not found", err: region.ErrNotFound, want: "Region is not defined. Use /dreg first."},
		{name: "already exists", err: fmt.Errorf("x: %w", region.ErrAlreadyExists), want: "Region already defined."},
		{name: "unknown region", err: region.ErrUnknownRegion, want: "Region does not exist."},
		{name: "invalid input", err: fmt.Errorf("bad: %w", region.ErrInvalidInput), want: "Invalid input: bad: invalid input"},
		{
			name: "persistence",
			err:  fmt.Errorf("persisting: %w: %w", region.ErrPersistence, dbErr),
			want: "Change applied but could not be saved; it will be lost on reload.",
		},
		{name: "other", err: dbErr, want: "Command error: connection reset"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Message(tt.err); got != tt.want {
				t.Errorf("Message() = %q, want %q", got, tt.want)
			}
		})
	}
}
