package commands

import (
	"context"
	"fmt"
	"slices"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-gamedash/components/game"
)

// ServerActionCommand runs operator commands against the mock fleet.
type ServerActionCommand struct {
	store     game.StateDispatcher
	telemetry Telemetry
}

// NewServerActionCommand creates the command.
func NewServerActionCommand(store game.StateDispatcher, telemetry Telemetry) *ServerActionCommand {
	return &ServerActionCommand{store: store, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[game.ServerAction] = (*ServerActionCommand)(nil)

// Execute dispatches SERVER_ACTION.
func (c *ServerActionCommand) Execute(ctx context.Context, msg game.ServerAction) error {
	if c.store == nil {
		return ErrMissingStore
	}
	if _, _, ok := game.ServerReward(msg.Op); !ok {
		return fmt.Errorf("%w: unknown server op %q", ErrInvalidInput, msg.Op)
	}
	before := c.store.GetState()
	if !slices.ContainsFunc(before.Servers, func(s game.Server) bool { return s.ID == msg.ServerID }) {
		return fmt.Errorf("%w: %s", ErrUnknownServer, msg.ServerID)
	}
	if c.store.Dispatch(ctx, msg) == before {
		return fmt.Errorf("%w: %s %s", ErrNoEffect, msg.Op, msg.ServerID)
	}
	c.telemetry.Record(ctx, "game.server.action", map[string]any{"server_id": msg.ServerID, "op": string(msg.Op)})
	return nil
}
