package commands

import (
	"context"
	"fmt"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-gamedash/components/game"
)

// DispatchCommand decodes a transport envelope through the action registry
// and applies it to the store.
type DispatchCommand struct {
	store     game.StateDispatcher
	registry  *game.ActionRegistry
	telemetry Telemetry
}

// NewDispatchCommand creates the command. A nil registry uses the default one.
func NewDispatchCommand(store game.StateDispatcher, registry *game.ActionRegistry, telemetry Telemetry) *DispatchCommand {
	if registry == nil {
		registry = game.DefaultActionRegistry()
	}
	return &DispatchCommand{store: store, registry: registry, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[game.Envelope] = (*DispatchCommand)(nil)

// Execute validates and dispatches the envelope. A known action the reducer
// ignores is reported as ErrNoEffect.
func (c *DispatchCommand) Execute(ctx context.Context, msg game.Envelope) error {
	if c.store == nil {
		return ErrMissingStore
	}
	action, err := c.registry.Decode(msg)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	before := c.store.GetState()
	after := c.store.Dispatch(ctx, action)
	// unknown kinds never report ErrNoEffect
	if _, unknown := action.(game.UnknownAction); !unknown && after == before {
		return fmt.Errorf("%w: %s left the state unchanged", ErrNoEffect, action.Kind())
	}
	c.telemetry.Record(ctx, "game.command.dispatch", map[string]any{"kind": string(action.Kind())})
	return nil
}
