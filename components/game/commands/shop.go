package commands

import (
	"context"
	"fmt"
	"slices"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-gamedash/components/game"
)

// PurchaseItemCommand buys shop upgrades. The reducer ignores a bad purchase;
// this command explains why.
type PurchaseItemCommand struct {
	store     game.StateDispatcher
	telemetry Telemetry
}

// NewPurchaseItemCommand creates the command.
func NewPurchaseItemCommand(store game.StateDispatcher, telemetry Telemetry) *PurchaseItemCommand {
	return &PurchaseItemCommand{store: store, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[game.PurchaseItem] = (*PurchaseItemCommand)(nil)

// Execute checks the purchase against the current snapshot and dispatches it.
func (c *PurchaseItemCommand) Execute(ctx context.Context, msg game.PurchaseItem) error {
	if c.store == nil {
		return ErrMissingStore
	}
	state := c.store.GetState()
	if err := CheckPurchase(state, msg.ItemID); err != nil {
		return err
	}
	if c.store.Dispatch(ctx, msg) == state {
		// a concurrent dispatch won; report against the newer snapshot
		if err := CheckPurchase(c.store.GetState(), msg.ItemID); err != nil {
			return err
		}
		return fmt.Errorf("%w: purchase %s", ErrNoEffect, msg.ItemID)
	}
	c.telemetry.Record(ctx, "game.shop.purchase", map[string]any{"item_id": msg.ItemID})
	return nil
}

// CheckPurchase reports why buying itemID from state would fail, or nil.
func CheckPurchase(state *game.State, itemID string) error {
	idx := slices.IndexFunc(state.Shop, func(i game.ShopItem) bool { return i.ID == itemID })
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownItem, itemID)
	}
	if state.Owned[itemID] {
		return fmt.Errorf("%w: %s", ErrAlreadyOwned, itemID)
	}
	item := state.Shop[idx]
	if !game.CanAfford(state.Resources, item) {
		return fmt.Errorf("%w: %s costs %d %s", ErrInsufficientFunds, itemID, item.Price, item.Currency)
	}
	return nil
}
