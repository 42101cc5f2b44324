package goadmin

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-gamedash/components/game"
	"github.com/goliatone/go-gamedash/pkg/gamedash"
)

// MenuBuilder ensures game entries exist within the admin navigation.
type MenuBuilder interface {
	EnsureMenuItem(ctx context.Context, menuCode string, item MenuItem) error
}

// MenuItem captures navigation link metadata.
type MenuItem struct {
	Label    string
	Route    string
	Icon     string
	Position int
	Disabled bool
}

// Config wires the game store and feature flags into an admin shell.
type Config struct {
	EnableGame  bool
	MenuCode    string
	MenuBuilder MenuBuilder
	Store       *gamedash.Store
	// RoutePrefix is joined with the location id to name each route.
	RoutePrefix string
}

// Admin exposes helpers for go-admin style applications.
type Admin struct {
	cfg Config
}

// New creates an Admin helper that can seed world navigation menus.
func New(cfg Config) (*Admin, error) {
	if cfg.EnableGame && cfg.Store == nil {
		return nil, errors.New("goadmin: game store is required when enabled")
	}
	if cfg.MenuCode == "" {
		cfg.MenuCode = "admin.main"
	}
	if cfg.RoutePrefix == "" {
		cfg.RoutePrefix = "admin.game"
	}
	return &Admin{cfg: cfg}, nil
}

// Store exposes the configured store when enabled.
func (a *Admin) Store() *gamedash.Store {
	if !a.cfg.EnableGame {
		return nil
	}
	return a.cfg.Store
}

// MenuItems maps world locations to navigation entries in map order.
// Locked locations are kept but disabled.
func (a *Admin) MenuItems(locations []game.WorldLocation) []MenuItem {
	items := make([]MenuItem, 0, len(locations))
	for i, loc := range locations {
		label := loc.Name
		if label == "" {
			label = loc.ID
		}
		items = append(items, MenuItem{
			Label:    label,
			Route:    a.cfg.RoutePrefix + "." + loc.ID,
			Icon:     loc.Icon,
			Position: i,
			Disabled: !loc.Unlocked,
		})
	}
	return items
}

// Bootstrap seeds one menu entry per world location of the current snapshot.
func (a *Admin) Bootstrap(ctx context.Context) error {
	if !a.cfg.EnableGame || a.cfg.MenuBuilder == nil {
		return nil
	}
	for _, item := range a.MenuItems(a.cfg.Store.GetState().WorldMap) {
		if err := a.cfg.MenuBuilder.EnsureMenuItem(ctx, a.cfg.MenuCode, item); err != nil {
			return fmt.Errorf("goadmin: ensure %s: %w", item.Route, err)
		}
	}
	return nil
}
