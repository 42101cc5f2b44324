package goadmin_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-gamedash/pkg/gamedash"
	"github.com/goliatone/go-gamedash/pkg/goadmin"
)

type stubMenuBuilder struct {
	items []goadmin.MenuItem
	menus []string
	err   error
}

func (s *stubMenuBuilder) EnsureMenuItem(_ context.Context, menu string, item goadmin.MenuItem) error {
	if s.err != nil {
		return s.err
	}
	s.menus = append(s.menus, menu)
	s.items = append(s.items, item)
	return nil
}

func TestAdminBootstrapSeedsLocations(t *testing.T) {
	builder := &stubMenuBuilder{}
	store := gamedash.NewStore(gamedash.Options{})
	admin, err := goadmin.New(goadmin.Config{
		EnableGame:  true,
		Store:       store,
		MenuBuilder: builder,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := admin.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap returned error: %v", err)
	}
	want := len(store.GetState().WorldMap)
	if len(builder.items) != want {
		t.Fatalf("expected %d items, got %d", want, len(builder.items))
	}
	first := builder.items[0]
	if first.Route != "admin.game.dashboard" || first.Label != "Command Center" || first.Position != 0 {
		t.Fatalf("unexpected first item %+v", first)
	}
	if builder.menus[0] != "admin.main" {
		t.Fatalf("expected default menu code, got %s", builder.menus[0])
	}
	if admin.Store() != store {
		t.Fatalf("expected store")
	}
}

func TestAdminDisabledSkipsBootstrap(t *testing.T) {
	builder := &stubMenuBuilder{}
	admin, err := goadmin.New(goadmin.Config{
		EnableGame:  false,
		MenuBuilder: builder,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := admin.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap returned error: %v", err)
	}
	if len(builder.items) != 0 {
		t.Fatalf("expected 0 calls, got %d", len(builder.items))
	}
	if admin.Store() != nil {
		t.Fatalf("expected nil store when disabled")
	}
}

func TestAdminRequiresStore(t *testing.T) {
	if _, err := goadmin.New(goadmin.Config{EnableGame: true}); err == nil {
		t.Fatalf("expected error without store")
	}
}

func TestAdminBootstrapWrapsBuilderError(t *testing.T) {
	boom := errors.New("boom")
	admin, err := goadmin.New(goadmin.Config{
		EnableGame:  true,
		Store:       gamedash.NewStore(gamedash.Options{}),
		MenuBuilder: &stubMenuBuilder{err: boom},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := admin.Bootstrap(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped builder error, got %v", err)
	}
}

func TestMenuItemsDisablesLockedLocations(t *testing.T) {
	admin, _ := goadmin.New(goadmin.Config{RoutePrefix: "game"})
	seed := gamedash.DefaultSeed()
	locations := seed.WorldMap[:2]
	locations[1].Unlocked = false
	locations[1].Name = ""
	items := admin.MenuItems(locations)
	if items[1].Route != "game.analytics" || !items[1].Disabled || items[1].Label != "analytics" {
		t.Fatalf("unexpected item %+v", items[1])
	}
}
