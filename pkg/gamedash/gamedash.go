package gamedash

import (
	core "github.com/goliatone/go-gamedash/components/game"
)

// Store exposes the underlying components/game.Store type.
type Store = core.Store

// Options re-export for convenience.
type Options = core.Options

// State is the snapshot type published by Store.
type State = core.State

// NewStore proxies to the internal constructor.
func NewStore(opts Options) *Store {
	return core.NewStore(opts)
}

// DefaultSeed returns the built-in bootstrap snapshot.
func DefaultSeed() *State {
	return core.DefaultSeed()
}
