package main

import (
	"context"
	"encoding/json"
	"io"

	"github.com/goliatone/go-gamedash/components/game"
)

type simulateCmd struct {
	Ticks    int    `default:"20" help:"Number of producer ticks to run."`
	RandSeed uint64 `name:"rand-seed" default:"1" help:"Seed for the random streams."`
	SeedPath string `name:"seed" type:"path" help:"Seed YAML file (defaults to the built-in seed)."`
	State    bool   `help:"Print the full final state instead of the overview."`
}

func (cmd *simulateCmd) Run(a *app) error {
	seed, err := loadSeed(cmd.SeedPath)
	if err != nil {
		return err
	}
	state := simulate(a.ctx, seed, cmd.Ticks, cmd.RandSeed)
	if cmd.State {
		return writeJSON(a.out, state)
	}
	return writeJSON(a.out, game.BuildOverview(state))
}

// simulate drives the stats and server producers synchronously, one dispatch
// each per tick.
func simulate(ctx context.Context, seed *game.State, ticks int, randSeed uint64) *game.State {
	cfg := game.ProducerConfig{Seed: randSeed}
	stats, servers := cfg.Rand(1), cfg.Rand(2)
	store := game.NewStore(game.Options{Seed: seed})
	defer store.Close()
	for i := 0; i < ticks; i++ {
		if ctx.Err() != nil {
			break
		}
		store.Dispatch(ctx, game.UpdateSystemStats{Delta: game.NextStatsDelta(stats)})
		if deltas := game.NextServerDeltas(servers, store.GetState().Servers); len(deltas) > 0 {
			store.Dispatch(ctx, game.UpdateServerMetrics{Deltas: deltas})
		}
	}
	return store.GetState()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
