package main

import (
	"fmt"

	"github.com/goliatone/go-gamedash/components/game"
	"github.com/goliatone/go-gamedash/pkg/journal"
)

type replayCmd struct {
	Dir      string `required:"" type:"existingdir" help:"Journal directory."`
	Prefix   string `default:"actions" help:"Journal file prefix."`
	SeedPath string `name:"seed" type:"path" help:"Seed the journal was recorded against (defaults to the built-in seed)."`
	Session  string `help:"Replay only this session (defaults to every session, printing the last)."`
	Overview bool   `help:"Print the overview instead of the full state."`
}

func (cmd *replayCmd) Run(a *app) error {
	res, err := replayDir(cmd.Dir, cmd.Prefix, cmd.SeedPath, cmd.Session)
	if err != nil {
		return err
	}
	a.logger.Info("replay complete", "session", res.Session, "sessions", res.Sessions, "applied", res.Applied, "verified", res.Verified, "last_seq", res.LastSeq)
	if cmd.Overview {
		return writeJSON(a.out, game.BuildOverview(res.State))
	}
	return writeJSON(a.out, res.State)
}

func replayDir(dir, prefix, seedPath, session string) (journal.Result, error) {
	seed, err := loadSeed(seedPath)
	if err != nil {
		return journal.Result{}, err
	}
	entries, err := journal.ReadDir(dir, prefix)
	if err != nil {
		return journal.Result{}, err
	}
	var res journal.Result
	if session == "" {
		res, err = journal.Replay(seed, entries, nil)
	} else {
		found, ok := journal.FindSession(entries, session)
		if !ok {
			return res, fmt.Errorf("gamectl: session %s not found in %s", session, dir)
		}
		res, err = journal.ReplaySession(seed, found, nil)
	}
	if err != nil {
		return res, fmt.Errorf("gamectl: replay %s: %w", dir, err)
	}
	return res, nil
}
