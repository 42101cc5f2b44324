package main

import (
	"fmt"
	"os"

	"github.com/goliatone/go-gamedash/components/game"
)

type seedCmd struct {
	Dump     seedDumpCmd     `cmd:"" help:"Write a seed file (the built-in seed unless --from is given)."`
	Validate seedValidateCmd `cmd:"" help:"Validate one or more seed files."`
}

type seedDumpCmd struct {
	From string `type:"path" help:"Seed file to normalise instead of the built-in seed."`
	Name string `default:"default" help:"Name recorded in the document."`
	Out  string `short:"o" type:"path" help:"Output path (defaults to stdout)."`
}

func (cmd *seedDumpCmd) Run(a *app) error {
	state, err := loadSeed(cmd.From)
	if err != nil {
		return err
	}
	if cmd.Out == "" {
		return game.EncodeSeed(a.out, cmd.Name, state)
	}
	f, err := os.Create(cmd.Out)
	if err != nil {
		return fmt.Errorf("gamectl: create %s: %w", cmd.Out, err)
	}
	if err := game.EncodeSeed(f, cmd.Name, state); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fprintf(a.out, "✓ Wrote seed %s to %s\n", cmd.Name, cmd.Out)
	return nil
}

type seedValidateCmd struct {
	Paths []string `arg:"" help:"Seed files to validate."`
}

func (cmd *seedValidateCmd) Run(a *app) error {
	failed := 0
	for _, path := range cmd.Paths {
		if _, err := loadSeed(path); err != nil {
			failed++
			a.logger.Error("invalid seed", "path", path, "error", err)
			continue
		}
		fprintf(a.out, "✓ %s\n", path)
	}
	if failed > 0 {
		return fmt.Errorf("gamectl: %d of %d seed files invalid", failed, len(cmd.Paths))
	}
	return nil
}
