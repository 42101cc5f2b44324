package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
)

type cli struct {
	LogLevel  string `name:"log-level" enum:"debug,info,warn,error" default:"info" env:"GAMECTL_LOG_LEVEL" help:"Minimum log level."`
	LogFormat string `name:"log-format" enum:"text,json" default:"text" env:"GAMECTL_LOG_FORMAT" help:"Log output format."`
	Config    string `type:"path" env:"GAMECTL_CONFIG" help:"Optional YAML config file."`

	Serve    serveCmd    `cmd:"" help:"Run the game state store with producers, HTTP API and WebSocket stream."`
	Seed     seedCmd     `cmd:"" help:"Inspect and validate seed files."`
	Simulate simulateCmd `cmd:"" help:"Run the telemetry producers offline for a number of ticks and print the overview."`
	Replay   replayCmd   `cmd:"" help:"Rebuild the state from a journal directory."`
}

// app carries what every command needs once flags are parsed.
type app struct {
	ctx    context.Context
	logger *slog.Logger
	config fileConfig
	out    io.Writer
}

func main() {
	var root cli
	kctx := kong.Parse(&root,
		kong.Name("gamectl"),
		kong.Description("Control utility for the go-gamedash state store."),
		kong.UsageOnError(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(root.Config)
	kctx.FatalIfErrorf(err)

	logger := newLogger(os.Stderr, root.LogLevel, root.LogFormat)
	slog.SetDefault(logger)

	err = kctx.Run(&app{ctx: ctx, logger: logger, config: cfg, out: os.Stdout})
	kctx.FatalIfErrorf(err)
}

func newLogger(w io.Writer, level, format string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func fprintf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
