package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-gamedash/components/game"
	"github.com/goliatone/go-gamedash/components/game/commands"
	"github.com/goliatone/go-gamedash/components/game/gorouter"
	"github.com/goliatone/go-gamedash/components/game/httpapi"
	"github.com/goliatone/go-gamedash/components/game/queries"
	"github.com/goliatone/go-gamedash/pkg/activity"
	"github.com/goliatone/go-gamedash/pkg/analytics"
	"github.com/goliatone/go-gamedash/pkg/journal"
)

type serveCmd struct {
	Addr       string `help:"Listen address (overrides config)."`
	SeedPath   string `name:"seed" type:"path" help:"Seed YAML file (overrides config)."`
	JournalDir string `name:"journal" type:"path" help:"Journal directory (overrides config)."`
	RandSeed   uint64 `name:"rand-seed" help:"Fixed seed for the producers' random streams."`
	Transport  string `enum:"router,http" default:"router" help:"router mounts go-router on Fiber with WebSocket; http serves the net/http mux with SSE."`
}

func (cmd *serveCmd) Run(a *app) error {
	cfg := a.config
	if cmd.Addr != "" {
		cfg.Addr = cmd.Addr
	}
	if cmd.SeedPath != "" {
		cfg.SeedPath = cmd.SeedPath
	}
	if cmd.JournalDir != "" {
		cfg.Journal.Dir = cmd.JournalDir
	}
	if cmd.RandSeed != 0 {
		cfg.Producers.Seed = cmd.RandSeed
	}
	logger := a.logger

	seed, err := loadSeed(cfg.SeedPath)
	if err != nil {
		return err
	}
	store := game.NewStore(game.Options{
		Seed:      seed,
		Telemetry: game.LogTelemetry{Logger: logger},
		Logger:    logger,
		ActivityHooks: activity.Hooks{activity.HookFunc(func(ctx context.Context, evt activity.Event) error {
			logger.DebugContext(ctx, "activity", "verb", evt.Verb, "object", evt.ObjectID, "actor", evt.ActorID)
			return nil
		})},
	})
	defer store.Close()

	if cfg.Journal.Dir != "" {
		writer := journal.NewWriter(cfg.Journal.Dir, cfg.Journal.Prefix)
		defer writer.Close()
		cancel := store.Subscribe(journal.Listener(writer, journal.ListenerOptions{WithDigest: cfg.Journal.Digest, Logger: logger}))
		defer cancel()
		logger.Info("journal enabled", "dir", cfg.Journal.Dir)
	}

	broadcast := game.NewBroadcaster(cfg.Buffer)
	defer broadcast.Attach(store)()

	source, err := analyticsSource(cfg.Analytics, cfg.Producers.Seed)
	if err != nil {
		return err
	}

	pc := cfg.Producers
	threats := game.NewThreatDetector(pc, pc.Rand(3))
	feed := game.NewActivityFeed(pc, pc.Rand(4))
	runner := game.NewRunner(logger)
	runner.Start(a.ctx,
		&game.StatsProducer{Store: store, Rand: pc.Rand(1), Interval: pc.StatsInterval},
		&game.ServerMetricsProducer{Store: store, Rand: pc.Rand(2), Interval: pc.ServerInterval},
		&game.EventNotifier{Notifier: broadcast, Rand: pc.Rand(5), Interval: pc.NotifyInterval, Duration: pc.NotificationDuration, Logger: logger},
		&game.AnalyticsProducer{Store: store, Source: source, Interval: pc.AnalyticsInterval, Logger: logger},
		threats,
		feed,
	)
	defer runner.Stop()

	telemetry := game.LogTelemetry{Logger: logger}
	api := &httpapi.Handlers{
		Dispatch:     commands.NewDispatchCommand(store, nil, telemetry),
		AddTask:      commands.NewAddTaskCommand(store, telemetry),
		AddEvent:     commands.NewAddEventCommand(store, telemetry),
		AddUser:      commands.NewAddUserCommand(store, telemetry),
		SetStatus:    commands.NewSetUserStatusCommand(store, telemetry),
		Purchase:     commands.NewPurchaseItemCommand(store, telemetry),
		ServerAction: commands.NewServerActionCommand(store, telemetry),
		State:        queries.NewStateQuery(store),
		Overview:     queries.NewOverviewQuery(store),
		Feed:         queries.NewFeedQuery(threats, feed),
	}

	var server shutdowner
	if cmd.Transport == "http" {
		api.Stream = http.HandlerFunc(broadcast.ServeSSE)
		server = newHTTPServer(cfg.Addr, cfg.BasePath, api)
		logger.Info("game routes ready", "addr", cfg.Addr, "base", cfg.BasePath, "sse", cfg.BasePath+"/stream")
	} else {
		adapter := router.NewFiberAdapter()
		if err := gorouter.Register(gorouter.Config[*fiber.App]{
			Router:    adapter.Router(),
			API:       api,
			Broadcast: broadcast,
			Snapshot:  store.GetState,
			BasePath:  cfg.BasePath,
		}); err != nil {
			return fmt.Errorf("gamectl: register routes: %w", err)
		}
		server = adapter
		logger.Info("game routes ready", "addr", cfg.Addr, "base", cfg.BasePath, "ws", cfg.BasePath+"/ws")
	}

	errc := make(chan error, 1)
	go func() { errc <- server.Serve(cfg.Addr) }()

	select {
	case err := <-errc:
		return err
	case <-a.ctx.Done():
	}
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}

type shutdowner interface {
	Serve(addr string) error
	Shutdown(ctx context.Context) error
}

type httpServer struct {
	srv *http.Server
}

func newHTTPServer(addr, basePath string, api *httpapi.Handlers) *httpServer {
	basePath = strings.TrimRight(basePath, "/")
	mux := http.NewServeMux()
	mux.Handle(basePath+"/", http.StripPrefix(basePath, api.Routes()))
	return &httpServer{srv: &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}}
}

func (s *httpServer) Serve(string) error {
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *httpServer) Shutdown(ctx context.Context) error { return s.srv.Shutdown(ctx) }

func analyticsSource(cfg analyticsConfig, seed uint64) (game.AnalyticsSource, error) {
	if cfg.BaseURL == "" {
		return analytics.NewMockClient(analytics.MockData{Jitter: cfg.Jitter, Seed: seed}), nil
	}
	return analytics.NewHTTPClient(analytics.HTTPConfig{BaseURL: cfg.BaseURL, APIKey: cfg.APIKey})
}
