package gorouter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-gamedash/components/game"
	"github.com/goliatone/go-gamedash/components/game/httpapi"
	"github.com/goliatone/go-gamedash/components/game/queries"
)

// Config wires go-router with the game commands, queries and broadcaster.
type Config[T any] struct {
	Router    router.Router[T]
	API       *httpapi.Handlers
	Broadcast *game.Broadcaster
	// Snapshot, when set, is sent to each WebSocket client before the stream.
	Snapshot func() *game.State
	BasePath string
	Routes   RouteConfig
}

// RouteConfig customizes the relative paths used for game endpoints.
type RouteConfig struct {
	State      string
	Overview   string
	Feed       string
	Actions    string
	Tasks      string
	Events     string
	Users      string
	UserStatus string
	Purchase   string
	Server     string
	WebSocket  string
}

// Register mounts game routes (JSON, REST, WebSocket) on a go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.API == nil {
		return errors.New("gorouter: api handlers are required")
	}
	routes := defaultRouteConfig(cfg.Routes)
	base := cfg.BasePath
	if base == "" {
		base = "/game"
	}
	group := cfg.Router.Group(base)
	api := cfg.API

	if api.State != nil {
		group.Get(routes.State, router.WrapHandler(func(ctx router.Context) error {
			state, err := api.State.Query(ctx.Context(), queries.StateInput{})
			if err != nil {
				return respondError(ctx, httpapi.StatusFor(err), err)
			}
			return ctx.JSON(http.StatusOK, state)
		}))
	}
	if api.Overview != nil {
		group.Get(routes.Overview, router.WrapHandler(func(ctx router.Context) error {
			overview, err := api.Overview.Query(ctx.Context(), queries.OverviewInput{})
			if err != nil {
				return respondError(ctx, httpapi.StatusFor(err), err)
			}
			return ctx.JSON(http.StatusOK, overview)
		}))
	}
	if api.Feed != nil {
		group.Get(routes.Feed, router.WrapHandler(func(ctx router.Context) error {
			input := queries.FeedInput{}
			if raw := ctx.Query("limit"); raw != "" {
				n, err := strconv.Atoi(raw)
				if err != nil || n < 0 {
					return respondError(ctx, http.StatusBadRequest, errors.New("invalid limit"))
				}
				input.Limit = n
			}
			feed, err := api.Feed.Query(ctx.Context(), input)
			if err != nil {
				return respondError(ctx, httpapi.StatusFor(err), err)
			}
			return ctx.JSON(http.StatusOK, feed)
		}))
	}

	if api.Dispatch != nil {
		group.Post(routes.Actions, bodyHandler(api.Dispatch, http.StatusAccepted, "dispatched"))
	}
	if api.AddTask != nil {
		group.Post(routes.Tasks, bodyHandler(api.AddTask, http.StatusCreated, "created"))
	}
	if api.AddEvent != nil {
		group.Post(routes.Events, bodyHandler(api.AddEvent, http.StatusCreated, "created"))
	}
	if api.AddUser != nil {
		group.Post(routes.Users, bodyHandler(api.AddUser, http.StatusCreated, "created"))
	}

	if api.SetStatus != nil {
		group.Post(routes.UserStatus, router.WrapHandler(func(ctx router.Context) error {
			var payload struct {
				Status game.UserStatus `json:"status"`
			}
			if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
				return respondError(ctx, http.StatusBadRequest, err)
			}
			msg := game.SetUserStatus{UserID: ctx.Param("id"), Status: payload.Status}
			if err := api.SetStatus.Execute(activityContext(ctx), msg); err != nil {
				return respondError(ctx, httpapi.StatusFor(err), err)
			}
			return ctx.JSON(http.StatusOK, map[string]string{"status": string(msg.Status)})
		}))
	}
	if api.Purchase != nil {
		group.Post(routes.Purchase, router.WrapHandler(func(ctx router.Context) error {
			id := ctx.Param("id")
			if id == "" {
				return respondError(ctx, http.StatusBadRequest, errors.New("item id is required"))
			}
			if err := api.Purchase.Execute(activityContext(ctx), game.PurchaseItem{ItemID: id}); err != nil {
				return respondError(ctx, httpapi.StatusFor(err), err)
			}
			return ctx.JSON(http.StatusOK, map[string]string{"status": "purchased"})
		}))
	}
	if api.ServerAction != nil {
		group.Post(routes.Server, router.WrapHandler(func(ctx router.Context) error {
			msg := game.ServerAction{ServerID: ctx.Param("id"), Op: game.ServerOp(ctx.Param("op"))}
			if err := api.ServerAction.Execute(activityContext(ctx), msg); err != nil {
				return respondError(ctx, httpapi.StatusFor(err), err)
			}
			return ctx.JSON(http.StatusOK, map[string]string{"status": string(msg.Op)})
		}))
	}

	if cfg.Broadcast != nil {
		registerWebSocket(group, cfg.Broadcast, cfg.Snapshot, routes.WebSocket)
	}
	return nil
}

type executor[M any] interface {
	Execute(ctx context.Context, msg M) error
}

func bodyHandler[M any](cmd executor[M], status int, label string) router.HandlerFunc {
	return router.WrapHandler(func(ctx router.Context) error {
		var payload M
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := cmd.Execute(activityContext(ctx), payload); err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return ctx.JSON(status, map[string]string{"status": label})
	})
}

func registerWebSocket[T any](r router.Router[T], b *game.Broadcaster, snapshot func() *game.State, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		events, cancel := b.Subscribe()
		defer cancel()
		if snapshot != nil {
			if err := ws.WriteJSON(game.StateEvent{Type: game.EventTypeState, State: snapshot()}); err != nil {
				return err
			}
		}
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(event); err != nil {
					return err
				}
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

// activityContext lifts caller identifiers from headers, falling back to the
// user_id local set by auth middleware.
func activityContext(ctx router.Context) context.Context {
	meta := game.ActivityContext{
		ActorID:  ctx.Header(httpapi.HeaderActorID),
		UserID:   ctx.Header(httpapi.HeaderUserID),
		TenantID: ctx.Header(httpapi.HeaderTenantID),
	}
	if meta.ActorID == "" {
		if v, ok := ctx.Locals("user_id").(string); ok {
			meta.ActorID = v
		}
	}
	return game.ContextWithActivity(ctx.Context(), meta)
}

func respondError(ctx router.Context, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.State == "" {
		routes.State = "/state"
	}
	if routes.Overview == "" {
		routes.Overview = "/overview"
	}
	if routes.Feed == "" {
		routes.Feed = "/feed"
	}
	if routes.Actions == "" {
		routes.Actions = "/actions"
	}
	if routes.Tasks == "" {
		routes.Tasks = "/tasks"
	}
	if routes.Events == "" {
		routes.Events = "/events"
	}
	if routes.Users == "" {
		routes.Users = "/users"
	}
	if routes.UserStatus == "" {
		routes.UserStatus = "/users/:id/status"
	}
	if routes.Purchase == "" {
		routes.Purchase = "/shop/:id/purchase"
	}
	if routes.Server == "" {
		routes.Server = "/servers/:id/:op"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/ws"
	}
	return routes
}
