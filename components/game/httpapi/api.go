package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-gamedash/components/game"
	"github.com/goliatone/go-gamedash/components/game/commands"
	"github.com/goliatone/go-gamedash/components/game/queries"
)

// Activity headers identify the caller for the activity stream.
const (
	HeaderActorID  = "X-Actor-ID"
	HeaderUserID   = "X-User-ID"
	HeaderTenantID = "X-Tenant-ID"
)

// Handlers exposes HTTP endpoints backed by shared commands and queries.
type Handlers struct {
	Dispatch     gocommand.Commander[game.Envelope]
	AddTask      gocommand.Commander[commands.AddTaskInput]
	AddEvent     gocommand.Commander[commands.AddEventInput]
	AddUser      gocommand.Commander[commands.AddUserInput]
	SetStatus    gocommand.Commander[game.SetUserStatus]
	Purchase     gocommand.Commander[game.PurchaseItem]
	ServerAction gocommand.Commander[game.ServerAction]

	State    gocommand.Querier[queries.StateInput, *game.State]
	Overview gocommand.Querier[queries.OverviewInput, game.Overview]
	Feed     gocommand.Querier[queries.FeedInput, queries.Feed]

	// Stream, when set, serves the live event stream (SSE or WebSocket).
	Stream http.Handler
}

// Routes mounts every handler on a ServeMux.
func (h *Handlers) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /actions", h.HandleDispatch)
	mux.HandleFunc("POST /tasks", h.HandleAddTask)
	mux.HandleFunc("POST /events", h.HandleAddEvent)
	mux.HandleFunc("POST /users", h.HandleAddUser)
	mux.HandleFunc("POST /users/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		h.HandleSetUserStatus(w, r, r.PathValue("id"))
	})
	mux.HandleFunc("POST /shop/{id}/purchase", func(w http.ResponseWriter, r *http.Request) {
		h.HandlePurchase(w, r, r.PathValue("id"))
	})
	mux.HandleFunc("POST /servers/{id}/{op}", func(w http.ResponseWriter, r *http.Request) {
		h.HandleServerAction(w, r, r.PathValue("id"), r.PathValue("op"))
	})
	mux.HandleFunc("GET /state", h.HandleState)
	mux.HandleFunc("GET /overview", h.HandleOverview)
	mux.HandleFunc("GET /feed", h.HandleFeed)
	if h.Stream != nil {
		mux.Handle("GET /stream", h.Stream)
	}
	return mux
}

func (h *Handlers) HandleDispatch(w http.ResponseWriter, r *http.Request) {
	var payload game.Envelope
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Dispatch.Execute(withActivity(r), payload); err != nil {
		http.Error(w, err.Error(), StatusFor(err))
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handlers) HandleAddTask(w http.ResponseWriter, r *http.Request) {
	var payload commands.AddTaskInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.AddTask.Execute(withActivity(r), payload); err != nil {
		http.Error(w, err.Error(), StatusFor(err))
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handlers) HandleAddEvent(w http.ResponseWriter, r *http.Request) {
	var payload commands.AddEventInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.AddEvent.Execute(withActivity(r), payload); err != nil {
		http.Error(w, err.Error(), StatusFor(err))
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handlers) HandleAddUser(w http.ResponseWriter, r *http.Request) {
	var payload commands.AddUserInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.AddUser.Execute(withActivity(r), payload); err != nil {
		http.Error(w, err.Error(), StatusFor(err))
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handlers) HandleSetUserStatus(w http.ResponseWriter, r *http.Request, userID string) {
	var payload struct {
		Status game.UserStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	msg := game.SetUserStatus{UserID: userID, Status: payload.Status}
	if err := h.SetStatus.Execute(withActivity(r), msg); err != nil {
		http.Error(w, err.Error(), StatusFor(err))
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandlePurchase(w http.ResponseWriter, r *http.Request, itemID string) {
	if err := h.Purchase.Execute(withActivity(r), game.PurchaseItem{ItemID: itemID}); err != nil {
		http.Error(w, err.Error(), StatusFor(err))
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleServerAction(w http.ResponseWriter, r *http.Request, serverID, op string) {
	msg := game.ServerAction{ServerID: serverID, Op: game.ServerOp(op)}
	if err := h.ServerAction.Execute(withActivity(r), msg); err != nil {
		http.Error(w, err.Error(), StatusFor(err))
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleState(w http.ResponseWriter, r *http.Request) {
	state, err := h.State.Query(r.Context(), queries.StateInput{})
	if err != nil {
		http.Error(w, err.Error(), StatusFor(err))
		return
	}
	writeJSON(w, state)
}

func (h *Handlers) HandleOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.Overview.Query(r.Context(), queries.OverviewInput{})
	if err != nil {
		http.Error(w, err.Error(), StatusFor(err))
		return
	}
	writeJSON(w, overview)
}

func (h *Handlers) HandleFeed(w http.ResponseWriter, r *http.Request) {
	input := queries.FeedInput{}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		input.Limit = n
	}
	feed, err := h.Feed.Query(r.Context(), input)
	if err != nil {
		http.Error(w, err.Error(), StatusFor(err))
		return
	}
	writeJSON(w, feed)
}

// StatusFor maps command errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, commands.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, commands.ErrUnknownItem),
		errors.Is(err, commands.ErrUnknownUser),
		errors.Is(err, commands.ErrUnknownServer):
		return http.StatusNotFound
	case errors.Is(err, commands.ErrAlreadyOwned), errors.Is(err, commands.ErrNoEffect):
		return http.StatusConflict
	case errors.Is(err, commands.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	case errors.Is(err, game.ErrStoreClosed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func withActivity(r *http.Request) context.Context {
	meta := game.ActivityContext{
		ActorID:  r.Header.Get(HeaderActorID),
		UserID:   r.Header.Get(HeaderUserID),
		TenantID: r.Header.Get(HeaderTenantID),
	}
	return game.ContextWithActivity(r.Context(), meta)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
