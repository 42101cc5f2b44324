package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goliatone/go-gamedash/components/game"
	"github.com/goliatone/go-gamedash/components/game/commands"
	"github.com/goliatone/go-gamedash/components/game/queries"
)

type stubCommander[T any] struct {
	last  T
	calls int
	err   error
	ctx   context.Context
}

func (s *stubCommander[T]) Execute(ctx context.Context, msg T) error {
	s.last = msg
	s.calls++
	s.ctx = ctx
	return s.err
}

type stubQuerier[T, R any] struct {
	result R
	last   T
	err    error
}

func (s *stubQuerier[T, R]) Query(_ context.Context, msg T) (R, error) {
	s.last = msg
	return s.result, s.err
}

func TestHandleDispatch(t *testing.T) {
	dispatch := &stubCommander[game.Envelope]{}
	api := &Handlers{Dispatch: dispatch}
	buf := []byte(`{"kind":"TOGGLE_RETRO"}`)
	req := httptest.NewRequest(http.MethodPost, "/actions", bytes.NewReader(buf))
	req.Header.Set(HeaderActorID, "actor-7")
	rec := httptest.NewRecorder()
	api.HandleDispatch(rec, req)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}
	if dispatch.last.Kind != "TOGGLE_RETRO" {
		t.Fatalf("expected envelope propagation, got %+v", dispatch.last)
	}
	if game.ActivityFrom(dispatch.ctx).ActorID != "actor-7" {
		t.Fatalf("expected actor header on context")
	}
}

func TestHandleDispatchBadBody(t *testing.T) {
	dispatch := &stubCommander[game.Envelope]{}
	api := &Handlers{Dispatch: dispatch}
	req := httptest.NewRequest(http.MethodPost, "/actions", bytes.NewReader([]byte(`{`)))
	rec := httptest.NewRecorder()
	api.HandleDispatch(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if dispatch.calls != 0 {
		t.Fatalf("expected no dispatch on bad body")
	}
}

func TestHandleAddTask(t *testing.T) {
	add := &stubCommander[commands.AddTaskInput]{}
	api := &Handlers{AddTask: add}
	buf, _ := json.Marshal(commands.AddTaskInput{Title: "Audit", Priority: game.PriorityHigh})
	req := httptest.NewRequest(http.MethodPost, "/tasks", bytes.NewReader(buf))
	rec := httptest.NewRecorder()
	api.HandleAddTask(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if add.last.Title != "Audit" {
		t.Fatalf("expected title propagation")
	}
}

func TestHandlePurchaseErrors(t *testing.T) {
	cases := map[error]int{
		commands.ErrInsufficientFunds: http.StatusPaymentRequired,
		commands.ErrAlreadyOwned:      http.StatusConflict,
		commands.ErrUnknownItem:       http.StatusNotFound,
	}
	for err, want := range cases {
		purchase := &stubCommander[game.PurchaseItem]{err: fmt.Errorf("%w: x", err)}
		api := &Handlers{Purchase: purchase}
		rec := httptest.NewRecorder()
		api.HandlePurchase(rec, httptest.NewRequest(http.MethodPost, "/shop/x/purchase", nil), "x")
		if rec.Code != want {
			t.Fatalf("%v: expected %d, got %d", err, want, rec.Code)
		}
	}
}

func TestRoutesPathValues(t *testing.T) {
	purchase := &stubCommander[game.PurchaseItem]{}
	status := &stubCommander[game.SetUserStatus]{}
	server := &stubCommander[game.ServerAction]{}
	api := &Handlers{Purchase: purchase, SetStatus: status, ServerAction: server}
	mux := api.Routes()

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/shop/neural-sword/purchase", nil))
	if rec.Code != http.StatusOK || purchase.last.ItemID != "neural-sword" {
		t.Fatalf("expected purchase of neural-sword, got %d %+v", rec.Code, purchase.last)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/users/2/status", bytes.NewReader([]byte(`{"status":"banned"}`))))
	if rec.Code != http.StatusOK || status.last != (game.SetUserStatus{UserID: "2", Status: game.UserBanned}) {
		t.Fatalf("unexpected status call %d %+v", rec.Code, status.last)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/servers/web-01/restart", nil))
	if rec.Code != http.StatusOK || server.last != (game.ServerAction{ServerID: "web-01", Op: game.ServerRestart}) {
		t.Fatalf("unexpected server call %d %+v", rec.Code, server.last)
	}
}

func TestHandleState(t *testing.T) {
	seed := game.DefaultSeed()
	api := &Handlers{State: &stubQuerier[queries.StateInput, *game.State]{result: seed}}
	rec := httptest.NewRecorder()
	api.HandleState(rec, httptest.NewRequest(http.MethodGet, "/state", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var got game.State
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if got.Player.Name != seed.Player.Name {
		t.Fatalf("expected player %s, got %s", seed.Player.Name, got.Player.Name)
	}
}

func TestHandleFeedLimit(t *testing.T) {
	feed := &stubQuerier[queries.FeedInput, queries.Feed]{}
	api := &Handlers{Feed: feed}
	rec := httptest.NewRecorder()
	api.HandleFeed(rec, httptest.NewRequest(http.MethodGet, "/feed?limit=3", nil))
	if rec.Code != http.StatusOK || feed.last.Limit != 3 {
		t.Fatalf("expected limit 3, got %d %+v", rec.Code, feed.last)
	}

	rec = httptest.NewRecorder()
	api.HandleFeed(rec, httptest.NewRequest(http.MethodGet, "/feed?limit=-1", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestStatusFor(t *testing.T) {
	if StatusFor(fmt.Errorf("wrap: %w", game.ErrStoreClosed)) != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 for closed store")
	}
	if StatusFor(fmt.Errorf("boom")) != http.StatusInternalServerError {
		t.Fatalf("expected 500 fallback")
	}
}

func TestRoutesMountsStream(t *testing.T) {
	called := false
	api := &Handlers{Stream: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})}
	rec := httptest.NewRecorder()
	api.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stream", nil))
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected stream handler, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	(&Handlers{}).Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stream", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without stream, got %d", rec.Code)
	}
}
