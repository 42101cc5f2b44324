package game

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/goliatone/go-gamedash/pkg/activity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTelemetry struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingTelemetry) Record(_ context.Context, event string, _ map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func TestStoreDispatchNotifiesInOrder(t *testing.T) {
	store := NewStore(Options{})
	var calls []string
	store.Subscribe(func(_ context.Context, change Change) {
		calls = append(calls, "first")
		if change.Next != store.GetState() {
			t.Fatalf("listener should observe the published snapshot")
		}
	})
	store.Subscribe(func(_ context.Context, change Change) {
		calls = append(calls, "second")
		if change.Version != 1 || change.Action.Kind() != KindCompleteTask {
			t.Fatalf("unexpected change %+v", change)
		}
	})

	prev := store.GetState()
	next := store.Dispatch(context.Background(), CompleteTask{TaskID: "1"})
	require.NotSame(t, prev, next)
	assert.Same(t, next, store.GetState())
	assert.Equal(t, []string{"first", "second"}, calls)
	assert.Equal(t, uint64(1), store.Version())
	assert.Equal(t, 1897, next.Player.XP)
}

func TestStoreNoopDoesNotNotify(t *testing.T) {
	telemetry := &recordingTelemetry{}
	store := NewStore(Options{Telemetry: telemetry})
	called := 0
	store.Subscribe(func(context.Context, Change) { called++ })
	before := store.GetState()
	after := store.Dispatch(context.Background(), TalkToNPC{NPCID: "ghost"})
	assert.Same(t, before, after)
	assert.Equal(t, 0, called)
	assert.Equal(t, uint64(0), store.Version())
	assert.Equal(t, []string{"game.action.noop"}, telemetry.events)
}

func TestStoreSubscribeCancel(t *testing.T) {
	store := NewStore(Options{})
	called := 0
	cancel := store.Subscribe(func(context.Context, Change) { called++ })
	store.Dispatch(context.Background(), ToggleRetro{})
	cancel()
	cancel()
	store.Dispatch(context.Background(), ToggleRetro{})
	assert.Equal(t, 1, called)
}

func TestStoreCloseStopsDispatch(t *testing.T) {
	store := NewStore(Options{})
	called := 0
	store.Subscribe(func(context.Context, Change) { called++ })
	store.Close()
	require.True(t, store.Closed())

	before := store.GetState()
	assert.Same(t, before, store.Dispatch(context.Background(), ToggleRetro{}))
	_, err := store.TryDispatch(context.Background(), ToggleRetro{})
	if !errors.Is(err, ErrStoreClosed) {
		t.Fatalf("expected ErrStoreClosed, got %v", err)
	}
	assert.Equal(t, 0, called)
	store.Close()
}

func TestStoreTryDispatchNilAction(t *testing.T) {
	store := NewStore(Options{})
	_, err := store.TryDispatch(context.Background(), nil)
	require.Error(t, err)
}

func TestStoreSerialisesConcurrentDispatch(t *testing.T) {
	store := NewStore(Options{})
	start := store.GetState().Player.XP
	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Dispatch(context.Background(), GainXP{Amount: 1})
		}()
	}
	wg.Wait()
	assert.Equal(t, start+64, store.GetState().Player.XP)
	assert.Equal(t, uint64(64), store.Version())
}

func TestStoreCustomSeedAndReducer(t *testing.T) {
	seed := &State{Player: Player{ID: "p"}}
	store := NewStore(Options{
		Seed: seed,
		Reducer: func(state *State, action Action) *State {
			next := *state
			next.TutorialStep = 99
			return &next
		},
	})
	assert.Same(t, seed, store.GetState())
	assert.Equal(t, 99, store.Dispatch(context.Background(), UnknownAction{Type: "X"}).TutorialStep)
}

func TestStoreEmitsActivity(t *testing.T) {
	capture := &activity.CaptureHook{}
	store := NewStore(Options{
		ActivityHooks:  activity.Hooks{capture},
		ActivityConfig: activity.Config{Enabled: true},
	})
	ctx := ContextWithActivity(context.Background(), ActivityContext{ActorID: "actor-1", TenantID: "tenant-1"})
	store.Dispatch(ctx, CompleteTask{TaskID: "1"})
	store.Dispatch(ctx, CompleteTask{TaskID: "1"})

	if len(capture.Events) != 1 {
		t.Fatalf("expected 1 activity event, got %d", len(capture.Events))
	}
	event := capture.Events[0]
	if event.Verb != "game.complete_task" || event.ObjectType != "task" || event.ObjectID != "1" {
		t.Fatalf("unexpected event payload: %+v", event)
	}
	if event.ActorID != "actor-1" || event.TenantID != "tenant-1" {
		t.Fatalf("unexpected actor context: %+v", event)
	}
	if event.Channel != activity.DefaultChannel {
		t.Fatalf("expected default channel, got %q", event.Channel)
	}
	if event.Metadata["version"] != uint64(1) {
		t.Fatalf("expected version metadata, got %+v", event.Metadata)
	}
}

func TestStoreActivityDefaultsActorToPlayer(t *testing.T) {
	capture := &activity.CaptureHook{}
	store := NewStore(Options{
		ActivityHooks:  activity.Hooks{capture},
		ActivityConfig: activity.Config{Enabled: true},
	})
	store.Dispatch(context.Background(), ChangeLocation{LocationID: "shop"})
	require.Len(t, capture.Events, 1)
	assert.Equal(t, "player1", capture.Events[0].ActorID)
	assert.Equal(t, "location", capture.Events[0].ObjectType)
}

func TestActivityVerb(t *testing.T) {
	assert.Equal(t, "game.talk_to_npc", ActivityVerb(KindTalkToNPC))
}
