package activity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHooksTrimQuestEvent(t *testing.T) {
	capture := &CaptureHook{}
	err := Hooks{capture}.Notify(context.Background(), Event{
		Verb:       "  game.complete_quest\t",
		ActorID:    " player1 ",
		ObjectType: " quest",
		ObjectID:   "daily-monitoring ",
		Channel:    " game ",
	})
	require.NoError(t, err)
	require.Len(t, capture.Events, 1)
	evt := capture.Events[0]
	assert.Equal(t, "game.complete_quest", evt.Verb)
	assert.Equal(t, "player1", evt.ActorID)
	assert.Equal(t, "quest", evt.ObjectType)
	assert.Equal(t, "daily-monitoring", evt.ObjectID)
	assert.Equal(t, "game", evt.Channel)
}

func TestHooksDropEventsWithoutVerb(t *testing.T) {
	capture := &CaptureHook{}
	hooks := Hooks{capture}
	for _, verb := range []string{"", "   "} {
		require.NoError(t, hooks.Notify(context.Background(), Event{Verb: verb, ObjectType: "npc", ObjectID: "aria"}))
	}
	assert.Empty(t, capture.Events)
}

func TestNormalizeEventDetachesPurchaseMetadata(t *testing.T) {
	at := time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC)
	evt := Event{
		Verb:       "game.purchase_item",
		ObjectType: "shop_item",
		ObjectID:   "neural-sword",
		Metadata:   map[string]any{"version": uint64(4)},
		Recipients: []string{"admin@company.com"},
		OccurredAt: at,
	}
	n := NormalizeEvent(evt)
	n.Metadata["version"] = uint64(5)
	n.Recipients[0] = "ops@company.com"

	assert.Equal(t, uint64(4), evt.Metadata["version"])
	assert.Equal(t, "admin@company.com", evt.Recipients[0])
	assert.Equal(t, at, n.OccurredAt)
	assert.False(t, NormalizeEvent(Event{Verb: "game.toggle_retro"}).OccurredAt.IsZero())
}

func TestHooksJoinErrorsAndKeepGoing(t *testing.T) {
	arena := errors.New("arena sink offline")
	ledger := errors.New("ledger sink offline")
	capture := &CaptureHook{}
	hooks := Hooks{
		HookFunc(func(context.Context, Event) error { return arena }),
		nil,
		HookFunc(func(context.Context, Event) error { return ledger }),
		capture,
	}
	err := hooks.Notify(context.Background(), Event{Verb: "game.battle_round", ObjectType: "battle"})
	require.ErrorIs(t, err, arena)
	require.ErrorIs(t, err, ledger)
	require.Len(t, capture.Events, 1)
	assert.Equal(t, "battle", capture.Events[0].ObjectType)
}
