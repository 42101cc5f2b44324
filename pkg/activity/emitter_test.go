package activity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitterStampsChannel(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		channel string
		want    string
	}{
		{name: "default", cfg: Config{Enabled: true}, want: DefaultChannel},
		{name: "configured", cfg: Config{Enabled: true, Channel: "arena"}, want: "arena"},
		{name: "explicit wins", cfg: Config{Enabled: true, Channel: "arena"}, channel: "ops", want: "ops"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			capture := &CaptureHook{}
			em := NewEmitter(Hooks{capture}, tc.cfg)
			require.NoError(t, em.Emit(context.Background(), Event{
				Verb:       "game.server_action",
				ObjectType: "server",
				ObjectID:   "web-01",
				Channel:    tc.channel,
			}))
			require.Len(t, capture.Events, 1)
			assert.Equal(t, tc.want, capture.Events[0].Channel)
		})
	}
}

func TestEmitterEnabled(t *testing.T) {
	capture := &CaptureHook{}
	assert.True(t, NewEmitter(Hooks{capture}, Config{Enabled: true}).Enabled())
	assert.False(t, NewEmitter(nil, Config{Enabled: true}).Enabled())
	assert.False(t, (*Emitter)(nil).Enabled())

	off := NewEmitter(Hooks{capture}, Config{})
	require.False(t, off.Enabled())
	require.NoError(t, off.Emit(context.Background(), Event{Verb: "game.gain_xp"}))
	assert.Empty(t, capture.Events)
}
