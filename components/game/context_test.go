package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActivityContextRoundTrip(t *testing.T) {
	meta := ActivityContext{ActorID: "admin-1", TenantID: "acme"}
	ctx := ContextWithActivity(context.Background(), meta)
	assert.Equal(t, meta, ActivityFrom(ctx))
	assert.Equal(t, "admin-1", ActivityFrom(ctx).ActorOr("player1"))

	assert.True(t, ActivityFrom(context.Background()).IsZero())
	assert.Equal(t, "player1", ActivityFrom(nil).ActorOr("player1")) //nolint:staticcheck
}

func TestContextWithActivitySkipsZero(t *testing.T) {
	base := context.Background()
	assert.Equal(t, base, ContextWithActivity(base, ActivityContext{}))
	assert.NotNil(t, ContextWithActivity(nil, ActivityContext{UserID: "u"})) //nolint:staticcheck
}
