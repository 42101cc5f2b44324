package usersink

import (
	"context"
	"maps"
	"slices"

	"github.com/goliatone/go-gamedash/pkg/activity"
	"github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"
)

// Sink is the subset of the go-users activity sink the hook writes to.
type Sink interface {
	Log(ctx context.Context, record types.ActivityRecord) error
}

// Hook forwards game activity events to a go-users activity sink.
type Hook struct {
	Sink Sink
}

var _ activity.Hook = Hook{}

// Notify maps evt to an ActivityRecord. Identifiers that are not UUIDs are
// recorded as uuid.Nil.
func (h Hook) Notify(ctx context.Context, evt activity.Event) error {
	if h.Sink == nil {
		return nil
	}
	evt = activity.NormalizeEvent(evt)
	if evt.Verb == "" {
		return nil
	}
	data := map[string]any{}
	if evt.Metadata != nil {
		data = maps.Clone(evt.Metadata)
	}
	if evt.DefinitionCode != "" {
		data["definition_code"] = evt.DefinitionCode
	}
	if len(evt.Recipients) > 0 {
		data["recipients"] = slices.Clone(evt.Recipients)
	}
	record := types.ActivityRecord{
		ActorID:    parseID(evt.ActorID),
		UserID:     parseID(evt.UserID),
		TenantID:   parseID(evt.TenantID),
		Verb:       evt.Verb,
		ObjectType: evt.ObjectType,
		ObjectID:   evt.ObjectID,
		Channel:    evt.Channel,
		Data:       data,
		OccurredAt: evt.OccurredAt,
	}
	return h.Sink.Log(ctx, record)
}

func parseID(raw string) uuid.UUID {
	if raw == "" {
		return uuid.Nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}
