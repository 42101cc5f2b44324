package commands

import (
	"context"
	"fmt"
	"strings"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-gamedash/components/game"
	"github.com/google/uuid"
)

// AddEventInput is the payload of the new calendar event form.
type AddEventInput struct {
	ID    string         `json:"id,omitempty"`
	Title string         `json:"title"`
	Date  string         `json:"date"`
	Time  string         `json:"time"`
	Type  game.EventType `json:"type"`
}

// EventXPReward is the XP an event of the given type pays on completion.
func EventXPReward(t game.EventType) int {
	switch t {
	case game.EventDeadline:
		return 100
	case game.EventMaintenance:
		return 50
	default:
		return 25
	}
}

// AddEventCommand schedules calendar events.
type AddEventCommand struct {
	store     game.StateDispatcher
	telemetry Telemetry
	newID     func() string
}

// NewAddEventCommand creates the command.
func NewAddEventCommand(store game.StateDispatcher, telemetry Telemetry) *AddEventCommand {
	return &AddEventCommand{store: store, telemetry: normalizeTelemetry(telemetry), newID: uuid.NewString}
}

var _ gocommand.Commander[AddEventInput] = (*AddEventCommand)(nil)

// Execute dispatches ADD_EVENT.
func (c *AddEventCommand) Execute(ctx context.Context, msg AddEventInput) error {
	if c.store == nil {
		return ErrMissingStore
	}
	title := strings.TrimSpace(msg.Title)
	if title == "" {
		return fmt.Errorf("%w: event title is required", ErrInvalidInput)
	}
	kind := msg.Type
	switch kind {
	case "":
		kind = game.EventMeeting
	case game.EventMeeting, game.EventDeadline, game.EventMaintenance, game.EventGeneric:
	default:
		return fmt.Errorf("%w: unknown event type %q", ErrInvalidInput, msg.Type)
	}
	id := msg.ID
	if id == "" {
		id = c.newID()
	}
	event := game.CalendarEvent{
		ID:       id,
		Title:    title,
		Date:     msg.Date,
		Time:     msg.Time,
		Type:     kind,
		XPReward: EventXPReward(kind),
	}
	before := c.store.GetState()
	if c.store.Dispatch(ctx, game.AddEvent{Event: event}) == before {
		return fmt.Errorf("%w: event %s exists", ErrNoEffect, id)
	}
	c.telemetry.Record(ctx, "game.event.add", map[string]any{"event_id": id, "type": string(kind)})
	return nil
}
