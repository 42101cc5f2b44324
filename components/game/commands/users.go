package commands

import (
	"context"
	"fmt"
	"slices"
	"strings"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-gamedash/components/game"
	"github.com/google/uuid"
)

// AddUserInput is the payload of the invite user form.
type AddUserInput struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// AddUserCommand registers managed accounts.
type AddUserCommand struct {
	store     game.StateDispatcher
	telemetry Telemetry
	newID     func() string
}

// NewAddUserCommand creates the command.
func NewAddUserCommand(store game.StateDispatcher, telemetry Telemetry) *AddUserCommand {
	return &AddUserCommand{store: store, telemetry: normalizeTelemetry(telemetry), newID: uuid.NewString}
}

var _ gocommand.Commander[AddUserInput] = (*AddUserCommand)(nil)

// Execute dispatches ADD_USER for a fresh active level 1 account.
func (c *AddUserCommand) Execute(ctx context.Context, msg AddUserInput) error {
	if c.store == nil {
		return ErrMissingStore
	}
	name := strings.TrimSpace(msg.Name)
	if name == "" {
		return fmt.Errorf("%w: user name is required", ErrInvalidInput)
	}
	id := msg.ID
	if id == "" {
		id = c.newID()
	}
	role := msg.Role
	if role == "" {
		role = "User"
	}
	user := game.User{
		ID:       id,
		Name:     name,
		Email:    strings.TrimSpace(msg.Email),
		Role:     role,
		Status:   game.UserActive,
		LastSeen: "Just now",
		Level:    1,
	}
	before := c.store.GetState()
	if c.store.Dispatch(ctx, game.AddUser{User: user}) == before {
		return fmt.Errorf("%w: user %s exists", ErrNoEffect, id)
	}
	c.telemetry.Record(ctx, "game.user.add", map[string]any{"user_id": id})
	return nil
}

// SetUserStatusCommand moderates accounts.
type SetUserStatusCommand struct {
	store     game.StateDispatcher
	telemetry Telemetry
}

// NewSetUserStatusCommand creates the command.
func NewSetUserStatusCommand(store game.StateDispatcher, telemetry Telemetry) *SetUserStatusCommand {
	return &SetUserStatusCommand{store: store, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[game.SetUserStatus] = (*SetUserStatusCommand)(nil)

// Execute dispatches SET_USER_STATUS. Banned accounts report ErrNoEffect.
func (c *SetUserStatusCommand) Execute(ctx context.Context, msg game.SetUserStatus) error {
	if c.store == nil {
		return ErrMissingStore
	}
	switch msg.Status {
	case game.UserActive, game.UserInactive, game.UserBanned:
	default:
		return fmt.Errorf("%w: unknown user status %q", ErrInvalidInput, msg.Status)
	}
	before := c.store.GetState()
	if !slices.ContainsFunc(before.Users, func(u game.User) bool { return u.ID == msg.UserID }) {
		return fmt.Errorf("%w: %s", ErrUnknownUser, msg.UserID)
	}
	if c.store.Dispatch(ctx, msg) == before {
		return fmt.Errorf("%w: user %s stays %s", ErrNoEffect, msg.UserID, currentStatus(before, msg.UserID))
	}
	c.telemetry.Record(ctx, "game.user.status", map[string]any{"user_id": msg.UserID, "status": string(msg.Status)})
	return nil
}

func currentStatus(state *game.State, id string) game.UserStatus {
	for _, u := range state.Users {
		if u.ID == id {
			return u.Status
		}
	}
	return ""
}
