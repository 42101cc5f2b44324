package commands

import (
	"context"
	"fmt"
	"strings"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-gamedash/components/game"
	"github.com/google/uuid"
)

// AddTaskInput is the payload of the new task form.
type AddTaskInput struct {
	ID          string        `json:"id,omitempty"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Priority    game.Priority `json:"priority"`
	Assignee    string        `json:"assignee"`
	DueDate     string        `json:"due_date"`
}

// TaskXPReward is the XP a task of the given priority pays on completion.
func TaskXPReward(p game.Priority) int {
	switch p {
	case game.PriorityHigh:
		return 100
	case game.PriorityMedium, "":
		return 75
	default:
		return 50
	}
}

// AddTaskCommand creates kanban tasks.
type AddTaskCommand struct {
	store     game.StateDispatcher
	telemetry Telemetry
	newID     func() string
}

// NewAddTaskCommand creates the command.
func NewAddTaskCommand(store game.StateDispatcher, telemetry Telemetry) *AddTaskCommand {
	return &AddTaskCommand{store: store, telemetry: normalizeTelemetry(telemetry), newID: uuid.NewString}
}

var _ gocommand.Commander[AddTaskInput] = (*AddTaskCommand)(nil)

// Build turns msg into the task that Execute would dispatch.
func (c *AddTaskCommand) Build(msg AddTaskInput) (game.Task, error) {
	title := strings.TrimSpace(msg.Title)
	if title == "" {
		return game.Task{}, fmt.Errorf("%w: task title is required", ErrInvalidInput)
	}
	switch msg.Priority {
	case "", game.PriorityLow, game.PriorityMedium, game.PriorityHigh:
	default:
		return game.Task{}, fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, msg.Priority)
	}
	priority := msg.Priority
	if priority == "" {
		priority = game.PriorityMedium
	}
	id := msg.ID
	if id == "" {
		id = c.newID()
	}
	assignee := strings.TrimSpace(msg.Assignee)
	if assignee == "" && c.store != nil {
		assignee = c.store.GetState().Player.Name
	}
	return game.Task{
		ID:          id,
		Title:       title,
		Description: msg.Description,
		Status:      game.TaskTodo,
		Priority:    priority,
		Assignee:    assignee,
		DueDate:     msg.DueDate,
		XPReward:    TaskXPReward(priority),
	}, nil
}

// Execute dispatches ADD_TASK.
func (c *AddTaskCommand) Execute(ctx context.Context, msg AddTaskInput) error {
	if c.store == nil {
		return ErrMissingStore
	}
	task, err := c.Build(msg)
	if err != nil {
		return err
	}
	before := c.store.GetState()
	if c.store.Dispatch(ctx, game.AddTask{Task: task}) == before {
		return fmt.Errorf("%w: task %s exists", ErrNoEffect, task.ID)
	}
	c.telemetry.Record(ctx, "game.task.add", map[string]any{"task_id": task.ID, "priority": string(task.Priority)})
	return nil
}
