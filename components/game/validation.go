package game

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// SchemaValidator compiles action payload schemas once and validates payloads.
type SchemaValidator struct {
	mu       sync.RWMutex
	compiled map[Kind]*jsonschema.Schema
}

// NewSchemaValidator builds a validator backed by jsonschema v5.
func NewSchemaValidator() *SchemaValidator {
	return &SchemaValidator{compiled: make(map[Kind]*jsonschema.Schema)}
}

// Validate checks raw against the schema registered for kind. An empty
// payload is validated as an empty object.
func (v *SchemaValidator) Validate(kind Kind, schema map[string]any, raw []byte) error {
	if len(schema) == 0 {
		return nil
	}
	compiled, err := v.schemaFor(kind, schema)
	if err != nil {
		return err
	}
	var payload any = map[string]any{}
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &payload); err != nil {
			return fmt.Errorf("game: normalize %s payload: %w", kind, err)
		}
	}
	if err := compiled.Validate(payload); err != nil {
		return fmt.Errorf("game: %s payload failed validation: %w", kind, err)
	}
	return nil
}

func (v *SchemaValidator) schemaFor(kind Kind, schema map[string]any) (*jsonschema.Schema, error) {
	v.mu.RLock()
	compiled, ok := v.compiled[kind]
	v.mu.RUnlock()
	if ok {
		return compiled, nil
	}
	data, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("game: marshal schema %s: %w", kind, err)
	}
	compiler := jsonschema.NewCompiler()
	name := string(kind) + ".json"
	if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("game: load schema %s: %w", kind, err)
	}
	compiled, err = compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("game: compile schema %s: %w", kind, err)
	}
	v.mu.Lock()
	v.compiled[kind] = compiled
	v.mu.Unlock()
	return compiled, nil
}

func object(required []string, props map[string]any) map[string]any {
	out := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		out["required"] = required
	}
	return out
}

func nonEmpty() map[string]any {
	return map[string]any{"type": "string", "minLength": 1}
}

func enum(values ...string) map[string]any {
	return map[string]any{"type": "string", "enum": values}
}

// optional accepts the zero value too, which the reducer fills with a default.
func optional(values ...string) map[string]any {
	return enum(append([]string{""}, values...)...)
}

var (
	integer = map[string]any{"type": "integer"}
	number  = map[string]any{"type": "number"}
	text    = map[string]any{"type": "string"}

	schemaEmpty = map[string]any{"type": "object"}

	schemaTalkToNPC      = object([]string{"npc_id"}, map[string]any{"npc_id": nonEmpty()})
	schemaDismissNPC     = object([]string{"npc_id"}, map[string]any{"npc_id": nonEmpty()})
	schemaChangeLocation = object([]string{"location_id"}, map[string]any{"location_id": nonEmpty()})

	schemaGainResources = object([]string{"delta"}, map[string]any{
		"delta": object(nil, map[string]any{
			"coins":      integer,
			"gems":       integer,
			"energy":     integer,
			"mana":       integer,
			"reputation": integer,
		}),
	})
	schemaGainXP      = object([]string{"amount"}, map[string]any{"amount": integer})
	schemaLevelUpStat = object([]string{"stat"}, map[string]any{
		"stat": enum(string(StatStrength), string(StatIntelligence), string(StatAgility), string(StatLeadership)),
	})

	schemaUpdateSystemStats = object([]string{"delta"}, map[string]any{
		"delta": object(nil, map[string]any{
			"cpu":          number,
			"memory":       number,
			"network":      number,
			"active_users": integer,
		}),
	})
	schemaUpdateServerMetrics = object([]string{"deltas"}, map[string]any{
		"deltas": map[string]any{
			"type": "array",
			"items": object([]string{"server_id"}, map[string]any{
				"server_id": nonEmpty(),
				"cpu":       number,
				"memory":    number,
			}),
		},
	})
	schemaServerAction = object([]string{"server_id", "op"}, map[string]any{
		"server_id": nonEmpty(),
		"op":        enum(string(ServerRestart), string(ServerOptimize), string(ServerShutdown)),
	})

	schemaAddTask = object([]string{"task"}, map[string]any{
		"task": object([]string{"id", "title"}, map[string]any{
			"id":        nonEmpty(),
			"title":     nonEmpty(),
			"status":    optional(string(TaskTodo), string(TaskProgress), string(TaskDone)),
			"priority":  optional(string(PriorityLow), string(PriorityMedium), string(PriorityHigh)),
			"xp_reward": map[string]any{"type": "integer", "minimum": 0},
			"rewarded":  map[string]any{"const": false},
		}),
	})
	schemaMoveTask = object([]string{"task_id", "status"}, map[string]any{
		"task_id": nonEmpty(),
		"status":  enum(string(TaskTodo), string(TaskProgress), string(TaskDone)),
	})
	schemaCompleteTask = object([]string{"task_id"}, map[string]any{"task_id": nonEmpty()})

	schemaAddEvent = object([]string{"event"}, map[string]any{
		"event": object([]string{"id", "title"}, map[string]any{
			"id":        nonEmpty(),
			"title":     nonEmpty(),
			"date":      text,
			"time":      text,
			"type":      optional(string(EventMeeting), string(EventDeadline), string(EventMaintenance), string(EventGeneric)),
			"xp_reward": map[string]any{"type": "integer", "minimum": 0},
		}),
	})
	schemaCompleteEvent = object([]string{"event_id"}, map[string]any{"event_id": nonEmpty()})

	schemaAddUser = object([]string{"user"}, map[string]any{
		"user": object([]string{"id", "name"}, map[string]any{
			"id":     nonEmpty(),
			"name":   nonEmpty(),
			"email":  text,
			"role":   text,
			"status": optional(string(UserActive), string(UserInactive), string(UserBanned)),
		}),
	})
	schemaSetUserStatus = object([]string{"user_id", "status"}, map[string]any{
		"user_id": nonEmpty(),
		"status":  enum(string(UserActive), string(UserInactive), string(UserBanned)),
	})

	schemaAdvanceQuest = object([]string{"quest_id", "amount"}, map[string]any{
		"quest_id": nonEmpty(),
		"amount":   map[string]any{"type": "integer", "minimum": 1},
	})
	schemaCompleteQuest = object([]string{"quest_id"}, map[string]any{"quest_id": nonEmpty()})
	schemaPurchaseItem  = object([]string{"item_id"}, map[string]any{"item_id": nonEmpty()})
	schemaStartBattle   = object([]string{"enemy_id"}, map[string]any{"enemy_id": nonEmpty()})
	schemaBattleRound   = object([]string{"move"}, map[string]any{
		"move":          enum(string(MoveAttack), string(MoveSpecial), string(MoveDefend)),
		"player_damage": map[string]any{"type": "integer", "minimum": 0},
	})
	schemaRefreshAnalytics = object([]string{"data"}, map[string]any{
		"data": object(nil, map[string]any{
			"daily_users": map[string]any{"type": "array"},
			"revenue":     map[string]any{"type": "array"},
			"performance": map[string]any{"type": "array"},
		}),
	})
)
