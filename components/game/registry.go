package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/ettle/strcase"
)

var errMissingKind = errors.New("game: action kind is required")

// Envelope is the transport form of an action.
type Envelope struct {
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type actionSpec struct {
	kind   Kind
	schema map[string]any
	decode func(raw []byte) (Action, error)
}

// ActionRegistry maps action kinds to their payload schema and decoder.
type ActionRegistry struct {
	mu        sync.RWMutex
	specs     map[Kind]actionSpec
	validator *SchemaValidator
}

// NewActionRegistry returns a registry with every built-in action registered.
func NewActionRegistry() *ActionRegistry {
	r := &ActionRegistry{
		specs:     make(map[Kind]actionSpec),
		validator: NewSchemaValidator(),
	}
	registerAction[TalkToNPC](r, schemaTalkToNPC)
	registerAction[DismissNPC](r, schemaDismissNPC)
	registerAction[ChangeLocation](r, schemaChangeLocation)
	registerAction[GainResources](r, schemaGainResources)
	registerAction[GainXP](r, schemaGainXP)
	registerAction[LevelUpStat](r, schemaLevelUpStat)
	registerAction[UpdateSystemStats](r, schemaUpdateSystemStats)
	registerAction[UpdateServerMetrics](r, schemaUpdateServerMetrics)
	registerAction[ServerAction](r, schemaServerAction)
	registerAction[ToggleRetro](r, schemaEmpty)
	registerAction[AdvanceTutorial](r, schemaEmpty)
	registerAction[AddTask](r, schemaAddTask)
	registerAction[MoveTask](r, schemaMoveTask)
	registerAction[CompleteTask](r, schemaCompleteTask)
	registerAction[AddEvent](r, schemaAddEvent)
	registerAction[CompleteEvent](r, schemaCompleteEvent)
	registerAction[AddUser](r, schemaAddUser)
	registerAction[SetUserStatus](r, schemaSetUserStatus)
	registerAction[AdvanceQuest](r, schemaAdvanceQuest)
	registerAction[CompleteQuest](r, schemaCompleteQuest)
	registerAction[PurchaseItem](r, schemaPurchaseItem)
	registerAction[StartBattle](r, schemaStartBattle)
	registerAction[BattleRound](r, schemaBattleRound)
	registerAction[RefreshAnalytics](r, schemaRefreshAnalytics)
	return r
}

var (
	defaultRegistryOnce sync.Once
	defaultRegistry     *ActionRegistry
)

// DefaultActionRegistry returns a shared registry of the built-in actions.
func DefaultActionRegistry() *ActionRegistry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewActionRegistry()
	})
	return defaultRegistry
}

func registerAction[T Action](r *ActionRegistry, schema map[string]any) {
	var zero T
	kind := zero.Kind()
	r.specs[kind] = actionSpec{
		kind:   kind,
		schema: schema,
		decode: func(raw []byte) (Action, error) {
			var out T
			if len(raw) == 0 {
				return out, nil
			}
			if err := json.Unmarshal(raw, &out); err != nil {
				return nil, fmt.Errorf("game: decode %s payload: %w", kind, err)
			}
			return out, nil
		},
	}
}

// NormalizeKind maps any case style (talk-to-npc, talkToNpc, TALK_TO_NPC) to
// the canonical kind.
func NormalizeKind(raw string) Kind {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	return Kind(strcase.ToSNAKE(raw))
}

// Kinds lists the registered kinds in sorted order.
func (r *ActionRegistry) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Kind, 0, len(r.specs))
	for kind := range r.specs {
		out = append(out, kind)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Known reports whether raw names a registered kind.
func (r *ActionRegistry) Known(raw string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.specs[NormalizeKind(raw)]
	return ok
}

// Schema returns the payload schema for kind.
func (r *ActionRegistry) Schema(kind Kind) (map[string]any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	spec, ok := r.specs[NormalizeKind(string(kind))]
	return spec.schema, ok
}

// Decode validates the envelope payload and builds the action. Unrecognised
// kinds decode to UnknownAction so older builds tolerate newer producers.
func (r *ActionRegistry) Decode(env Envelope) (Action, error) {
	if strings.TrimSpace(env.Kind) == "" {
		return nil, errMissingKind
	}
	kind := NormalizeKind(env.Kind)
	r.mu.RLock()
	spec, ok := r.specs[kind]
	r.mu.RUnlock()
	if !ok {
		unknown := UnknownAction{Type: string(kind)}
		if len(env.Payload) > 0 {
			_ = json.Unmarshal(env.Payload, &unknown.Payload)
		}
		return unknown, nil
	}
	if err := r.validator.Validate(spec.kind, spec.schema, env.Payload); err != nil {
		return nil, err
	}
	return spec.decode(env.Payload)
}

// DecodeJSON decodes a raw envelope document.
func (r *ActionRegistry) DecodeJSON(data []byte) (Action, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("game: parse action envelope: %w", err)
	}
	return r.Decode(env)
}

// EncodeAction builds the transport envelope for action.
func EncodeAction(action Action) (Envelope, error) {
	if action == nil {
		return Envelope{}, errNilAction
	}
	var (
		payload []byte
		err     error
	)
	switch a := action.(type) {
	case UnknownAction:
		if len(a.Payload) > 0 {
			payload, err = json.Marshal(a.Payload)
		}
	default:
		payload, err = json.Marshal(action)
	}
	if err != nil {
		return Envelope{}, fmt.Errorf("game: encode %s payload: %w", action.Kind(), err)
	}
	if string(payload) == "{}" {
		payload = nil
	}
	return Envelope{Kind: string(action.Kind()), Payload: payload}, nil
}
