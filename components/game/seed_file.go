package game

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	seedVersionV1 = "1"
	// SeedVersion exposes the current seed file format version for tooling.
	SeedVersion = seedVersionV1
)

// SeedDocument models a YAML seed file holding a bootstrap snapshot.
type SeedDocument struct {
	Version string `json:"version" yaml:"version"`
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
	State   State  `json:"state" yaml:"state"`
	Source  string `json:"-" yaml:"-"`
}

// ReadSeed loads and validates a seed file from disk.
func ReadSeed(path string) (*SeedDocument, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("game: open seed %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeSeed(f)
	if err != nil {
		return nil, fmt.Errorf("game: decode seed %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodeSeed reads a seed document from any reader.
func DecodeSeed(r io.Reader) (*SeedDocument, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var doc SeedDocument
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("game: seed is empty")
		}
		return nil, fmt.Errorf("game: parse seed: %w", err)
	}
	doc.applyDefaults()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// EncodeSeed writes state as a seed document.
func EncodeSeed(w io.Writer, name string, state *State) error {
	if state == nil {
		return fmt.Errorf("game: seed state is nil")
	}
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	doc := SeedDocument{Version: seedVersionV1, Name: name, State: *state}
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("game: encode seed: %w", err)
	}
	return encoder.Close()
}

// Snapshot returns a copy of the document state ready for NewStore.
func (doc *SeedDocument) Snapshot() *State {
	state := doc.State
	return &state
}

// Validate ensures the document version is supported and its state is coherent.
func (doc *SeedDocument) Validate() error {
	if doc.Version != seedVersionV1 {
		return fmt.Errorf("game: unsupported seed version %q", doc.Version)
	}
	return ValidateState(&doc.State)
}

func (doc *SeedDocument) applyDefaults() {
	if doc.Version == "" {
		doc.Version = seedVersionV1
	}
	if doc.State.Owned == nil {
		doc.State.Owned = map[string]bool{}
	}
}

// ValidateState checks the invariants a bootstrap snapshot must hold.
func ValidateState(state *State) error {
	if state == nil {
		return fmt.Errorf("game: state is nil")
	}
	p := state.Player
	for name, v := range map[string]int{"health": p.Health, "mana": p.Mana, "energy": p.Energy} {
		if v < 0 || v > 100 {
			return fmt.Errorf("game: player %s %d outside [0,100]", name, v)
		}
	}
	if err := uniqueIDs("npc", state.NPCs, func(n NPC) string { return n.ID }); err != nil {
		return err
	}
	for _, npc := range state.NPCs {
		if len(npc.Dialogue) == 0 && npc.CurrentDialogue != 0 {
			return fmt.Errorf("game: npc %s has no dialogue but index %d", npc.ID, npc.CurrentDialogue)
		}
		if len(npc.Dialogue) > 0 && (npc.CurrentDialogue < 0 || npc.CurrentDialogue >= len(npc.Dialogue)) {
			return fmt.Errorf("game: npc %s dialogue index %d out of range", npc.ID, npc.CurrentDialogue)
		}
	}
	if err := uniqueIDs("quest", state.Quests, func(q Quest) string { return q.ID }); err != nil {
		return err
	}
	for _, q := range state.Quests {
		if q.Progress < 0 || q.Progress > q.MaxProgress {
			return fmt.Errorf("game: quest %s progress %d exceeds max %d", q.ID, q.Progress, q.MaxProgress)
		}
	}
	if err := uniqueIDs("location", state.WorldMap, func(l WorldLocation) string { return l.ID }); err != nil {
		return err
	}
	if err := uniqueIDs("user", state.Users, func(u User) string { return u.ID }); err != nil {
		return err
	}
	for _, u := range state.Users {
		if !validUserStatus(u.Status) {
			return fmt.Errorf("game: user %s has invalid status %q", u.ID, u.Status)
		}
	}
	if err := uniqueIDs("task", state.Tasks, func(t Task) string { return t.ID }); err != nil {
		return err
	}
	for _, t := range state.Tasks {
		if !validTaskStatus(t.Status) {
			return fmt.Errorf("game: task %s has invalid status %q", t.ID, t.Status)
		}
	}
	if err := uniqueIDs("event", state.Events, func(e CalendarEvent) string { return e.ID }); err != nil {
		return err
	}
	if err := uniqueIDs("shop item", state.Shop, func(i ShopItem) string { return i.ID }); err != nil {
		return err
	}
	if err := uniqueIDs("server", state.Servers, func(s Server) string { return s.ID }); err != nil {
		return err
	}
	if err := uniqueIDs("enemy", state.Enemies, func(e Enemy) string { return e.ID }); err != nil {
		return err
	}
	s := state.SystemStats
	for name, v := range map[string]float64{"cpu": s.CPUUsage, "memory": s.MemoryUsage, "network": s.NetworkTraffic} {
		if v < 0 || v > 100 {
			return fmt.Errorf("game: system %s %.2f outside [0,100]", name, v)
		}
	}
	return nil
}

func uniqueIDs[T any](label string, items []T, id func(T) string) error {
	seen := make(map[string]struct{}, len(items))
	for idx, item := range items {
		key := id(item)
		if key == "" {
			return fmt.Errorf("game: %s at index %d is missing id", label, idx)
		}
		if _, exists := seen[key]; exists {
			return fmt.Errorf("game: duplicate %s id %s", label, key)
		}
		seen[key] = struct{}{}
	}
	return nil
}
