package journal

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-gamedash/components/game"
)

// Digest fingerprints a snapshot by hashing its JSON form.
func Digest(state *game.State) (string, error) {
	b, err := json.Marshal(state)
	if err != nil {
		return "", fmt.Errorf("journal: digest: %w", err)
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:16]), nil
}

// Session groups the entries one store instance wrote.
type Session struct {
	ID      string
	Entries []Entry
}

// SplitSessions groups entries by session id in order of first appearance.
// Entries keep their relative order within a session.
func SplitSessions(entries []Entry) []Session {
	var out []Session
	index := map[string]int{}
	for _, entry := range entries {
		i, ok := index[entry.Session]
		if !ok {
			i = len(out)
			index[entry.Session] = i
			out = append(out, Session{ID: entry.Session})
		}
		out[i].Entries = append(out[i].Entries, entry)
	}
	return out
}

// Result summarises a replay.
type Result struct {
	State    *game.State
	Session  string
	Sessions int
	Applied  int
	Verified int
	LastSeq  uint64
}

// Replay rebuilds every session from seed and returns the state of the last
// one. Each session starts over from seed since every store does.
func Replay(seed *game.State, entries []Entry, registry *game.ActionRegistry) (Result, error) {
	if seed == nil {
		return Result{}, fmt.Errorf("journal: replay seed is nil")
	}
	sessions := SplitSessions(entries)
	if len(sessions) == 0 {
		return Result{State: seed}, nil
	}
	var (
		res Result
		err error
	)
	for _, session := range sessions {
		res, err = ReplaySession(seed, session, registry)
		if err != nil {
			return res, err
		}
	}
	res.Sessions = len(sessions)
	return res, nil
}

// ReplaySession folds one session over seed with the pure reducer. Entries
// must be in sequence order; digests, when present, must match.
func ReplaySession(seed *game.State, session Session, registry *game.ActionRegistry) (Result, error) {
	if seed == nil {
		return Result{}, fmt.Errorf("journal: replay seed is nil")
	}
	if registry == nil {
		registry = game.DefaultActionRegistry()
	}
	res := Result{State: seed, Session: session.ID, Sessions: 1}
	for _, entry := range session.Entries {
		if res.LastSeq != 0 && entry.Seq <= res.LastSeq {
			return res, fmt.Errorf("journal: session %s: entry %d out of order after %d", session.ID, entry.Seq, res.LastSeq)
		}
		action, err := registry.Decode(game.Envelope{Kind: entry.Kind, Payload: entry.Payload})
		if err != nil {
			return res, fmt.Errorf("journal: session %s: entry %d: %w", session.ID, entry.Seq, err)
		}
		res.State = game.Reduce(res.State, action)
		res.Applied++
		res.LastSeq = entry.Seq
		if entry.Digest == "" {
			continue
		}
		got, err := Digest(res.State)
		if err != nil {
			return res, err
		}
		if got != entry.Digest {
			return res, fmt.Errorf("journal: digest mismatch at entry %d: want=%s got=%s", entry.Seq, entry.Digest, got)
		}
		res.Verified++
	}
	return res, nil
}

// FindSession returns the session with id.
func FindSession(entries []Entry, id string) (Session, bool) {
	for _, session := range SplitSessions(entries) {
		if session.ID == id {
			return session, true
		}
	}
	return Session{}, false
}
