package journal

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goliatone/go-gamedash/components/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterRotatesHourly(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, "")
	at := time.Date(2024, 1, 20, 9, 59, 0, 0, time.UTC)

	require.NoError(t, w.Append(Entry{Seq: 1, At: at, Kind: "TOGGLE_RETRO"}))
	require.NoError(t, w.Append(Entry{Seq: 2, At: at.Add(30 * time.Second), Kind: "TOGGLE_RETRO"}))
	require.NoError(t, w.Append(Entry{Seq: 3, At: at.Add(2 * time.Minute), Kind: "TOGGLE_RETRO"}))
	require.NoError(t, w.Close())

	files, err := ListFiles(dir, "")
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "actions-2024-01-20-09.jsonl.zst", filepath.Base(files[0]))
	assert.Equal(t, "actions-2024-01-20-10.jsonl.zst", filepath.Base(files[1]))

	entries, err := ReadDir(dir, "")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for i, entry := range entries {
		assert.Equal(t, uint64(i+1), entry.Seq)
	}
}

func TestWriterAppendsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	at := time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC)

	first := NewWriter(dir, "game")
	require.NoError(t, first.Append(Entry{Seq: 1, At: at, Kind: "TOGGLE_RETRO"}))
	require.NoError(t, first.Close())

	second := NewWriter(dir, "game")
	require.NoError(t, second.Append(Entry{Seq: 2, At: at.Add(time.Minute), Kind: "TOGGLE_RETRO"}))
	require.NoError(t, second.Close())

	entries, err := ReadDir(dir, "game")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, uint64(2), entries[1].Seq)
}

func TestListFilesIgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other-2024-01-20-09.jsonl.zst"), nil, 0o644))
	files, err := ListFiles(dir, "actions")
	require.NoError(t, err)
	assert.Empty(t, files)

	_, err = ListFiles(filepath.Join(dir, "missing"), "")
	require.Error(t, err)
}

func TestListenerJournalsAndReplayMatchesStore(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, "")
	store := game.NewStore(game.Options{})
	cancel := store.Subscribe(Listener(w, ListenerOptions{WithDigest: true}))
	defer cancel()

	ctx := game.ContextWithActivity(context.Background(), game.ActivityContext{ActorID: "admin-1"})
	store.Dispatch(ctx, game.ChangeLocation{LocationID: "shop"})
	store.Dispatch(ctx, game.PurchaseItem{ItemID: "neural-sword"})
	store.Dispatch(ctx, game.CompleteTask{TaskID: "1"})
	store.Dispatch(ctx, game.ToggleRetro{})
	store.Dispatch(ctx, game.ChangeLocation{LocationID: "nowhere"})
	require.NoError(t, w.Close())

	entries, err := ReadDir(dir, "")
	require.NoError(t, err)
	require.Len(t, entries, 4)
	assert.Equal(t, "admin-1", entries[0].ActorID)
	assert.Equal(t, "CHANGE_LOCATION", entries[0].Kind)
	assert.NotEmpty(t, entries[0].Digest)

	res, err := Replay(game.DefaultSeed(), entries, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Applied)
	assert.Equal(t, 4, res.Verified)
	assert.Equal(t, uint64(4), res.LastSeq)

	want, err := Digest(store.GetState())
	require.NoError(t, err)
	got, err := Digest(res.State)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestReplayRejectsDigestMismatch(t *testing.T) {
	entries := []Entry{{Seq: 1, Kind: "TOGGLE_RETRO", Digest: "deadbeef"}}
	_, err := Replay(game.DefaultSeed(), entries, nil)
	require.ErrorContains(t, err, "digest mismatch at entry 1")
}

func TestReplayRejectsOutOfOrder(t *testing.T) {
	entries := []Entry{{Seq: 2, Kind: "TOGGLE_RETRO"}, {Seq: 2, Kind: "TOGGLE_RETRO"}}
	res, err := Replay(game.DefaultSeed(), entries, nil)
	require.ErrorContains(t, err, "out of order")
	assert.Equal(t, 1, res.Applied)
}

func TestReplayRejectsBadPayload(t *testing.T) {
	entries := []Entry{{Seq: 1, Kind: "CHANGE_LOCATION", Payload: []byte(`{}`)}}
	_, err := Replay(game.DefaultSeed(), entries, nil)
	require.ErrorContains(t, err, "entry 1")

	_, err = Replay(nil, nil, nil)
	require.Error(t, err)
}

func TestReplayRestartsFromSeedPerSession(t *testing.T) {
	dir := t.TempDir()
	run := func(session string, xp int) *game.State {
		w := NewWriter(dir, "")
		store := game.NewStore(game.Options{})
		cancel := store.Subscribe(Listener(w, ListenerOptions{WithDigest: true, Session: session}))
		store.Dispatch(context.Background(), game.ToggleRetro{})
		store.Dispatch(context.Background(), game.GainXP{Amount: xp})
		cancel()
		require.NoError(t, w.Close())
		return store.GetState()
	}
	first := run("first", 10)
	second := run("second", 25)

	entries, err := ReadDir(dir, "")
	require.NoError(t, err)
	require.Len(t, entries, 4)

	sessions := SplitSessions(entries)
	require.Len(t, sessions, 2)
	assert.Equal(t, "first", sessions[0].ID)
	assert.Len(t, sessions[1].Entries, 2)

	res, err := Replay(game.DefaultSeed(), entries, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Sessions)
	assert.Equal(t, "second", res.Session)
	assert.Equal(t, 2, res.Verified)
	assert.Equal(t, second.Player.XP, res.State.Player.XP)

	session, ok := FindSession(entries, "first")
	require.True(t, ok)
	res, err = ReplaySession(game.DefaultSeed(), session, nil)
	require.NoError(t, err)
	assert.Equal(t, first.Player.XP, res.State.Player.XP)

	_, ok = FindSession(entries, "third")
	assert.False(t, ok)
}

func TestListenerGeneratesSessionID(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, "")
	store := game.NewStore(game.Options{})
	store.Subscribe(Listener(w, ListenerOptions{}))
	store.Dispatch(context.Background(), game.ToggleRetro{})
	store.Dispatch(context.Background(), game.ToggleRetro{})
	require.NoError(t, w.Close())

	entries, err := ReadDir(dir, "")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Len(t, entries[0].Session, 26)
	assert.Equal(t, entries[0].Session, entries[1].Session)
}
