package game

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/goliatone/go-gamedash/pkg/activity"
)

var (
	// ErrStoreClosed is reported by TryDispatch after Close.
	ErrStoreClosed = errors.New("game: store is closed")
	errNilAction   = errors.New("game: action is required")
)

// Change describes one applied transition.
type Change struct {
	Version uint64
	Action  Action
	Prev    *State
	Next    *State
}

// Listener observes applied transitions. Listeners run synchronously inside
// Dispatch and must not dispatch themselves.
type Listener func(ctx context.Context, change Change)

// Options configures the Store. Every collaborator is optional.
type Options struct {
	Seed           *State
	Reducer        Reducer
	Telemetry      Telemetry
	Logger         *slog.Logger
	ActivityHooks  activity.Hooks
	ActivityConfig activity.Config
}

// Store holds the current snapshot and serialises every transition.
type Store struct {
	opts     Options
	activity *activity.Emitter

	mu      sync.Mutex
	state   atomic.Pointer[State]
	version atomic.Uint64
	closed  atomic.Bool

	lmu       sync.Mutex
	nextID    int
	listeners []subscription
}

type subscription struct {
	id int
	fn Listener
}

// NewStore builds a Store with safe defaults. A nil seed starts from DefaultSeed.
func NewStore(opts Options) *Store {
	if opts.Seed == nil {
		opts.Seed = DefaultSeed()
	}
	if opts.Reducer == nil {
		opts.Reducer = Reduce
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	s := &Store{
		opts:     opts,
		activity: activity.NewEmitter(opts.ActivityHooks, opts.ActivityConfig),
	}
	s.state.Store(opts.Seed)
	return s
}

// GetState returns the current immutable snapshot.
func (s *Store) GetState() *State {
	return s.state.Load()
}

// Version counts applied transitions. No-op dispatches do not advance it.
func (s *Store) Version() uint64 {
	return s.version.Load()
}

// Dispatch applies action and returns the resulting snapshot. Listeners are
// notified before it returns, and only when the snapshot changed. After Close
// it logs and returns the last snapshot.
func (s *Store) Dispatch(ctx context.Context, action Action) *State {
	next, _ := s.TryDispatch(ctx, action)
	return next
}

// TryDispatch is Dispatch with the reason for skipping reported as an error.
// A reducer no-op is not an error.
func (s *Store) TryDispatch(ctx context.Context, action Action) (*State, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if action == nil {
		return s.GetState(), errNilAction
	}
	if s.closed.Load() {
		s.opts.Logger.Warn("dispatch after close", "kind", action.Kind())
		return s.GetState(), ErrStoreClosed
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed.Load() {
		s.opts.Logger.Warn("dispatch after close", "kind", action.Kind())
		return s.GetState(), ErrStoreClosed
	}

	prev := s.state.Load()
	next := s.opts.Reducer(prev, action)
	if next == prev || next == nil {
		s.opts.Telemetry.Record(ctx, "game.action.noop", map[string]any{"kind": string(action.Kind())})
		return prev, nil
	}
	s.state.Store(next)
	version := s.version.Add(1)
	change := Change{Version: version, Action: action, Prev: prev, Next: next}

	for _, sub := range s.snapshotListeners() {
		sub.fn(ctx, change)
	}
	s.opts.Telemetry.Record(ctx, "game.action.apply", map[string]any{
		"kind":    string(action.Kind()),
		"version": version,
	})
	s.emitActivity(ctx, change)
	return next, nil
}

// Subscribe registers fn and returns a func that removes it. Listeners are
// called in subscription order.
func (s *Store) Subscribe(fn Listener) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	s.lmu.Lock()
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, subscription{id: id, fn: fn})
	s.lmu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.lmu.Lock()
			defer s.lmu.Unlock()
			for i, sub := range s.listeners {
				if sub.id == id {
					s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

// Close stops the store from accepting dispatches and drops all listeners.
func (s *Store) Close() {
	if s.closed.Swap(true) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lmu.Lock()
	s.listeners = nil
	s.lmu.Unlock()
	s.opts.Logger.Debug("store closed", "version", s.version.Load())
}

// Closed reports whether Close has been called.
func (s *Store) Closed() bool {
	return s.closed.Load()
}

func (s *Store) snapshotListeners() []subscription {
	s.lmu.Lock()
	defer s.lmu.Unlock()
	return append([]subscription(nil), s.listeners...)
}

func (s *Store) emitActivity(ctx context.Context, change Change) {
	if !s.activity.Enabled() {
		return
	}
	meta := ActivityFrom(ctx)
	if change.Next != nil {
		meta.ActorID = meta.ActorOr(change.Next.Player.ID)
	}
	objectType, objectID := describeAction(change.Action)
	err := s.activity.Emit(ctx, activity.Event{
		Verb:           ActivityVerb(change.Action.Kind()),
		ActorID:        meta.ActorID,
		UserID:         meta.UserID,
		TenantID:       meta.TenantID,
		ObjectType:     objectType,
		ObjectID:       objectID,
		DefinitionCode: string(change.Action.Kind()),
		Metadata: map[string]any{
			"version": change.Version,
		},
	})
	if err != nil {
		s.opts.Logger.Warn("activity emit failed", "kind", change.Action.Kind(), "error", err)
	}
}

// ActivityVerb is the activity verb recorded for an action kind.
func ActivityVerb(kind Kind) string {
	return "game." + strings.ToLower(string(kind))
}

func describeAction(action Action) (objectType, objectID string) {
	switch a := action.(type) {
	case TalkToNPC:
		return "npc", a.NPCID
	case DismissNPC:
		return "npc", a.NPCID
	case ChangeLocation:
		return "location", a.LocationID
	case GainResources, LevelUpStat, GainXP:
		return "player", ""
	case UpdateSystemStats:
		return "system_stats", ""
	case UpdateServerMetrics:
		return "server", ""
	case ServerAction:
		return "server", a.ServerID
	case AddTask:
		return "task", a.Task.ID
	case MoveTask:
		return "task", a.TaskID
	case CompleteTask:
		return "task", a.TaskID
	case AddEvent:
		return "calendar_event", a.Event.ID
	case CompleteEvent:
		return "calendar_event", a.EventID
	case AddUser:
		return "user", a.User.ID
	case SetUserStatus:
		return "user", a.UserID
	case AdvanceQuest:
		return "quest", a.QuestID
	case CompleteQuest:
		return "quest", a.QuestID
	case PurchaseItem:
		return "shop_item", a.ItemID
	case StartBattle:
		return "battle", a.EnemyID
	case BattleRound:
		return "battle", ""
	case RefreshAnalytics:
		return "analytics", ""
	default:
		return "game", ""
	}
}
