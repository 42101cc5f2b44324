package journal

import (
	"context"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/goliatone/go-gamedash/components/game"
)

// ListenerOptions configures Listener.
type ListenerOptions struct {
	// WithDigest records a state fingerprint on every entry.
	WithDigest bool
	// Session overrides the generated session id.
	Session    string
	Logger     *slog.Logger
	Now        func() time.Time
}

// Listener returns a store listener that journals every applied action.
// Write failures are logged and never block the store.
func Listener(w *Writer, opts ListenerOptions) game.Listener {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	session := opts.Session
	if session == "" {
		session = ulid.Make().String()
	}
	return func(ctx context.Context, change game.Change) {
		env, err := game.EncodeAction(change.Action)
		if err != nil {
			logger.Warn("journal encode failed", "version", change.Version, "error", err)
			return
		}
		entry := Entry{
			Session: session,
			Seq:     change.Version,
			At:      now().UTC(),
			Kind:    env.Kind,
			Payload: env.Payload,
			ActorID: game.ActivityFrom(ctx).ActorID,
		}
		if opts.WithDigest {
			if entry.Digest, err = Digest(change.Next); err != nil {
				logger.Warn("journal digest failed", "version", change.Version, "error", err)
			}
		}
		if err := w.Append(entry); err != nil {
			logger.Error("journal append failed", "version", change.Version, "kind", env.Kind, "error", err)
		}
	}
}
