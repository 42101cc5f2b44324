package game

import "context"

// ActivityContext names who caused a dispatch. Transports fill it from
// request headers and the store copies it onto activity events.
type ActivityContext struct {
	ActorID  string
	UserID   string
	TenantID string
}

// IsZero reports whether no identifier is set.
func (a ActivityContext) IsZero() bool {
	return a == ActivityContext{}
}

// ActorOr returns ActorID, or fallback when no actor was attached.
func (a ActivityContext) ActorOr(fallback string) string {
	if a.ActorID == "" {
		return fallback
	}
	return a.ActorID
}

type activityKey struct{}

// ContextWithActivity attaches meta to ctx. A zero meta leaves ctx as is.
func ContextWithActivity(ctx context.Context, meta ActivityContext) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if meta.IsZero() {
		return ctx
	}
	return context.WithValue(ctx, activityKey{}, meta)
}

// ActivityFrom returns the identifiers attached to ctx, if any.
func ActivityFrom(ctx context.Context) ActivityContext {
	if ctx == nil {
		return ActivityContext{}
	}
	meta, _ := ctx.Value(activityKey{}).(ActivityContext)
	return meta
}
