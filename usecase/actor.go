package usecase

import "context"

type actorKey struct{}

// DefaultActor is the rate limiting key used when a call carries no identity.
const DefaultActor = "anonymous"

// WithActor records who is calling, so per-caller limits can key on it.
func WithActor(ctx context.Context, actor string) context.Context {
	if actor == "" {
		return ctx
	}
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFrom returns the caller recorded by WithActor, or DefaultActor.
func ActorFrom(ctx context.Context) string {
	if ctx == nil {
		return DefaultActor
	}
	if actor, ok := ctx.Value(actorKey{}).(string); ok && actor != "" {
		return actor
	}
	return DefaultActor
}
