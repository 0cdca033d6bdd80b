// Package authctx carries the authenticated operator through request
// contexts.
package authctx

import (
	"context"

	"github.com/bwmarrin/snowflake"
	obscontext "github.com/smallbiznis/backoffice/internal/observability/context"
)

// Actor is the operator resolved from a session.
type Actor struct {
	UserID    snowflake.ID
	SessionID snowflake.ID
	Email     string
}

type actorKey struct{}

// WithActor stores the actor and tags the context for log correlation.
func WithActor(ctx context.Context, actor Actor) context.Context {
	ctx = context.WithValue(ctx, actorKey{}, actor)
	return obscontext.WithActor(ctx, "user", actor.UserID.String())
}

// ActorFromContext returns the actor when the request carries a valid
// session.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	if ctx == nil {
		return Actor{}, false
	}
	actor, ok := ctx.Value(actorKey{}).(Actor)
	if !ok || actor.UserID == 0 {
		return Actor{}, false
	}
	return actor, true
}

// Client describes the caller's network origin.
type Client struct {
	IPAddress string
	UserAgent string
}

type clientKey struct{}

func WithClient(ctx context.Context, client Client) context.Context {
	return context.WithValue(ctx, clientKey{}, client)
}

func ClientFromContext(ctx context.Context) (Client, bool) {
	if ctx == nil {
		return Client{}, false
	}
	client, ok := ctx.Value(clientKey{}).(Client)
	return client, ok
}
