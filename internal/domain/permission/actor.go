package permission

import (
	"context"

	"ticketapp/internal/domain/user"
	"ticketapp/internal/shared/authorization"
)

// Actor is the authenticated user a request runs on behalf of.
type Actor struct {
	ID       uint
	Username string
	Role     authorization.UserRole
}

func ActorFromUser(u *user.User) Actor {
	if u == nil {
		return Actor{}
	}
	return Actor{ID: u.ID, Username: u.Username, Role: u.Role}
}

func (a Actor) IsZero() bool {
	return a.ID == 0
}

type actorKey struct{}

// WithActor returns a copy of ctx carrying actor.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the actor stored by WithActor.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(Actor)
	return actor, ok
}
