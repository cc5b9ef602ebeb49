package ports

import (
	"context"

	"github.com/bugtrackr/bug-tracker-api/internal/core/domain"
)

// AuthService handles account registration, login and profile lookup.
// The token returned by Login is an opaque bearer credential; the core only
// ever sees the identity it authenticates.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password, remoteIP string) (string, *domain.User, error)
	Profile(ctx context.Context, id string) (*domain.User, error)
}
