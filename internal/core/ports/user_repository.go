package ports

import (
	"context"

	"github.com/bugtrackr/bug-tracker-api/internal/core/domain"
)

// UserRepository defines the interface for user account persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// IdentityResolver resolves an opaque identity reference into a display
// summary. A reference that names no known user resolves to (nil, nil) —
// "unknown user" is not an error. Implementations must not cache across
// requests.
type IdentityResolver interface {
	Resolve(ctx context.Context, id string) (*domain.UserSummary, error)
}
