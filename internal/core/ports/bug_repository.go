package ports

import (
	"context"

	"github.com/bugtrackr/bug-tracker-api/internal/core/domain"
)

// BugRepository defines persistence operations for bugs.
//
// Every operation touches a single document and is atomic on that document;
// there are no multi-record transactions. Concurrent replaces race with
// last-writer-wins semantics.
type BugRepository interface {
	// Insert persists a new bug and returns it with its generated ID.
	Insert(ctx context.Context, b *domain.Bug) (*domain.Bug, error)
	// FindByID retrieves one bug or domain.ErrBugNotFound.
	FindByID(ctx context.Context, id string) (*domain.Bug, error)
	// FindAll returns every bug ordered by creation time, newest first.
	FindAll(ctx context.Context) ([]*domain.Bug, error)
	// Replace overwrites the full document identified by b.ID.
	// Returns domain.ErrBugNotFound when no such document exists.
	Replace(ctx context.Context, b *domain.Bug) error
	// Delete removes one bug or returns domain.ErrBugNotFound.
	Delete(ctx context.Context, id string) error
}
