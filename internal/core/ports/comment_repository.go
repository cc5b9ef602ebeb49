package ports

import (
	"context"

	"github.com/bugtrackr/bug-tracker-api/internal/core/domain"
)

// CommentRepository defines persistence operations for comments.
type CommentRepository interface {
	// Insert persists a new comment and returns it with its generated ID.
	Insert(ctx context.Context, c *domain.Comment) (*domain.Comment, error)
	// FindByID retrieves one comment or domain.ErrCommentNotFound.
	FindByID(ctx context.Context, id string) (*domain.Comment, error)
	// FindByBug returns all comments on a bug ordered by creation time,
	// newest first. An unknown bug id yields an empty slice, not an error.
	FindByBug(ctx context.Context, bugID string) ([]*domain.Comment, error)
	// Delete removes one comment or returns domain.ErrCommentNotFound.
	Delete(ctx context.Context, id string) error
}
