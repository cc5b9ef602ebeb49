package ports

import (
	"context"
	"time"

	"github.com/bugtrackr/bug-tracker-api/internal/core/domain"
)

// CommentView is the projected comment returned on reads and mutation
// responses. User is nil when the authoring identity no longer resolves.
type CommentView struct {
	ID        string
	BugID     string
	User      *domain.UserSummary
	Text      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CommentService defines use-case operations for comments.
type CommentService interface {
	// ListForBug returns all comments on a bug, newest first. It does not
	// verify the bug exists; an unknown id yields an empty list.
	ListForBug(ctx context.Context, bugID string) ([]CommentView, error)
	// Create adds a comment to an existing bug on behalf of author.
	Create(ctx context.Context, bugID, text, author string) (*CommentView, error)
	// Delete removes a comment. Only the authoring identity may delete it.
	Delete(ctx context.Context, id, requester string) error
}
