package ports

import (
	"context"
	"time"

	"github.com/bugtrackr/bug-tracker-api/internal/core/domain"
)

// CreateBugInput carries the caller-settable fields for a new bug. Status is
// deliberately absent: every bug starts open regardless of payload.
type CreateBugInput struct {
	Title       string
	Description string
	Priority    string
	Project     string
	Tags        []string
}

// UpdateBugInput is the full replacement payload for a bug. An empty field
// clears the stored value (enum fields revert to their defaults); this is a
// replace, not a partial merge.
type UpdateBugInput struct {
	Title       string
	Description string
	Status      string
	Priority    string
	Project     string
	Tags        []string
	AssignedTo  string
}

// BugView is the projected bug returned on every read and mutation response.
// Identity references are resolved to summaries; a nil summary means either
// "unassigned" or "unknown user".
type BugView struct {
	ID          string
	Title       string
	Description string
	Status      string
	Priority    string
	Project     string
	Tags        []string
	AssignedTo  *domain.UserSummary
	CreatedBy   *domain.UserSummary
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BugService defines use-case operations for bugs. The requester argument on
// mutating operations is the authenticated identity making the call; the
// authorization policy is consulted before any write.
type BugService interface {
	List(ctx context.Context) ([]BugView, error)
	Get(ctx context.Context, id string) (*BugView, error)
	Create(ctx context.Context, in CreateBugInput, creator string) (*BugView, error)
	Update(ctx context.Context, id string, in UpdateBugInput, requester string) (*BugView, error)
	Delete(ctx context.Context, id string, requester string) error
	Assign(ctx context.Context, id string, assignee string, requester string) (*BugView, error)
}
