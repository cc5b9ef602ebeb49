package ports

import (
	"context"

	"github.com/bugtrackr/bug-tracker-api/internal/core/domain"
)

// ActivityRecorder accepts activity events for asynchronous persistence.
// Record must never block the caller beyond channel capacity and must never
// surface persistence failures to the request path.
type ActivityRecorder interface {
	Record(event domain.ActivityEvent)
}

// ActivityService processes recorded events and serves the per-bug feed.
type ActivityService interface {
	Process(ctx context.Context, event domain.ActivityEvent) error
	Feed(ctx context.Context, bugID string) ([]domain.ActivityEvent, error)
}

// ActivityRepository persists activity events to the audit feed.
type ActivityRepository interface {
	Insert(ctx context.Context, event *domain.ActivityEvent) error
	// FindByBug returns the audit trail for one bug, newest first.
	FindByBug(ctx context.Context, bugID string) ([]*domain.ActivityEvent, error)
}
