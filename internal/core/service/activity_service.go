package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bugtrackr/bug-tracker-api/internal/api/metrics"
	"github.com/bugtrackr/bug-tracker-api/internal/core/domain"
	"github.com/bugtrackr/bug-tracker-api/internal/core/ports"
)

type activityService struct {
	repo ports.ActivityRepository
	log  zerolog.Logger
}

// NewActivityService returns an ActivityService implementation. Process is
// invoked by the dispatcher workers, never from the request path.
func NewActivityService(repo ports.ActivityRepository, log zerolog.Logger) ports.ActivityService {
	return &activityService{repo: repo, log: log}
}

// Process persists one activity event to the audit feed.
func (s *activityService) Process(ctx context.Context, event domain.ActivityEvent) error {
	if err := s.repo.Insert(ctx, &event); err != nil {
		metrics.ActivityErrorsTotal.Inc()
		return fmt.Errorf("process activity: %w", err)
	}

	metrics.ActivityEventsTotal.WithLabelValues(event.Action).Inc()
	s.log.Debug().
		Str("bug_id", event.BugID).
		Str("action", event.Action).
		Msg("activity recorded")
	return nil
}

// Feed returns the audit trail for one bug, newest first.
func (s *activityService) Feed(ctx context.Context, bugID string) ([]domain.ActivityEvent, error) {
	events, err := s.repo.FindByBug(ctx, bugID)
	if err != nil {
		return nil, fmt.Errorf("activity feed: %w", err)
	}

	out := make([]domain.ActivityEvent, 0, len(events))
	for _, e := range events {
		out = append(out, *e)
	}
	return out, nil
}
