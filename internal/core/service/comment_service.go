package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bugtrackr/bug-tracker-api/internal/api/metrics"
	"github.com/bugtrackr/bug-tracker-api/internal/core/domain"
	"github.com/bugtrackr/bug-tracker-api/internal/core/ports"
)

type CommentService struct {
	comments  ports.CommentRepository
	bugs      ports.BugRepository
	projector *Projector
	policy    Policy
	recorder  ports.ActivityRecorder
	logger    zerolog.Logger
}

func NewCommentService(
	comments ports.CommentRepository,
	bugs ports.BugRepository,
	projector *Projector,
	recorder ports.ActivityRecorder,
	logger zerolog.Logger,
) *CommentService {
	return &CommentService{
		comments:  comments,
		bugs:      bugs,
		projector: projector,
		recorder:  recorder,
		logger:    logger,
	}
}

// ListForBug returns all comments on a bug, newest first. The bug's existence
// is deliberately not verified here: listing stays cheap and side-effect-free,
// and an unknown bug id yields an empty list. The asymmetry with Create is
// intentional.
func (s *CommentService) ListForBug(ctx context.Context, bugID string) ([]ports.CommentView, error) {
	comments, err := s.comments.FindByBug(ctx, bugID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	views := make([]ports.CommentView, 0, len(comments))
	for _, c := range comments {
		view, err := s.projector.CommentView(ctx, c)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// Create adds a comment to an existing bug. Unlike ListForBug, the bug must
// exist: a dangling reference is rejected, never silently created.
func (s *CommentService) Create(ctx context.Context, bugID, text, author string) (*ports.CommentView, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: comment text is required", domain.ErrValidation)
	}

	if _, err := s.bugs.FindByID(ctx, bugID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	comment := &domain.Comment{
		BugID:     bugID,
		User:      author,
		Text:      text,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.comments.Insert(ctx, comment)
	if err != nil {
		s.logger.Error().Err(err).Str("bug_id", bugID).Msg("failed to create comment")
		return nil, err
	}

	s.logger.Info().Str("comment_id", created.ID).Str("bug_id", bugID).Str("user", author).Msg("comment created")
	metrics.CommentsCreatedTotal.Inc()
	s.recorder.Record(domain.ActivityEvent{BugID: bugID, Actor: author, Action: domain.ActionCommentCreated, At: now})

	return s.projector.CommentView(ctx, created)
}

// Delete removes a comment. Only its author may do so.
func (s *CommentService) Delete(ctx context.Context, id, requester string) error {
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !s.policy.CanDeleteComment(requester, comment) {
		metrics.CommentDeletesForbiddenTotal.Inc()
		return domain.ErrForbidden
	}

	if err := s.comments.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("comment_id", id).Str("requester", requester).Msg("comment deleted")
	s.recorder.Record(domain.ActivityEvent{
		BugID:  comment.BugID,
		Actor:  requester,
		Action: domain.ActionCommentDeleted,
		At:     time.Now().UTC(),
	})
	return nil
}
