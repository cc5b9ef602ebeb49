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

type BugService struct {
	repo      ports.BugRepository
	projector *Projector
	policy    Policy
	recorder  ports.ActivityRecorder
	logger    zerolog.Logger
}

func NewBugService(repo ports.BugRepository, projector *Projector, recorder ports.ActivityRecorder, logger zerolog.Logger) *BugService {
	return &BugService{repo: repo, projector: projector, recorder: recorder, logger: logger}
}

// List returns all bugs, newest first, projected.
func (s *BugService) List(ctx context.Context) ([]ports.BugView, error) {
	bugs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bugs: %w", err)
	}

	views := make([]ports.BugView, 0, len(bugs))
	for _, b := range bugs {
		view, err := s.projector.BugView(ctx, b)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// Get returns one projected bug.
func (s *BugService) Get(ctx context.Context, id string) (*ports.BugView, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.projector.BugView(ctx, b)
}

// Create persists a new bug. Title and description are required; status is
// always open regardless of payload, priority defaults to medium when absent.
func (s *BugService) Create(ctx context.Context, in ports.CreateBugInput, creator string) (*ports.BugView, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" || strings.TrimSpace(in.Description) == "" {
		return nil, fmt.Errorf("%w: title and description are required", domain.ErrValidation)
	}

	priority, err := resolvePriority(in.Priority)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	bug := &domain.Bug{
		Title:       title,
		Description: in.Description,
		Status:      domain.DefaultStatus,
		Priority:    priority,
		Project:     strings.TrimSpace(in.Project),
		Tags:        trimTags(in.Tags),
		CreatedBy:   creator,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Insert(ctx, bug)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create bug")
		return nil, err
	}

	s.logger.Info().Str("bug_id", created.ID).Str("created_by", creator).Msg("bug created")
	metrics.BugsCreatedTotal.WithLabelValues(string(created.Priority)).Inc()
	s.record(created.ID, creator, domain.ActionBugCreated)

	return s.projector.BugView(ctx, created)
}

// Update performs a full-document replace: fields absent from the payload are
// cleared, enum fields revert to their defaults. CreatedBy and CreatedAt are
// carried over from the stored record and cannot be changed.
func (s *BugService) Update(ctx context.Context, id string, in ports.UpdateBugInput, requester string) (*ports.BugView, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.policy.CanModifyBug(requester, current) {
		return nil, domain.ErrForbidden
	}

	title := strings.TrimSpace(in.Title)
	if title == "" || strings.TrimSpace(in.Description) == "" {
		return nil, fmt.Errorf("%w: title and description are required", domain.ErrValidation)
	}
	status, err := resolveStatus(in.Status)
	if err != nil {
		return nil, err
	}
	priority, err := resolvePriority(in.Priority)
	if err != nil {
		return nil, err
	}

	replacement := &domain.Bug{
		ID:          current.ID,
		Title:       title,
		Description: in.Description,
		Status:      status,
		Priority:    priority,
		Project:     strings.TrimSpace(in.Project),
		Tags:        trimTags(in.Tags),
		AssignedTo:  in.AssignedTo,
		CreatedBy:   current.CreatedBy,
		CreatedAt:   current.CreatedAt,
		UpdatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Replace(ctx, replacement); err != nil {
		return nil, err
	}

	s.logger.Info().Str("bug_id", id).Str("requester", requester).Msg("bug updated")
	s.record(id, requester, domain.ActionBugUpdated)

	return s.projector.BugView(ctx, replacement)
}

// Delete removes a bug. Comments referencing it are left in place; there is
// no cascade.
func (s *BugService) Delete(ctx context.Context, id string, requester string) error {
	bug, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !s.policy.CanModifyBug(requester, bug) {
		return domain.ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("bug_id", id).Str("requester", requester).Msg("bug deleted")
	metrics.BugsDeletedTotal.Inc()
	s.record(id, requester, domain.ActionBugDeleted)
	return nil
}

// Assign sets or clears the assignee. The target identifier is stored as
// supplied: it is not checked against the user store, and an identifier that
// never resolves simply projects as a nil assignee.
func (s *BugService) Assign(ctx context.Context, id string, assignee string, requester string) (*ports.BugView, error) {
	bug, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.policy.CanModifyBug(requester, bug) {
		return nil, domain.ErrForbidden
	}

	bug.AssignedTo = assignee
	bug.UpdatedAt = time.Now().UTC()

	if err := s.repo.Replace(ctx, bug); err != nil {
		return nil, err
	}

	s.logger.Info().Str("bug_id", id).Str("assignee", assignee).Msg("bug assigned")
	s.record(id, requester, domain.ActionBugAssigned)

	return s.projector.BugView(ctx, bug)
}

func (s *BugService) record(bugID, actor, action string) {
	s.recorder.Record(domain.ActivityEvent{
		BugID:  bugID,
		Actor:  actor,
		Action: action,
		At:     time.Now().UTC(),
	})
}

// resolvePriority maps the payload priority to its enum value: empty reverts
// to the default, unknown values are a validation error.
func resolvePriority(raw string) (domain.BugPriority, error) {
	if raw == "" {
		return domain.DefaultPriority, nil
	}
	p := domain.BugPriority(raw)
	if !p.Valid() {
		return "", fmt.Errorf("%w: invalid priority %q", domain.ErrValidation, raw)
	}
	return p, nil
}

// resolveStatus maps the payload status to its enum value, same rules as
// resolvePriority.
func resolveStatus(raw string) (domain.BugStatus, error) {
	if raw == "" {
		return domain.DefaultStatus, nil
	}
	st := domain.BugStatus(raw)
	if !st.Valid() {
		return "", fmt.Errorf("%w: invalid status %q", domain.ErrValidation, raw)
	}
	return st, nil
}

// trimTags trims whitespace on each tag, preserving order and duplicates.
func trimTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = strings.TrimSpace(t)
	}
	return out
}
