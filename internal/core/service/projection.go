package service

import (
	"context"
	"fmt"

	"github.com/bugtrackr/bug-tracker-api/internal/core/domain"
	"github.com/bugtrackr/bug-tracker-api/internal/core/ports"
)

// Projector resolves identity references embedded in bugs and comments into
// {name, email} summaries for output. It is a pure transformation over the
// injected resolver: no caching, no side effects, applied on every read and
// every mutation response.
type Projector struct {
	resolver ports.IdentityResolver
}

func NewProjector(resolver ports.IdentityResolver) *Projector {
	return &Projector{resolver: resolver}
}

// BugView projects a raw bug record. An empty assignee and an assignee that
// no longer resolves both project as nil.
func (p *Projector) BugView(ctx context.Context, b *domain.Bug) (*ports.BugView, error) {
	createdBy, err := p.summary(ctx, b.CreatedBy)
	if err != nil {
		return nil, fmt.Errorf("project bug %s: %w", b.ID, err)
	}
	assignedTo, err := p.summary(ctx, b.AssignedTo)
	if err != nil {
		return nil, fmt.Errorf("project bug %s: %w", b.ID, err)
	}

	return &ports.BugView{
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
		Status:      string(b.Status),
		Priority:    string(b.Priority),
		Project:     b.Project,
		Tags:        b.Tags,
		AssignedTo:  assignedTo,
		CreatedBy:   createdBy,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}, nil
}

// CommentView projects a raw comment record.
func (p *Projector) CommentView(ctx context.Context, c *domain.Comment) (*ports.CommentView, error) {
	user, err := p.summary(ctx, c.User)
	if err != nil {
		return nil, fmt.Errorf("project comment %s: %w", c.ID, err)
	}

	return &ports.CommentView{
		ID:        c.ID,
		BugID:     c.BugID,
		User:      user,
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}, nil
}

// summary resolves one identity reference. Absent references and references
// to unknown users both yield nil.
func (p *Projector) summary(ctx context.Context, id string) (*domain.UserSummary, error) {
	if id == "" {
		return nil, nil
	}
	return p.resolver.Resolve(ctx, id)
}
