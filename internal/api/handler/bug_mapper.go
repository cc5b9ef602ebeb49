package handler

import (
	"github.com/bugtrackr/bug-tracker-api/internal/core/domain"
	"github.com/bugtrackr/bug-tracker-api/internal/core/ports"
)

func toSummaryResponse(s *domain.UserSummary) *userSummaryResponse {
	if s == nil {
		return nil
	}
	return &userSummaryResponse{Name: s.Name, Email: s.Email}
}

func toBugResponse(v *ports.BugView) bugResponse {
	tags := v.Tags
	if tags == nil {
		tags = []string{}
	}
	return bugResponse{
		ID:          v.ID,
		Title:       v.Title,
		Description: v.Description,
		Status:      v.Status,
		Priority:    v.Priority,
		Project:     v.Project,
		Tags:        tags,
		AssignedTo:  toSummaryResponse(v.AssignedTo),
		CreatedBy:   toSummaryResponse(v.CreatedBy),
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

func toCommentResponse(v *ports.CommentView) commentResponse {
	return commentResponse{
		ID:        v.ID,
		BugID:     v.BugID,
		User:      toSummaryResponse(v.User),
		Text:      v.Text,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}
