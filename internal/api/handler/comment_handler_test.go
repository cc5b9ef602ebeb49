package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bugtrackr/bug-tracker-api/internal/core/domain"
	"github.com/bugtrackr/bug-tracker-api/internal/core/ports"
)

type stubCommentService struct {
	listFn   func(ctx context.Context, bugID string) ([]ports.CommentView, error)
	createFn func(ctx context.Context, bugID, text, author string) (*ports.CommentView, error)
	deleteFn func(ctx context.Context, id, requester string) error
}

func (s *stubCommentService) ListForBug(ctx context.Context, bugID string) ([]ports.CommentView, error) {
	return s.listFn(ctx, bugID)
}
func (s *stubCommentService) Create(ctx context.Context, bugID, text, author string) (*ports.CommentView, error) {
	return s.createFn(ctx, bugID, text, author)
}
func (s *stubCommentService) Delete(ctx context.Context, id, requester string) error {
	return s.deleteFn(ctx, id, requester)
}

func TestCommentHandler_Create_Success(t *testing.T) {
	h := NewCommentHandler(&stubCommentService{
		createFn: func(_ context.Context, bugID, text, author string) (*ports.CommentView, error) {
			if bugID != "b1" || text != "still failing" || author != "u2" {
				t.Fatalf("unexpected args: %s %q %s", bugID, text, author)
			}
			return &ports.CommentView{
				ID:        "c1",
				BugID:     bugID,
				User:      &domain.UserSummary{Name: "Bob", Email: "bob@example.com"},
				Text:      text,
				CreatedAt: time.Now().UTC(),
			}, nil
		},
	})

	c, rec := newTestContext(t, http.MethodPost, "/api/bugs/b1/comments", `{"text":"still failing"}`, "u2")
	c.SetParamNames("id")
	c.SetParamValues("b1")

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp commentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.BugID != "b1" || resp.User == nil || resp.User.Name != "Bob" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestCommentHandler_Create_EmptyText(t *testing.T) {
	h := NewCommentHandler(&stubCommentService{
		createFn: func(context.Context, string, string, string) (*ports.CommentView, error) {
			t.Fatal("service must not be called on invalid payload")
			return nil, nil
		},
	})

	c, _ := newTestContext(t, http.MethodPost, "/api/bugs/b1/comments", `{}`, "u2")
	c.SetParamNames("id")
	c.SetParamValues("b1")

	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestCommentHandler_ListForBug_Empty(t *testing.T) {
	h := NewCommentHandler(&stubCommentService{
		listFn: func(context.Context, string) ([]ports.CommentView, error) {
			return nil, nil
		},
	})

	c, rec := newTestContext(t, http.MethodGet, "/api/bugs/b404/comments", "", "u2")
	c.SetParamNames("id")
	c.SetParamValues("b404")

	if err := h.ListForBug(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("expected empty JSON array, got %s", body)
	}
}

func TestCommentHandler_Delete_ForbiddenPassthrough(t *testing.T) {
	h := NewCommentHandler(&stubCommentService{
		deleteFn: func(_ context.Context, id, requester string) error {
			return domain.ErrForbidden
		},
	})

	c, _ := newTestContext(t, http.MethodDelete, "/api/comments/c1", "", "u1")
	c.SetParamNames("id")
	c.SetParamValues("c1")

	if err := h.Delete(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden to pass through, got %v", err)
	}
}

func TestCommentHandler_Delete_Confirmation(t *testing.T) {
	h := NewCommentHandler(&stubCommentService{
		deleteFn: func(_ context.Context, id, requester string) error {
			if id != "c1" || requester != "u2" {
				t.Fatalf("unexpected args: %s %s", id, requester)
			}
			return nil
		},
	})

	c, rec := newTestContext(t, http.MethodDelete, "/api/comments/c1", "", "u2")
	c.SetParamNames("id")
	c.SetParamValues("c1")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "comment deleted successfully") {
		t.Errorf("missing confirmation: %s", rec.Body.String())
	}
}
