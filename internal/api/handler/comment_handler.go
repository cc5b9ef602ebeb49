package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bugtrackr/bug-tracker-api/internal/core/ports"
)

// CommentHandler handles HTTP requests for comment operations.
type CommentHandler struct {
	service ports.CommentService
}

func NewCommentHandler(service ports.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

type createCommentRequest struct {
	Text string `json:"text" validate:"required"`
}

type commentResponse struct {
	ID        string               `json:"id"`
	BugID     string               `json:"bug_id"`
	User      *userSummaryResponse `json:"user"`
	Text      string               `json:"text"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// ListForBug handles GET /api/bugs/:id/comments. An unknown bug id yields
// an empty list, not a 404.
//
// @Summary      List comments on a bug
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      string  true  "Bug ID"
// @Success      200    {array}   commentResponse
// @Failure      401    {object}  errorResponse
// @Router       /api/bugs/{id}/comments [get]
func (h *CommentHandler) ListForBug(c echo.Context) error {
	views, err := h.service.ListForBug(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	resp := make([]commentResponse, 0, len(views))
	for i := range views {
		resp = append(resp, toCommentResponse(&views[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

// Create handles POST /api/bugs/:id/comments.
//
// @Summary      Comment on a bug
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      string                true  "Bug ID"
// @Param        body   body      createCommentRequest  true  "Comment text"
// @Success      201    {object}  commentResponse
// @Failure      400    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Router       /api/bugs/{id}/comments [post]
func (h *CommentHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	view, err := h.service.Create(c.Request().Context(), c.Param("id"), req.Text, identity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toCommentResponse(view))
}

// Delete handles DELETE /api/comments/:id. Only the comment's author may
// delete it.
//
// @Summary      Delete a comment
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Comment ID"
// @Success      200  {object}  confirmationResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/comments/{id} [delete]
func (h *CommentHandler) Delete(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), identity); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, confirmationResponse{Message: "comment deleted successfully"})
}
