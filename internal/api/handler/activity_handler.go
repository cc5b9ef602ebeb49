package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bugtrackr/bug-tracker-api/internal/core/ports"
)

// ActivityHandler serves the per-bug audit feed.
type ActivityHandler struct {
	service ports.ActivityService
}

func NewActivityHandler(service ports.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: service}
}

type activityEntryResponse struct {
	BugID  string    `json:"bug_id"`
	Actor  string    `json:"actor"`
	Action string    `json:"action"`
	At     time.Time `json:"at"`
}

// Feed handles GET /api/bugs/:id/activity. Like comment listing, an unknown
// bug id yields an empty feed.
//
// @Summary      Audit feed for a bug
// @Tags         activity
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Bug ID"
// @Success      200  {array}   activityEntryResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/bugs/{id}/activity [get]
func (h *ActivityHandler) Feed(c echo.Context) error {
	events, err := h.service.Feed(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	resp := make([]activityEntryResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, activityEntryResponse{
			BugID:  e.BugID,
			Actor:  e.Actor,
			Action: e.Action,
			At:     e.At,
		})
	}
	return c.JSON(http.StatusOK, resp)
}
