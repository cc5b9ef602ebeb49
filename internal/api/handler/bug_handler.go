package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bugtrackr/bug-tracker-api/internal/core/ports"
)

// BugHandler handles HTTP requests for bug operations.
type BugHandler struct {
	service ports.BugService
}

func NewBugHandler(service ports.BugService) *BugHandler {
	return &BugHandler{service: service}
}

// List handles GET /api/bugs.
//
// @Summary      List all bugs
// @Tags         bugs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   bugResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/bugs [get]
func (h *BugHandler) List(c echo.Context) error {
	views, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}

	resp := make([]bugResponse, 0, len(views))
	for i := range views {
		resp = append(resp, toBugResponse(&views[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

// Get handles GET /api/bugs/:id.
//
// @Summary      Get a single bug
// @Tags         bugs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Bug ID"
// @Success      200  {object}  bugResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/bugs/{id} [get]
func (h *BugHandler) Get(c echo.Context) error {
	view, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBugResponse(view))
}

// Create handles POST /api/bugs.
//
// @Summary      Create a new bug
// @Tags         bugs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBugRequest  true  "Bug details"
// @Success      201   {object}  bugResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/bugs [post]
func (h *BugHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createBugRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	view, err := h.service.Create(c.Request().Context(), ports.CreateBugInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Project:     req.Project,
		Tags:        req.Tags,
	}, identity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toBugResponse(view))
}

// Update handles PUT /api/bugs/:id — a full-document replace. Fields absent
// from the payload are cleared on the stored record.
//
// @Summary      Replace a bug
// @Tags         bugs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Bug ID"
// @Param        body  body      updateBugRequest  true  "Full replacement payload"
// @Success      200   {object}  bugResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/bugs/{id} [put]
func (h *BugHandler) Update(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateBugRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	view, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateBugInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Project:     req.Project,
		Tags:        req.Tags,
		AssignedTo:  req.AssignedTo,
	}, identity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBugResponse(view))
}

// Delete handles DELETE /api/bugs/:id.
//
// @Summary      Delete a bug
// @Tags         bugs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Bug ID"
// @Success      200  {object}  confirmationResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/bugs/{id} [delete]
func (h *BugHandler) Delete(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), identity); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, confirmationResponse{Message: "bug deleted successfully"})
}

// Assign handles PUT /api/bugs/:id/assign. An empty user_id clears the
// assignment.
//
// @Summary      Assign a bug to a user
// @Tags         bugs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Bug ID"
// @Param        body  body      assignBugRequest  true  "Assignment target"
// @Success      200   {object}  bugResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/bugs/{id}/assign [put]
func (h *BugHandler) Assign(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req assignBugRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	view, err := h.service.Assign(c.Request().Context(), c.Param("id"), req.UserID, identity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBugResponse(view))
}
