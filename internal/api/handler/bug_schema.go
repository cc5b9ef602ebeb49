package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// confirmationResponse is returned by delete operations.
type confirmationResponse struct {
	Message string `json:"message"`
}

// --- Request types ---

// createBugRequest is the creation payload. Status is not accepted here:
// every bug starts open.
type createBugRequest struct {
	Title       string   `json:"title"       validate:"required"`
	Description string   `json:"description" validate:"required"`
	Priority    string   `json:"priority"    validate:"omitempty,oneof=low medium high critical"`
	Project     string   `json:"project"`
	Tags        []string `json:"tags"`
}

// updateBugRequest is the full replacement payload. Fields left out of the
// JSON body clear the stored value; this is a replace, not a merge.
type updateBugRequest struct {
	Title       string   `json:"title"       validate:"required"`
	Description string   `json:"description" validate:"required"`
	Status      string   `json:"status"      validate:"omitempty,oneof=open in-progress resolved closed"`
	Priority    string   `json:"priority"    validate:"omitempty,oneof=low medium high critical"`
	Project     string   `json:"project"`
	Tags        []string `json:"tags"`
	AssignedTo  string   `json:"assigned_to"`
}

// assignBugRequest carries the assignment target. An empty user_id clears the
// assignment. The identifier is stored as supplied, without existence checks.
type assignBugRequest struct {
	UserID string `json:"user_id"`
}

// --- Response types ---
// Response-only types owned by the transport layer, intentionally separate
// from ports/domain types so the JSON contract is not coupled to internal
// service changes.

type userSummaryResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type bugResponse struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Status      string               `json:"status"`
	Priority    string               `json:"priority"`
	Project     string               `json:"project,omitempty"`
	Tags        []string             `json:"tags"`
	AssignedTo  *userSummaryResponse `json:"assigned_to"`
	CreatedBy   *userSummaryResponse `json:"created_by"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}
