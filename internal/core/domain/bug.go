package domain

import (
	"errors"
	"time"
)

// BugStatus represents the triage state of a bug.
type BugStatus string

const (
	StatusOpen       BugStatus = "open"
	StatusInProgress BugStatus = "in-progress"
	StatusResolved   BugStatus = "resolved"
	StatusClosed     BugStatus = "closed"
)

// DefaultStatus is applied when no status is supplied. Callers cannot set a
// status at creation time; every bug starts its life open.
const DefaultStatus = StatusOpen

// Valid reports whether s is one of the known statuses.
func (s BugStatus) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved, StatusClosed:
		return true
	}
	return false
}

// BugPriority represents how urgent a bug is.
type BugPriority string

const (
	PriorityLow      BugPriority = "low"
	PriorityMedium   BugPriority = "medium"
	PriorityHigh     BugPriority = "high"
	PriorityCritical BugPriority = "critical"
)

// DefaultPriority is applied when the creation payload carries no priority.
const DefaultPriority = PriorityMedium

// Valid reports whether p is one of the known priorities.
func (p BugPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

var ErrValidation = errors.New("validation failed")
var ErrBugNotFound = errors.New("bug not found")
var ErrCommentNotFound = errors.New("comment not found")
var ErrForbidden = errors.New("access forbidden")

// Bug is the primary tracked work item.
//
// CreatedBy is set exactly once at creation and never reassigned. AssignedTo
// holds an opaque identity reference; empty means unassigned. The target of an
// assignment is not checked against the user store.
type Bug struct {
	ID          string
	Title       string
	Description string
	Status      BugStatus
	Priority    BugPriority
	Project     string
	Tags        []string
	AssignedTo  string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
