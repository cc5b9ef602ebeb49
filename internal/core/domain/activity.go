package domain

import "time"

// Activity actions recorded in the audit feed.
const (
	ActionBugCreated     = "bug_created"
	ActionBugUpdated     = "bug_updated"
	ActionBugAssigned    = "bug_assigned"
	ActionBugDeleted     = "bug_deleted"
	ActionCommentCreated = "comment_created"
	ActionCommentDeleted = "comment_deleted"
)

// ActivityEvent is a single entry in the audit feed. It is recorded
// fire-and-forget after a successful mutation and never blocks the request
// that produced it.
type ActivityEvent struct {
	BugID  string
	Actor  string
	Action string
	At     time.Time
}
