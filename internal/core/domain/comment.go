package domain

import "time"

// Comment is a remark permanently bound to one bug and one authoring identity.
// BugID and User are immutable after creation. A comment may outlive its bug:
// deleting a bug does not cascade to its comments.
type Comment struct {
	ID        string
	BugID     string
	User      string
	Text      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
