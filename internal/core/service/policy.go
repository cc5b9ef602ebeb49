package service

import "github.com/bugtrackr/bug-tracker-api/internal/core/domain"

// Policy is the stateless authorization predicate set consulted before every
// mutating operation. Bugs carry a coarse-grained policy: any authenticated
// identity may modify or delete any bug, including ones it did not create.
// Comments are fine-grained: only the authoring identity may delete one.
// The asymmetry is part of the contract, not an oversight.
type Policy struct{}

// CanModifyBug reports whether requester may update, assign or delete bug.
// True for every authenticated identity; the bug argument is accepted so the
// predicate signature stays stable if the policy ever tightens.
func (Policy) CanModifyBug(requester string, _ *domain.Bug) bool {
	return requester != ""
}

// CanDeleteComment reports whether requester may delete c.
func (Policy) CanDeleteComment(requester string, c *domain.Comment) bool {
	return requester != "" && requester == c.User
}
