// Package metrics defines and registers all custom Prometheus metrics for the
// bug tracker API. It is the single source of truth for metric names, labels,
// and help strings. Metrics are registered with the default registry via
// promauto at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bugtracker"

// BugsCreatedTotal counts newly created bugs.
// Label:
//   - priority: "low", "medium", "high", or "critical"
var BugsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bugs_created_total",
		Help:      "Total number of bugs created, by priority.",
	},
	[]string{"priority"},
)

// BugsDeletedTotal counts deleted bugs.
var BugsDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bugs_deleted_total",
		Help:      "Total number of bugs deleted.",
	},
)

// CommentsCreatedTotal counts newly created comments.
var CommentsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comments_created_total",
		Help:      "Total number of comments created.",
	},
)

// CommentDeletesForbiddenTotal counts comment deletions rejected because the
// requester was not the author.
var CommentDeletesForbiddenTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comment_deletes_forbidden_total",
		Help:      "Total number of comment deletions rejected by the authorship check.",
	},
)

// AuthLoginFailuresTotal counts failed login attempts.
// Label:
//   - reason: "unknown_user", "bad_password", or "throttled"
var AuthLoginFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_login_failures_total",
		Help:      "Total number of failed login attempts, by reason.",
	},
	[]string{"reason"},
)

// ActivityEventsTotal counts activity events written to the audit feed.
// Label:
//   - action: e.g. "bug_created", "comment_deleted"
var ActivityEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_events_total",
		Help:      "Total number of activity events persisted, by action.",
	},
	[]string{"action"},
)

// ActivityErrorsTotal counts activity events that failed to persist.
var ActivityErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_errors_total",
		Help:      "Total number of activity events that failed to persist.",
	},
)
