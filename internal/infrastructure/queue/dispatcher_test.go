package queue

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/bugtrackr/bug-tracker-api/internal/core/domain"
)

type captureService struct {
	mu     sync.Mutex
	events []domain.ActivityEvent
	failOn string
}

func (s *captureService) Process(_ context.Context, event domain.ActivityEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failOn != "" && event.Action == s.failOn {
		return fmt.Errorf("persisting %s: store unavailable", event.Action)
	}
	s.events = append(s.events, event)
	return nil
}

func (s *captureService) Feed(context.Context, string) ([]domain.ActivityEvent, error) {
	return nil, nil
}

func (s *captureService) snapshot() []domain.ActivityEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ActivityEvent, len(s.events))
	copy(out, s.events)
	return out
}

// waitForEvents polls until the service has seen n events or the deadline
// passes.
func waitForEvents(t *testing.T, s *captureService, n int) []domain.ActivityEvent {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if got := s.snapshot(); len(got) >= n {
			return got
		}
		time.Sleep(5 * time.Millisecond)
	}
	got := s.snapshot()
	t.Fatalf("timed out waiting for %d events, got %d", n, len(got))
	return got
}

func TestDispatcher_DeliversEvents(t *testing.T) {
	svc := &captureService{}
	d := NewDispatcher(2, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Record(domain.ActivityEvent{BugID: "b1", Actor: "u1", Action: domain.ActionBugCreated})
	d.Record(domain.ActivityEvent{BugID: "b2", Actor: "u2", Action: domain.ActionBugUpdated})

	got := waitForEvents(t, svc, 2)
	seen := map[string]bool{}
	for _, e := range got {
		seen[e.BugID] = true
	}
	if !seen["b1"] || !seen["b2"] {
		t.Errorf("missing events: %+v", got)
	}
}

func TestDispatcher_PerBugOrdering(t *testing.T) {
	svc := &captureService{}
	d := NewDispatcher(4, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	actions := []string{
		domain.ActionBugCreated,
		domain.ActionBugAssigned,
		domain.ActionBugUpdated,
		domain.ActionBugDeleted,
	}
	for _, a := range actions {
		d.Record(domain.ActivityEvent{BugID: "b1", Actor: "u1", Action: a})
	}

	got := waitForEvents(t, svc, len(actions))
	for i, e := range got {
		if e.Action != actions[i] {
			t.Fatalf("event %d: got %s, want %s (per-bug order violated)", i, e.Action, actions[i])
		}
	}
}

func TestDispatcher_ShardIsStable(t *testing.T) {
	d := NewDispatcher(4, &captureService{}, zerolog.Nop())

	first := d.shardIndex("b1")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("b1"); got != first {
			t.Fatalf("shard index changed: %d vs %d", got, first)
		}
	}
	if first < 0 || first >= 4 {
		t.Fatalf("shard index out of range: %d", first)
	}
}

func TestDispatcher_ProcessFailureDoesNotStopWorker(t *testing.T) {
	svc := &captureService{failOn: domain.ActionBugDeleted}
	d := NewDispatcher(1, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Record(domain.ActivityEvent{BugID: "b1", Action: domain.ActionBugDeleted})
	d.Record(domain.ActivityEvent{BugID: "b1", Action: domain.ActionBugCreated})

	got := waitForEvents(t, svc, 1)
	if got[0].Action != domain.ActionBugCreated {
		t.Errorf("worker did not survive failure: %+v", got)
	}
}

func TestDispatcher_DefaultWorkerCount(t *testing.T) {
	d := NewDispatcher(0, &captureService{}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("worker count = %d, want %d", len(d.workers), defaultWorkers)
	}
}
