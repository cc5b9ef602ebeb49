package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/bugtrackr/bug-tracker-api/internal/core/domain"
	"github.com/bugtrackr/bug-tracker-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes activity events to a fixed set of workers using consistent
// hashing on the bug id, guaranteeing per-bug ordering of the audit feed.
// It implements ports.ActivityRecorder.
type Dispatcher struct {
	workers []chan domain.ActivityEvent
	service ports.ActivityService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.ActivityService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.ActivityEvent, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.ActivityEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Record sends an event to the worker responsible for its bug. The call is
// non-blocking up to channelBuffer capacity; a persistently full shard drops
// the event with a warning rather than stalling the request path.
func (d *Dispatcher) Record(event domain.ActivityEvent) {
	select {
	case d.workers[d.shardIndex(event.BugID)] <- event:
	default:
		d.log.Warn().
			Str("bug_id", event.BugID).
			Str("action", event.Action).
			Msg("activity shard full, event dropped")
	}
}

// shardIndex maps a bug id deterministically to a worker index.
func (d *Dispatcher) shardIndex(bugID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(bugID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.ActivityEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			if err := d.service.Process(ctx, event); err != nil {
				d.log.Error().Err(err).
					Str("bug_id", event.BugID).
					Int("worker_id", id).
					Msg("activity processing failed")
			}
		}
	}
}
