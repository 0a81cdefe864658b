package annotate

import (
	"sort"
	"time"
)

// DefaultWatchQuietInterval is how long a watched path must stay quiet before it is annotated.
const DefaultWatchQuietInterval = 500 * time.Millisecond

// debouncer collects changed paths and releases them together once no new event arrived for interval.
// Repeated events for one path collapse into a single entry. It is owned by one goroutine.
type debouncer struct {
	interval time.Duration
	paths    map[string]struct{}
	timer    *time.Timer
	armed    bool
}

func newDebouncer(interval time.Duration) *debouncer {
	return &debouncer{interval: interval, paths: make(map[string]struct{})}
}

// add records path and restarts the quiet interval.
func (queue *debouncer) add(path string) {
	queue.paths[path] = struct{}{}
	if queue.timer == nil {
		queue.timer = time.NewTimer(queue.interval)
	} else {
		queue.timer.Reset(queue.interval)
	}
	queue.armed = true
}

// ready fires when the pending paths have settled. It is nil while nothing is pending.
func (queue *debouncer) ready() <-chan time.Time {
	if !queue.armed {
		return nil
	}
	return queue.timer.C
}

// drain returns the settled paths in lexical order and empties the queue.
func (queue *debouncer) drain() []string {
	settled := make([]string, 0, len(queue.paths))
	for path := range queue.paths {
		settled = append(settled, path)
	}
	sort.Strings(settled)
	queue.paths = make(map[string]struct{})
	queue.armed = false
	return settled
}

func (queue *debouncer) stop() {
	if queue.timer != nil {
		queue.timer.Stop()
	}
}
