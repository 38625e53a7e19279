package assets

import (
	"sync"

	"github.com/google/uuid"
)

// EventKind classifies the outcome of a single write decision.
type EventKind string

const (
	// EventSkip means the destination was fresh and nothing was done.
	EventSkip EventKind = "skip"
	// EventCreate means the destination did not exist and was written.
	EventCreate EventKind = "create"
	// EventUpdate means the destination was replaced with new content.
	EventUpdate EventKind = "update"
	// EventIdentical means the produced content matched the destination;
	// the file was left untouched.
	EventIdentical EventKind = "identical"
)

// Event records one write decision. Events are reporting side effects, never
// control flow.
type Event struct {
	Kind EventKind
	Path string
}

// EventSink receives events. Implementations must be safe for concurrent use
// since buckets are processed in parallel.
type EventSink interface {
	Record(Event)
}

// RunLog is the default EventSink: it accumulates events for one pipeline
// run under a unique run ID.
type RunLog struct {
	id string

	mu     sync.Mutex
	events []Event
}

// NewRunLog creates an empty RunLog with a fresh run ID.
func NewRunLog() *RunLog {
	return &RunLog{id: uuid.NewString()}
}

// RunID returns the unique identifier of this run.
func (l *RunLog) RunID() string { return l.id }

// Record implements EventSink.
func (l *RunLog) Record(e Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
}

// Events returns a copy of the recorded events.
func (l *RunLog) Events() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

// Counts aggregates events by kind.
func (l *RunLog) Counts() map[EventKind]int {
	l.mu.Lock()
	defer l.mu.Unlock()
	counts := make(map[EventKind]int, 4)
	for _, e := range l.events {
		counts[e.Kind]++
	}
	return counts
}

// discardSink drops all events (used when no sink is configured).
type discardSink struct{}

func (discardSink) Record(Event) {}
