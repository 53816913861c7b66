package eventbus

import (
	"sync"

	"seek/internal/domain"
)

// Re-export domain types for convenience
type SearchEvent = domain.SearchEvent
type EventType = domain.EventType

// Event type constants
const (
	EventEntryMatched     = domain.EventEntryMatched
	EventDirectoryEntered = domain.EventDirectoryEntered
	EventPermissionError  = domain.EventPermissionError
	EventOtherError       = domain.EventOtherError
	EventSearchCompleted  = domain.EventSearchCompleted
)

// Re-export domain event types
type EntryMatchedEvent = domain.EntryMatchedEvent
type DirectoryEnteredEvent = domain.DirectoryEnteredEvent
type PermissionErrorEvent = domain.PermissionErrorEvent
type OtherErrorEvent = domain.OtherErrorEvent
type SearchCompletedEvent = domain.SearchCompletedEvent

// Bus is an unbounded multi-producer, single-consumer queue of search
// events. Publish never blocks: workers must not stall on a slow
// consumer, so events accumulate in memory instead (an accepted
// trade-off in favor of traversal throughput). Delivery preserves each
// producer's publish order.
type Bus struct {
	mu     sync.Mutex
	queue  []domain.SearchEvent
	closed bool

	wake chan struct{}
	out  chan domain.SearchEvent
	wg   sync.WaitGroup
}

// New creates a new event bus and starts its dispatcher
func New() *Bus {
	b := &Bus{
		wake: make(chan struct{}, 1),
		out:  make(chan domain.SearchEvent, 64),
	}

	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish enqueues an event without blocking.
// Events published after Close are dropped.
func (b *Bus) Publish(event domain.SearchEvent) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.queue = append(b.queue, event)
	b.mu.Unlock()

	select {
	case b.wake <- struct{}{}:
	default:
	}
}

// Events returns the consumer side of the bus. It is closed after Close
// once every previously published event has been delivered.
func (b *Bus) Events() <-chan domain.SearchEvent {
	return b.out
}

// Close stops the bus. Pending events are still delivered in order.
func (b *Bus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	b.mu.Unlock()

	select {
	case b.wake <- struct{}{}:
	default:
	}

	b.wg.Wait()
}

// dispatch moves queued events to the consumer channel
func (b *Bus) dispatch() {
	defer b.wg.Done()
	defer close(b.out)

	for {
		b.mu.Lock()
		batch := b.queue
		b.queue = nil
		closed := b.closed
		b.mu.Unlock()

		for _, event := range batch {
			b.out <- event
		}

		if closed {
			return
		}

		<-b.wake
	}
}
