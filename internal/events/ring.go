// Package events ingests lockup lifecycle events, fans them out to
// in-process subscribers and drives the unlock/notification reconciliation.
package events

import (
	"math/rand"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/higher-steaks/hs-leaderboard/internal/adapter"
	"github.com/higher-steaks/hs-leaderboard/internal/domain"
)

// DefaultCapacity is the default ring buffer size
const DefaultCapacity = 100

// subscriberBuffer bounds each subscriber channel; a slow subscriber drops
// events rather than blocking ingestion
const subscriberBuffer = 16

// Broadcaster holds the most recent events in a fixed-capacity ring and
// fans new events out to subscribers. State is process-local: subscribers
// on another instance will not see these events.
type Broadcaster struct {
	mu          sync.Mutex
	clock       adapter.Clock
	entropy     *ulid.MonotonicEntropy
	buffer      []domain.BroadcastEvent
	next        int
	size        int
	subscribers map[uint64]chan domain.BroadcastEvent
	nextSubID   uint64
}

// NewBroadcaster creates a broadcaster with the given ring capacity
func NewBroadcaster(capacity int, clock adapter.Clock) *Broadcaster {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Broadcaster{
		clock:       clock,
		entropy:     ulid.Monotonic(rand.New(rand.NewSource(clock.Now().UnixNano())), 0), //nolint:gosec
		buffer:      make([]domain.BroadcastEvent, capacity),
		subscribers: make(map[uint64]chan domain.BroadcastEvent),
	}
}

// Publish stamps the event with an id and timestamp, stores it in the ring
// and delivers it to every subscriber that can keep up
func (b *Broadcaster) Publish(eventType domain.BroadcastEventType, data domain.EventData) domain.BroadcastEvent {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.clock.Now()
	event := domain.BroadcastEvent{
		ID:        ulid.MustNew(ulid.Timestamp(now), b.entropy).String(),
		Timestamp: now,
		Type:      eventType,
		Data:      data,
	}

	b.buffer[b.next] = event
	b.next = (b.next + 1) % len(b.buffer)
	if b.size < len(b.buffer) {
		b.size++
	}

	for _, ch := range b.subscribers {
		select {
		case ch <- event:
		default:
			// Slow subscriber loses this event
		}
	}

	return event
}

// Subscribe registers a new subscriber. The returned cancel function must
// be called to release the subscription.
func (b *Broadcaster) Subscribe() (<-chan domain.BroadcastEvent, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextSubID
	b.nextSubID++

	ch := make(chan domain.BroadcastEvent, subscriberBuffer)
	b.subscribers[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subscribers[id]; ok {
			delete(b.subscribers, id)
			close(sub)
		}
	}

	return ch, cancel
}

// Latest returns the most recently published event
func (b *Broadcaster) Latest() (domain.BroadcastEvent, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.size == 0 {
		return domain.BroadcastEvent{}, false
	}

	last := (b.next - 1 + len(b.buffer)) % len(b.buffer)
	return b.buffer[last], true
}

// Recent returns up to n most recent events, oldest first
func (b *Broadcaster) Recent(n int) []domain.BroadcastEvent {
	b.mu.Lock()
	defer b.mu.Unlock()

	if n <= 0 || n > b.size {
		n = b.size
	}

	out := make([]domain.BroadcastEvent, 0, n)
	start := (b.next - n + len(b.buffer)) % len(b.buffer)
	for i := 0; i < n; i++ {
		out = append(out, b.buffer[(start+i)%len(b.buffer)])
	}

	return out
}
