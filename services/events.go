package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventType identifies a notification event emitted by the platform.
type EventType string

const (
	EventPostPublished   EventType = "post.published"
	EventDesignCompleted EventType = "design.completed"
	EventDesignFailed    EventType = "design.failed"
)

// Event is a notification delivered to every subscriber.
type Event struct {
	Type       EventType `json:"type"`
	BlogPostID uuid.UUID `json:"blogPostId"`
	Detail     string    `json:"detail,omitempty"`
	At         time.Time `json:"at"`
}

// EventBus is a typed in-process publish/subscribe channel. Any number of
// subscribers may listen concurrently; a slow subscriber drops events rather
// than blocking publishers.
type EventBus struct {
	mu          sync.RWMutex
	subscribers map[int]chan Event
	nextID      int
}

func NewEventBus() *EventBus {
	return &EventBus{subscribers: make(map[int]chan Event)}
}

// Subscribe registers a listener and returns its event channel together
// with an unsubscribe function. The channel is closed on unsubscribe.
func (b *EventBus) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++

	ch := make(chan Event, 16)
	b.subscribers[id] = ch

	unsubscribe := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subscribers[id]; ok {
			delete(b.subscribers, id)
			close(sub)
		}
	}
	return ch, unsubscribe
}

// Publish delivers the event to every current subscriber without blocking.
func (b *EventBus) Publish(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- event:
		default:
			// Subscriber buffer full; drop rather than stall the publisher.
		}
	}
}

// SubscriberCount returns the number of active subscribers.
func (b *EventBus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
