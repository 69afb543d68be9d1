package sse

import (
	"sync"
)

// Event is pushed to every subscriber of a department
type Event struct {
	Department string
	Event      string
	Data       interface{}
}

// Hub fans events out to the open streams of each department
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

// NewHub creates a new SSE Hub instance
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a stream for department and returns its channel and cleanup function
func (h *Hub) Subscribe(department string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 10)

	if h.subscribers[department] == nil {
		h.subscribers[department] = make(map[chan Event]struct{})
	}
	h.subscribers[department][ch] = struct{}{}

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subscribers[department], ch)
			close(ch)
			if len(h.subscribers[department]) == 0 {
				delete(h.subscribers, department)
			}
		})
	}

	return ch, cleanup
}

// Publish sends an event to every stream of its department.
// Slow subscribers miss events rather than block the publisher.
func (h *Hub) Publish(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subscribers[event.Department] {
		select {
		case ch <- event:
		default:
		}
	}
}

// SubscriberCount returns the number of open streams of a department
func (h *Hub) SubscriberCount(department string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[department])
}
