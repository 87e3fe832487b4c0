package broadcast

import (
	"context"
	"sync"
)

const subscriberBuffer = 16

// Hub is the in-process topic fanout. Subscribers hold a buffered
// channel; a full buffer drops the event for that subscriber rather
// than blocking the publishing request.
type Hub struct {
	mu     sync.Mutex
	topics map[string]map[*Subscription]struct{}
}

func NewHub() *Hub {
	return &Hub{topics: make(map[string]map[*Subscription]struct{})}
}

type Subscription struct {
	hub    *Hub
	C      chan Event
	mu     sync.Mutex
	topics map[string]struct{}
	closed bool
}

// Subscribe registers a new subscriber on the given topics.
func (h *Hub) Subscribe(topics ...string) *Subscription {
	sub := &Subscription{
		hub:    h,
		C:      make(chan Event, subscriberBuffer),
		topics: make(map[string]struct{}),
	}
	for _, t := range topics {
		sub.Join(t)
	}
	return sub
}

// Join adds the subscription to one more topic. Joining a topic twice
// is a no-op.
func (s *Subscription) Join(topic string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.topics[topic] = struct{}{}
	s.mu.Unlock()

	h := s.hub
	h.mu.Lock()
	set, ok := h.topics[topic]
	if !ok {
		set = make(map[*Subscription]struct{})
		h.topics[topic] = set
	}
	set[s] = struct{}{}
	h.mu.Unlock()
}

// Close detaches the subscription from every topic and closes C.
func (s *Subscription) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	topics := make([]string, 0, len(s.topics))
	for t := range s.topics {
		topics = append(topics, t)
	}
	s.mu.Unlock()

	h := s.hub
	h.mu.Lock()
	for _, t := range topics {
		if set, ok := h.topics[t]; ok {
			delete(set, s)
			if len(set) == 0 {
				delete(h.topics, t)
			}
		}
	}
	h.mu.Unlock()
	close(s.C)
}

func (h *Hub) Publish(_ context.Context, topic, name string, payload any) error {
	ev := Event{Topic: topic, Name: name, Payload: payload}

	h.mu.Lock()
	subs := make([]*Subscription, 0, len(h.topics[topic]))
	for s := range h.topics[topic] {
		subs = append(subs, s)
	}
	h.mu.Unlock()

	for _, s := range subs {
		s.mu.Lock()
		if !s.closed {
			select {
			case s.C <- ev:
			default: // slow subscriber, drop
			}
		}
		s.mu.Unlock()
	}
	return nil
}
