// Package stream provides the in-process change-notification hub the live
// read paths are built on: repository writes signal a topic, subscribers
// reload and re-emit derived state.
package stream

import (
	"sync"
)

// Hub fans change signals out to per-topic subscribers. Broadcast never
// blocks a writer: a subscriber whose buffer is full already has a pending
// signal, which is enough for reload-on-notify consumers.
type Hub struct {
	mu     sync.RWMutex
	topics map[string]map[chan struct{}]struct{}
}

func NewHub() *Hub {
	return &Hub{topics: make(map[string]map[chan struct{}]struct{})}
}

// Subscribe registers a listener for the topic and returns the signal
// channel together with a cancel func. The channel is closed on cancel.
func (h *Hub) Subscribe(topic string) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	h.mu.Lock()
	subs, ok := h.topics[topic]
	if !ok {
		subs = make(map[chan struct{}]struct{})
		h.topics[topic] = subs
	}
	subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			if subs, ok := h.topics[topic]; ok {
				delete(subs, ch)
				if len(subs) == 0 {
					delete(h.topics, topic)
				}
			}
			h.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Notify signals every subscriber of the topic. Coalesces with any signal
// already pending.
func (h *Hub) Notify(topic string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.topics[topic] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Subscribers reports the current listener count for a topic.
func (h *Hub) Subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}
