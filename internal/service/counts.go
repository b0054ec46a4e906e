package service

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// ResponseCountCache multiplexes live response-count streams per collection.
// It owns no data: the order stream source stays authoritative, the cache
// only guarantees a single upstream subscription per key and suppresses
// emissions that do not change the count.
type ResponseCountCache struct {
	source OrderStreamSource
	log    *zap.Logger

	mu      sync.Mutex
	entries map[string]*countEntry
	closed  bool
}

type countEntry struct {
	mu     sync.Mutex
	last   int
	has    bool
	closed bool
	subs   map[chan int]struct{}

	cancelUpstream func()
}

func NewResponseCountCache(source OrderStreamSource, log *zap.Logger) *ResponseCountCache {
	return &ResponseCountCache{
		source:  source,
		log:     log,
		entries: make(map[string]*countEntry),
	}
}

// StreamFor returns a channel of response counts for the collection and a
// cancel func for this caller. Concurrent callers with the same key share
// one upstream subscription; each caller gets its own latest-wins channel.
// Late subscribers immediately receive the most recent count.
func (c *ResponseCountCache) StreamFor(collectionID string) (<-chan int, func()) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		ch := make(chan int)
		close(ch)
		return ch, func() {}
	}
	entry, ok := c.entries[collectionID]
	if !ok {
		entry = &countEntry{subs: make(map[chan int]struct{})}
		c.entries[collectionID] = entry
		c.startUpstream(collectionID, entry)
	}
	c.mu.Unlock()

	return entry.subscribe()
}

// Evict tears down the shared subscription for the key. A subsequent
// StreamFor establishes a fresh one instead of replaying stale state.
func (c *ResponseCountCache) Evict(collectionID string) {
	c.mu.Lock()
	entry, ok := c.entries[collectionID]
	if ok {
		delete(c.entries, collectionID)
	}
	c.mu.Unlock()
	if ok {
		entry.close()
	}
}

// Close evicts every entry. The cache stays usable only for teardown.
func (c *ResponseCountCache) Close() {
	c.mu.Lock()
	c.closed = true
	entries := c.entries
	c.entries = make(map[string]*countEntry)
	c.mu.Unlock()
	for _, e := range entries {
		e.close()
	}
}

func (c *ResponseCountCache) startUpstream(collectionID string, entry *countEntry) {
	// The upstream lives as long as the cache entry, not as long as any
	// individual caller, so it is bound to a background context.
	upstream, cancel := c.source.StreamByCollection(context.Background(), collectionID)
	entry.cancelUpstream = cancel

	go func() {
		for list := range upstream {
			entry.emit(len(list))
		}
	}()
}

func (e *countEntry) subscribe() (<-chan int, func()) {
	ch := make(chan int, 1)

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	if e.has {
		ch <- e.last
	}
	e.subs[ch] = struct{}{}
	e.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			e.mu.Lock()
			if _, ok := e.subs[ch]; ok {
				delete(e.subs, ch)
				close(ch)
			}
			e.mu.Unlock()
		})
	}
	return ch, cancel
}

// emit broadcasts n to every subscriber unless it equals the previous
// count: a response list that changed without changing size stays silent.
func (e *countEntry) emit(n int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	if e.has && n == e.last {
		return
	}
	e.last = n
	e.has = true
	for ch := range e.subs {
		// latest wins; a slow consumer only ever sees the newest count
		select {
		case <-ch:
		default:
		}
		ch <- n
	}
}

func (e *countEntry) close() {
	if e.cancelUpstream != nil {
		e.cancelUpstream()
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	for ch := range e.subs {
		close(ch)
	}
	e.subs = nil
}
