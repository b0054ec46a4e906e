package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"negociolisto-core/internal/models"
	"negociolisto-core/internal/service"

	"go.uber.org/zap"
)

// fakeStreamSource instruments subscription counts so the tests can verify
// the cache opens at most one upstream per key.
type fakeStreamSource struct {
	mu      sync.Mutex
	subs    int
	cancels int
	chans   map[string][]chan []models.Order
}

func newFakeStreamSource() *fakeStreamSource {
	return &fakeStreamSource{chans: make(map[string][]chan []models.Order)}
}

func (f *fakeStreamSource) StreamByCollection(ctx context.Context, id string) (<-chan []models.Order, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subs++
	ch := make(chan []models.Order, 8)
	f.chans[id] = append(f.chans[id], ch)

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.cancels++
			for i, c := range f.chans[id] {
				if c == ch {
					f.chans[id] = append(f.chans[id][:i], f.chans[id][i+1:]...)
					break
				}
			}
			close(ch)
		})
	}
	return ch, cancel
}

func (f *fakeStreamSource) push(id string, size int) {
	list := make([]models.Order, size)
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ch := range f.chans[id] {
		ch <- list
	}
}

func (f *fakeStreamSource) subscriptions() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.subs
}

func waitCount(t *testing.T, ch <-chan int, want int) {
	t.Helper()
	select {
	case got, ok := <-ch:
		if !ok {
			t.Fatalf("stream closed while waiting for %d", want)
		}
		if got != want {
			t.Fatalf("count expected %d, got %d", want, got)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for count %d", want)
	}
}

func assertNoEmission(t *testing.T, ch <-chan int) {
	t.Helper()
	select {
	case got, ok := <-ch:
		if ok {
			t.Fatalf("unexpected emission: %d", got)
		}
		t.Fatal("stream closed unexpectedly")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestCountCache_SingleSubscriptionPerKey(t *testing.T) {
	source := newFakeStreamSource()
	cache := service.NewResponseCountCache(source, zap.NewNop())
	defer cache.Close()

	var wg sync.WaitGroup
	cancels := make([]func(), 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, cancel := cache.StreamFor("col1")
			cancels[i] = cancel
		}(i)
	}
	wg.Wait()
	defer func() {
		for _, c := range cancels {
			c()
		}
	}()

	if got := source.subscriptions(); got != 1 {
		t.Fatalf("expected a single upstream subscription, got %d", got)
	}

	_, cancel := cache.StreamFor("col2")
	defer cancel()
	if got := source.subscriptions(); got != 2 {
		t.Fatalf("distinct key must open its own subscription, got %d", got)
	}
}

func TestCountCache_SuppressesDuplicateCounts(t *testing.T) {
	source := newFakeStreamSource()
	cache := service.NewResponseCountCache(source, zap.NewNop())
	defer cache.Close()

	ch, cancel := cache.StreamFor("col1")
	defer cancel()

	source.push("col1", 2)
	waitCount(t, ch, 2)

	// The list changed but its size did not: no emission downstream.
	source.push("col1", 2)
	assertNoEmission(t, ch)

	source.push("col1", 3)
	waitCount(t, ch, 3)
}

func TestCountCache_LateSubscriberGetsLatest(t *testing.T) {
	source := newFakeStreamSource()
	cache := service.NewResponseCountCache(source, zap.NewNop())
	defer cache.Close()

	first, cancelFirst := cache.StreamFor("col1")
	defer cancelFirst()
	source.push("col1", 4)
	waitCount(t, first, 4)

	late, cancelLate := cache.StreamFor("col1")
	defer cancelLate()
	waitCount(t, late, 4)
}

func TestCountCache_FanOutSurvivesOneCallerCancel(t *testing.T) {
	source := newFakeStreamSource()
	cache := service.NewResponseCountCache(source, zap.NewNop())
	defer cache.Close()

	a, cancelA := cache.StreamFor("col1")
	b, cancelB := cache.StreamFor("col1")
	defer cancelB()

	source.push("col1", 1)
	waitCount(t, a, 1)
	waitCount(t, b, 1)

	cancelA()

	source.push("col1", 2)
	waitCount(t, b, 2)
}

func TestCountCache_EvictEstablishesFreshSubscription(t *testing.T) {
	source := newFakeStreamSource()
	cache := service.NewResponseCountCache(source, zap.NewNop())
	defer cache.Close()

	ch, cancel := cache.StreamFor("col1")
	defer cancel()
	source.push("col1", 5)
	waitCount(t, ch, 5)

	cache.Evict("col1")

	// Existing caller channel is closed by eviction.
	select {
	case _, ok := <-ch:
		if ok {
			t.Fatal("expected closed channel after eviction")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for eviction close")
	}

	// A new caller gets a fresh upstream, not replayed stale state.
	fresh, cancelFresh := cache.StreamFor("col1")
	defer cancelFresh()
	if got := source.subscriptions(); got != 2 {
		t.Fatalf("expected a fresh subscription after eviction, got %d total", got)
	}
	source.push("col1", 1)
	waitCount(t, fresh, 1)
}
