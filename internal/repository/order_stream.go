package repository

import (
	"context"
	"sync"

	"negociolisto-core/internal/models"
	"negociolisto-core/internal/stream"
)

// OrderStreams adapts the order repo and the notification hub into a live
// query: each subscription emits the current order list of a collection and
// re-emits it after every write that touches the collection.
type OrderStreams struct {
	orders OrderRepo
	hub    *stream.Hub
}

func NewOrderStreams(orders OrderRepo, hub *stream.Hub) *OrderStreams {
	return &OrderStreams{orders: orders, hub: hub}
}

// StreamByCollection opens a reload-on-notify subscription. The returned
// channel is buffered and keeps only the latest snapshot; it is closed when
// the cancel func runs or ctx is done. Read-only subscriptions are safe to
// abandon mid-flight.
func (s *OrderStreams) StreamByCollection(ctx context.Context, collectionID string) (<-chan []models.Order, func()) {
	out := make(chan []models.Order, 1)
	signals, unsubscribe := s.hub.Subscribe(orderTopic(collectionID))

	stop := make(chan struct{})
	var once sync.Once
	cancel := func() {
		once.Do(func() {
			unsubscribe()
			close(stop)
		})
	}

	go func() {
		defer close(out)

		emit := func() bool {
			list, err := s.orders.ListByCollection(ctx, collectionID)
			if err != nil {
				return true // transient read failure: keep the subscription alive
			}
			// latest snapshot wins
			select {
			case <-out:
			default:
			}
			select {
			case out <- list:
				return true
			case <-stop:
				return false
			case <-ctx.Done():
				return false
			}
		}

		if !emit() {
			return
		}
		for {
			select {
			case <-stop:
				return
			case <-ctx.Done():
				return
			case _, ok := <-signals:
				if !ok {
					return
				}
				if !emit() {
					return
				}
			}
		}
	}()

	return out, cancel
}
