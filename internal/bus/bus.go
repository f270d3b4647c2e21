// Package bus is a process-wide typed pub/sub: events are keyed by their Go
// type. Subscriptions happen once during startup; publishing is then safe
// from the event loop goroutine.
package bus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

var _ctx = context.Background()

// SetContext installs the context handed to subscribers. Call once at startup.
func SetContext(ctx context.Context) {
	_ctx = ctx
}

var subs = make(map[string][]func(ctx context.Context, event any))

func Subscribe[T any](name string, fn func(ctx context.Context, event T) error) {
	topic := fmt.Sprintf("%T", *new(T))
	subs[topic] = append(subs[topic], func(ctx context.Context, event any) {
		if err := fn(ctx, event.(T)); err != nil {
			slog.Error("Failed to handle event", "package", "bus", "name", name, "error", err)
		}
	})
}

func Publish[T any](event T) {
	for _, fn := range subs[fmt.Sprintf("%T", event)] {
		fn(_ctx, event)
	}
}

// Hub fans one event type out to dynamic subscribers, one channel each.
type Hub[T any] struct {
	mu   sync.Mutex
	subs map[*chan T]struct{}
}

func NewHub[T any]() *Hub[T] {
	return &Hub[T]{
		subs: make(map[*chan T]struct{}),
	}
}

// Register hooks the hub onto the global bus.
func (h *Hub[T]) Register() *Hub[T] {
	Subscribe("bus.Hub", h.Broadcast)
	return h
}

func (h *Hub[T]) Broadcast(ctx context.Context, event T) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subs {
		select {
		case <-ctx.Done():
		case *sub <- event:
		}
	}

	return nil
}

// Subscribe returns a channel of events and a cancel func that must be
// called when the consumer goes away.
func (h *Hub[T]) Subscribe(ctx context.Context) (<-chan T, func()) {
	h.mu.Lock()
	c := make(chan T)
	key := &c
	h.subs[key] = struct{}{}
	h.mu.Unlock()

	return c, func() {
		h.mu.Lock()
		delete(h.subs, key)
		h.mu.Unlock()
	}
}
