package events

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// EventHandler handles a published event.
type EventHandler func(context.Context, Event) error

// Dispatcher exposes two publication contracts: Publish blocks and surfaces the
// first handler error, PublishAsync returns immediately and only ever logs
// handler failures. The ticket engine picks the contract per call site.
type Dispatcher interface {
	Publish(ctx context.Context, event Event) error
	PublishAsync(event Event)
	Subscribe(eventType EventType, handler EventHandler)
}

type inMemoryDispatcher struct {
	mu        sync.RWMutex
	listeners map[EventType][]EventHandler
	logger    *zap.Logger
}

// NewInMemoryDispatcher creates a dispatcher instance.
func NewInMemoryDispatcher(logger *zap.Logger) Dispatcher {
	return &inMemoryDispatcher{
		listeners: make(map[EventType][]EventHandler),
		logger:    logger,
	}
}

// Publish synchronously invokes handlers and returns the first failure.
func (d *inMemoryDispatcher) Publish(ctx context.Context, event Event) error {
	for _, handler := range d.handlers(event.Type) {
		if err := handler(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

// PublishAsync invokes handlers on a fresh goroutine. Failures are logged and
// never reach the caller; there are no retries.
func (d *inMemoryDispatcher) PublishAsync(event Event) {
	handlers := d.handlers(event.Type)
	go func() {
		ctx := context.Background()
		for _, handler := range handlers {
			if err := handler(ctx, event); err != nil {
				d.logger.Error("async event handler failed",
					zap.String("event_type", string(event.Type)),
					zap.String("ticket_id", event.TicketID),
					zap.Error(err))
			}
		}
	}()
}

// Subscribe registers a handler for the given event type.
func (d *inMemoryDispatcher) Subscribe(eventType EventType, handler EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners[eventType] = append(d.listeners[eventType], handler)
}

func (d *inMemoryDispatcher) handlers(eventType EventType) []EventHandler {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]EventHandler{}, d.listeners[eventType]...)
}
