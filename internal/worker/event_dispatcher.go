package worker

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aurumlab/goldtrade/internal/domain/model"
)

// Publisher is the outbound side of the dispatcher.
type Publisher interface {
	Publish(ctx context.Context, event model.InvoiceEvent) error
}

// EventDispatcher fans invoice lifecycle events out to the publisher with a
// bounded buffer and a small worker pool. The ledger is the source of truth;
// a dropped event is logged, never retried at the caller's expense.
type EventDispatcher struct {
	publisher Publisher
	workers   int
	logger    *slog.Logger

	jobs   chan model.InvoiceEvent
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewEventDispatcher constructs the dispatcher worker pool.
func NewEventDispatcher(publisher Publisher, workers, buffer int, logger *slog.Logger) *EventDispatcher {
	if workers <= 0 {
		workers = 1
	}
	if buffer <= 0 {
		buffer = 1
	}
	return &EventDispatcher{
		publisher: publisher,
		workers:   workers,
		logger:    logger,
		jobs:      make(chan model.InvoiceEvent, buffer),
	}
}

// Start launches background publishing.
func (d *EventDispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(runCtx)
	}
}

// Stop waits for all workers to finish.
func (d *EventDispatcher) Stop() {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.mu.Unlock()

	d.wg.Wait()
}

// Enqueue hands an event to the pool without blocking the request path. When
// the buffer is full the event is dropped with a warning.
func (d *EventDispatcher) Enqueue(event model.InvoiceEvent) {
	select {
	case d.jobs <- event:
	default:
		d.logger.Warn("event buffer full, dropping",
			slog.String("order", event.OrderNumber),
			slog.String("state", string(event.State)),
		)
	}
}

func (d *EventDispatcher) worker(ctx context.Context) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-d.jobs:
			if err := d.publisher.Publish(ctx, event); err != nil {
				d.logger.Error("publish invoice event failed",
					slog.String("order", event.OrderNumber),
					slog.String("error", err.Error()),
				)
			}
		}
	}
}
