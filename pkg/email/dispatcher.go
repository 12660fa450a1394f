package email

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Dispatcher sends mail asynchronously. Enqueue returns immediately; the
// actual send happens on a goroutine with its own timeout, detached from the
// request context so an in-flight response cannot cancel it. Failures are
// logged and dropped; there is no retry queue.
type Dispatcher struct {
	sender  Sender
	logger  *slog.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithDispatchTimeout bounds how long a single send may take.
func WithDispatchTimeout(d time.Duration) DispatcherOption {
	return func(dp *Dispatcher) {
		if d > 0 {
			dp.timeout = d
		}
	}
}

// NewDispatcher wraps sender for fire-and-forget delivery. logger may be nil.
func NewDispatcher(sender Sender, logger *slog.Logger, opts ...DispatcherOption) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}

	d := &Dispatcher{
		sender:  sender,
		logger:  logger,
		timeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Enqueue schedules msg for delivery and returns without waiting.
func (d *Dispatcher) Enqueue(msg Message) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				d.logger.Error("email send panicked",
					slog.String("to", msg.To),
					slog.String("subject", msg.Subject),
					slog.Any("panic", r),
				)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := d.sender.Send(ctx, msg); err != nil {
			d.logger.Error("email send failed",
				slog.String("to", msg.To),
				slog.String("subject", msg.Subject),
				slog.Any("error", err),
			)
		}
	}()
}

// Wait blocks until every enqueued send has finished. Used by graceful
// shutdown and by tests.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
