package audit

import (
	"context"
	"log/slog"

	dErrors "appeal/pkg/domain-errors"
)

// AsyncSink decouples event emission from a slow delivery path (the Kafka
// feed). Append enqueues; Run drains in a background goroutine. A full
// buffer drops the copy with an error rather than blocking a clinical
// request on broker latency.
type AsyncSink struct {
	inbox  chan Event
	sink   Sink
	logger *slog.Logger
}

func NewAsyncSink(sink Sink, buffer int, logger *slog.Logger) *AsyncSink {
	return &AsyncSink{
		inbox:  make(chan Event, buffer),
		sink:   sink,
		logger: logger,
	}
}

func (a *AsyncSink) Append(_ context.Context, event Event) error {
	select {
	case a.inbox <- event:
		return nil
	default:
		return dErrors.New(dErrors.CodeUnavailable, "audit sink backlog full")
	}
}

// Run consumes queued events until ctx is cancelled. Delivery failures are
// logged and skipped; the primary store already holds the event.
func (a *AsyncSink) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-a.inbox:
			if err := a.sink.Append(ctx, event); err != nil {
				a.logger.WarnContext(ctx, "audit sink delivery failed",
					"action", string(event.Action),
					"error", err.Error(),
				)
			}
		}
	}
}
