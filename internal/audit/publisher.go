package audit

import (
	"context"
	"errors"

	"appeal/pkg/domain"
	"appeal/pkg/requestcontext"
)

// Publisher captures structured audit events. The store is the source of
// truth; extra sinks (e.g. the Kafka feed) receive copies and their failures
// are joined into the returned error rather than masking the primary write.
type Publisher struct {
	store Store
	sinks []Sink
}

func NewPublisher(store Store, sinks ...Sink) *Publisher {
	return &Publisher{store: store, sinks: sinks}
}

// Emit stamps and persists an event. Timestamp and RequestID default from
// the request context when unset.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}

	err := p.store.Append(ctx, event)
	for _, sink := range p.sinks {
		if sinkErr := sink.Append(ctx, event); sinkErr != nil {
			err = errors.Join(err, sinkErr)
		}
	}
	return err
}

// List returns the trail for one child in append order.
func (p *Publisher) List(ctx context.Context, childID domain.ChildID) ([]Event, error) {
	return p.store.ListByChild(ctx, childID)
}
