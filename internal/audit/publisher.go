package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"campusdesk/internal/platform/metrics"
	"campusdesk/pkg/requestcontext"
)

// Publisher records audit events. Emission is best-effort: a failing sink is
// logged and counted but never fails the calling operation.
type Publisher struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics
	fanout  chan<- Event
}

// Option configures optional publisher behavior.
type Option func(*Publisher)

// WithMetrics wires drop counters.
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Publisher) { p.metrics = m }
}

// WithFanout attaches a channel consumed by the Kafka worker. Sends are
// non-blocking; events are dropped when the buffer is full.
func WithFanout(ch chan<- Event) Option {
	return func(p *Publisher) { p.fanout = ch }
}

// NewPublisher constructs a publisher over the given store.
func NewPublisher(store Store, logger *slog.Logger, opts ...Option) *Publisher {
	p := &Publisher{store: store, logger: logger}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Emit records an event. Missing fields are filled from the request context.
func (p *Publisher) Emit(ctx context.Context, actor string, action Action, details map[string]string) {
	event := Event{
		ID:        uuid.NewString(),
		Timestamp: requestcontext.Now(ctx),
		Actor:     actor,
		Action:    action,
		Details:   details,
		Category:  action.Category(),
		RequestID: requestcontext.RequestID(ctx),
		ClientIP:  requestcontext.ClientIP(ctx),
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	if err := p.store.Append(ctx, event); err != nil {
		p.logger.WarnContext(ctx, "audit append failed",
			"action", string(action),
			"actor", actor,
			"error", err.Error(),
		)
	}

	if p.fanout != nil {
		select {
		case p.fanout <- event:
		default:
			p.metrics.IncrementAuditDropped()
		}
	}
}

// List returns recorded events with Timestamp >= since, oldest first.
func (p *Publisher) List(ctx context.Context, since time.Time) ([]Event, error) {
	return p.store.List(ctx, since)
}
