// Package events is the audit sink notified after successful writes.
// Publishing is fire-and-forget: services never block on the sink and a
// full buffer drops the event with a warning instead of failing the
// originating request.
package events

import (
	"context"
	"time"

	"github.com/szrnka-peter/give-my-secret/internal/logging"
	"github.com/szrnka-peter/give-my-secret/internal/server/models"
	eventsrepo "github.com/szrnka-peter/give-my-secret/internal/server/repositories/events"
)

// Publisher accepts audit events.
type Publisher interface {
	Publish(ctx context.Context, event models.Event)
}

// AsyncPublisher buffers events on a channel and persists them from a
// dedicated worker goroutine.
type AsyncPublisher struct {
	repo   eventsrepo.Repository
	ch     chan models.Event
	logger logging.Logger
}

func NewAsyncPublisher(repo eventsrepo.Repository, buffer int, logger logging.Logger) *AsyncPublisher {
	return &AsyncPublisher{
		repo:   repo,
		ch:     make(chan models.Event, buffer),
		logger: logger,
	}
}

// Publish enqueues the event without blocking.
func (p *AsyncPublisher) Publish(ctx context.Context, event models.Event) {
	if event.CreationDate.IsZero() {
		event.CreationDate = time.Now()
	}

	select {
	case p.ch <- event:
	default:
		p.logger.Warn(ctx, "audit event dropped, buffer full",
			"user_id", event.UserID, "target", event.Target, "operation", event.Operation)
	}
}

// Run persists queued events until the context is cancelled.
func (p *AsyncPublisher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-p.ch:
			if err := p.repo.Save(ctx, &event); err != nil {
				p.logger.Error(ctx, "error saving audit event", "error", err.Error())
			}
		}
	}
}

// NopPublisher discards all events. Used in tests and in tools that do
// not need an audit trail.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, models.Event) {}
