package cmd

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/orgtree/internal/core/events"
)

// newEventBus returns a bus with logging subscribers for seeding progress and
// department changes.
func newEventBus(logger *slog.Logger) *events.EventBus {
	bus := events.NewEventBus(logger)

	bus.Subscribe(events.EventTypeSeedStarted, func(ctx context.Context, event events.Event) error {
		logger.Info("seeding started", "event_id", event.EventID(), "payload", event.Payload())
		return nil
	})
	bus.Subscribe(events.EventTypeSeedBatchInserted, func(ctx context.Context, event events.Event) error {
		if e, ok := event.(*events.SeedBatchInsertedEvent); ok {
			logger.Info("employees inserted", "inserted", e.Inserted, "total", e.Total)
		}
		return nil
	})
	bus.Subscribe(events.EventTypeSeedCompleted, func(ctx context.Context, event events.Event) error {
		logger.Info("seeding completed", "event_id", event.EventID(), "payload", event.Payload())
		return nil
	})

	for _, eventType := range []string{events.EventTypeDepartmentReparent, events.EventTypeDepartmentDeleted} {
		bus.Subscribe(eventType, func(ctx context.Context, event events.Event) error {
			logger.Info("department changed",
				"event_type", event.EventType(),
				"event_id", event.EventID(),
				"payload", event.Payload())
			return nil
		})
	}

	return bus
}

// syncPublisher delivers events before returning so a short-lived command
// logs every event before it exits.
type syncPublisher struct {
	bus    *events.EventBus
	logger *slog.Logger
}

func (p syncPublisher) Publish(ctx context.Context, event events.Event) {
	if err := p.bus.PublishSync(ctx, event); err != nil {
		p.logger.Warn("event delivery failed", "event_type", event.EventType(), "error", err)
	}
}
