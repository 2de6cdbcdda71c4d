package events

import (
	"context"
	"log/slog"
)

// RegisterAuditLog writes one structured log line per domain event.
func RegisterAuditLog(bus *EventBus, logger *slog.Logger) {
	audit := logger.With("component", "audit")
	for _, eventType := range DomainEventTypes {
		bus.Subscribe(eventType, func(ctx context.Context, event Event) error {
			audit.InfoContext(ctx, "domain event",
				"event_id", event.EventID(),
				"event_type", event.EventType(),
				"occurred_at", event.OccurredAt(),
				"payload", event.Payload())
			return nil
		})
	}
}
