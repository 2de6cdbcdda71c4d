package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/frahmantamala/attendance-management/internal/core/events"
	"github.com/frahmantamala/attendance-management/pkg/logger"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Event management commands",
	Long:  `Inspect the domain event bus: list event types and publish sample events through the audit log.`,
}

var listEventsCmd = &cobra.Command{
	Use:   "list",
	Short: "List domain event types",
	Run: func(cmd *cobra.Command, args []string) {
		for _, eventType := range events.DomainEventTypes {
			fmt.Println(eventType)
		}
	},
}

var publishEventCmd = &cobra.Command{
	Use:   "publish [event-type]",
	Short: "Publish a sample event",
	Long:  `Publish a sample domain event through the audit log subscriber for debugging.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return publishSampleEvent(cmd.Context(), args[0])
	},
}

var eventUserID string

func sampleEvent(eventType, userID string, at time.Time) (events.Event, error) {
	id := uuid.NewString()
	switch eventType {
	case events.EventTypeAttendanceClockedIn:
		return events.NewAttendanceClockedInEvent(id, userID, at, "ON_TIME"), nil
	case events.EventTypeAttendanceClockedOut:
		return events.NewAttendanceClockedOutEvent(id, userID, at.Add(-8*time.Hour), at), nil
	case events.EventTypeLeaveRequestCreated:
		return events.NewLeaveRequestCreatedEvent(id, userID, "ANNUAL", at), nil
	case events.EventTypeLeaveRequestStatusChange:
		return events.NewLeaveRequestStatusChangedEvent(id, "PENDING", "APPROVED", userID, at), nil
	}
	return nil, fmt.Errorf("unknown event type %q, expected one of %v", eventType, events.DomainEventTypes)
}

func publishSampleEvent(ctx context.Context, eventType string) error {
	lg := logger.LoggerWrapper()
	bus := events.NewEventBus(lg)
	events.RegisterAuditLog(bus, lg)

	event, err := sampleEvent(eventType, eventUserID, time.Now())
	if err != nil {
		return err
	}

	lg.Info("publishing sample event", "event_type", eventType, "event_id", event.EventID())
	return bus.PublishSync(ctx, event)
}

func init() {
	publishEventCmd.Flags().StringVar(&eventUserID, "user-id", "sample-user", "User id carried by the sample event")

	eventCmd.AddCommand(listEventsCmd)
	eventCmd.AddCommand(publishEventCmd)

	rootCmd.AddCommand(eventCmd)
}
