package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/abkoo/ticketdesk/internal/events"
)

// StartAuditWorker subscribes to the full event stream and writes each event
// to the structured log, giving admins a who-did-what trail without a
// separate audit table.
func StartAuditWorker(dispatcher events.Dispatcher, logger *zap.Logger) {
	if dispatcher == nil {
		return
	}

	handler := func(_ context.Context, event events.Event) error {
		logger.Info("audit",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.Int64("actor_id", event.ActorID),
			zap.Time("at", event.Timestamp),
			zap.Any("payload", event.Payload),
		)
		return nil
	}

	for _, eventType := range events.AllEventTypes {
		dispatcher.Subscribe(eventType, handler)
	}
}
