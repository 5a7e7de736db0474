package notify

import (
	"context"

	"seatbook/pkg/kafka"
	"seatbook/pkg/logger"
	"seatbook/pkg/middleware"
)

// KafkaNotifier publishes booking events to the event stream. It satisfies
// Notifier with fire-and-forget semantics: Publish errors are logged and
// swallowed, so a broker outage degrades notifications without failing
// bookings.
type KafkaNotifier struct {
	producer *kafka.Producer
	source   string
	log      *logger.Logger
}

func NewKafkaNotifier(producer *kafka.Producer, source string, log *logger.Logger) *KafkaNotifier {
	return &KafkaNotifier{producer: producer, source: source, log: log}
}

func (n *KafkaNotifier) BookingCreated(ctx context.Context, event BookingEvent) {
	n.publish(ctx, EventBookingCreated, event)
}

func (n *KafkaNotifier) BookingConfirmed(ctx context.Context, event BookingEvent) {
	n.publish(ctx, EventBookingConfirmed, event)
}

func (n *KafkaNotifier) publish(ctx context.Context, eventType string, event BookingEvent) {
	// Detach from the request context so a completed HTTP request does not
	// cancel the in-flight publish. The request ID survives as the event
	// correlation ID.
	correlationID := middleware.RequestIDFromContext(ctx)

	go func() {
		pubCtx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		msg := kafka.NewMessage().
			WithKey(event.BookingID).
			WithValue(event).
			WithEventType(eventType).
			WithCorrelationID(correlationID).
			WithSource(n.source).
			Build()

		if err := n.producer.Publish(pubCtx, msg); err != nil {
			n.log.Error("Failed to publish booking event",
				"event_type", eventType,
				"booking_id", event.BookingID,
				"error", err,
			)
			return
		}

		n.log.Info("Published booking event",
			"event_type", eventType,
			"booking_id", event.BookingID,
			"seat_number", event.SeatNumber,
			"date", event.Date,
		)
	}()
}

// Close flushes the underlying producer.
func (n *KafkaNotifier) Close() error {
	return n.producer.Close()
}
