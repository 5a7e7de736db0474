package notify

import (
	"context"

	"seatbook/pkg/logger"
)

// LogNotifier records booking events to the service log instead of the event
// stream. Used when notifications are disabled or no broker is configured.
type LogNotifier struct {
	log *logger.Logger
}

func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) BookingCreated(_ context.Context, event BookingEvent) {
	n.log.Info("Booking created (notifications disabled)",
		"booking_id", event.BookingID,
		"intern_id", event.InternID,
		"seat_number", event.SeatNumber,
		"date", event.Date,
	)
}

func (n *LogNotifier) BookingConfirmed(_ context.Context, event BookingEvent) {
	n.log.Info("Booking confirmed (notifications disabled)",
		"booking_id", event.BookingID,
		"intern_id", event.InternID,
		"seat_number", event.SeatNumber,
		"date", event.Date,
	)
}
