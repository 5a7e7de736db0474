package notify

import (
	"context"
	"time"

	"seatbook/pkg/model"
)

// Topic names for the booking event stream.
const (
	TopicBookingEvents = "seatbook.bookings"
	TopicBookingDLQ    = "seatbook.bookings.dlq"

	EventBookingCreated   = "booking.created"
	EventBookingConfirmed = "booking.confirmed"
)

// BookingEvent is the payload published for created and confirmed bookings.
// The notifier service renders it into the outbound email text.
type BookingEvent struct {
	BookingID      string `json:"booking_id"`
	InternID       string `json:"intern_id"`
	InternName     string `json:"intern_name"`
	Email          string `json:"email"`
	SeatNumber     int    `json:"seat_number"`
	Date           string `json:"date"`
	SpecialRequest string `json:"special_request,omitempty"`
}

// NewBookingEvent flattens a booking and its owner into an event payload.
func NewBookingEvent(booking *model.Booking, intern *model.Intern) BookingEvent {
	return BookingEvent{
		BookingID:      booking.ID,
		InternID:       intern.InternID,
		InternName:     intern.FullName(),
		Email:          intern.Email,
		SeatNumber:     booking.SeatNumber,
		Date:           booking.Date.UTC().Format("2006-01-02"),
		SpecialRequest: booking.SpecialRequest,
	}
}

// Notifier publishes booking lifecycle events. Implementations are
// fire-and-forget: failures are logged by the implementation and never
// propagate into the booking flow.
type Notifier interface {
	BookingCreated(ctx context.Context, event BookingEvent)
	BookingConfirmed(ctx context.Context, event BookingEvent)
}

// publishTimeout bounds the detached publish so a stuck broker cannot pin
// goroutines forever.
const publishTimeout = 10 * time.Second
