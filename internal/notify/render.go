package notify

import (
	"fmt"
	"strings"
)

// EmailMessage is a rendered notification ready for an outbound mail
// transport.
type EmailMessage struct {
	To      string
	Subject string
	Body    string
}

// QRPayload is the text encoded into the check-in QR code attached to
// confirmation emails. Scanning it at the front desk identifies the booking.
func QRPayload(event BookingEvent) string {
	return fmt.Sprintf("seatbook:%s:%s:%d", event.BookingID, event.Date, event.SeatNumber)
}

// RenderEmail builds the outbound message for a booking event.
func RenderEmail(eventType string, event BookingEvent) (EmailMessage, error) {
	var subject, intro string

	switch eventType {
	case EventBookingCreated:
		subject = fmt.Sprintf("Seat %d reserved for %s", event.SeatNumber, event.Date)
		intro = "Your seat reservation has been received."
	case EventBookingConfirmed:
		subject = fmt.Sprintf("Seat %d confirmed for %s", event.SeatNumber, event.Date)
		intro = "Your seat reservation is confirmed. Present the QR code below at the front desk."
	default:
		return EmailMessage{}, fmt.Errorf("unknown event type: %s", eventType)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", event.InternName)
	fmt.Fprintf(&b, "%s\n\n", intro)
	b.WriteString("Booking Details:\n")
	fmt.Fprintf(&b, "Intern ID: %s\n", event.InternID)
	fmt.Fprintf(&b, "Date: %s\n", event.Date)
	fmt.Fprintf(&b, "Seat Number: %d\n", event.SeatNumber)
	if event.SpecialRequest != "" {
		fmt.Fprintf(&b, "Special Request: %s\n", event.SpecialRequest)
	}
	fmt.Fprintf(&b, "\nCheck-in code: %s\n", QRPayload(event))

	return EmailMessage{
		To:      event.Email,
		Subject: subject,
		Body:    b.String(),
	}, nil
}
