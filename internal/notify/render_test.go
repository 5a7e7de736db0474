package notify

import (
	"strings"
	"testing"
)

func testEvent() BookingEvent {
	return BookingEvent{
		BookingID:      "65f000000000000000000001",
		InternID:       "INT-042",
		InternName:     "Dana Okafor",
		Email:          "dana.okafor@example.com",
		SeatNumber:     5,
		Date:           "2024-12-26",
		SpecialRequest: "near the window",
	}
}

func TestRenderEmail_Created(t *testing.T) {
	email, err := RenderEmail(EventBookingCreated, testEvent())
	if err != nil {
		t.Fatalf("RenderEmail failed: %v", err)
	}

	if email.To != "dana.okafor@example.com" {
		t.Errorf("to = %q", email.To)
	}
	if !strings.Contains(email.Subject, "Seat 5") || !strings.Contains(email.Subject, "2024-12-26") {
		t.Errorf("subject missing seat/date: %q", email.Subject)
	}

	for _, want := range []string{
		"Hi Dana Okafor,",
		"Booking Details:",
		"Intern ID: INT-042",
		"Date: 2024-12-26",
		"Seat Number: 5",
		"Special Request: near the window",
	} {
		if !strings.Contains(email.Body, want) {
			t.Errorf("body missing %q:\n%s", want, email.Body)
		}
	}
}

func TestRenderEmail_ConfirmedCarriesQRPayload(t *testing.T) {
	event := testEvent()
	email, err := RenderEmail(EventBookingConfirmed, event)
	if err != nil {
		t.Fatalf("RenderEmail failed: %v", err)
	}

	if !strings.Contains(email.Body, QRPayload(event)) {
		t.Errorf("body missing check-in code:\n%s", email.Body)
	}
	if !strings.Contains(email.Body, "QR code") {
		t.Errorf("confirmation body must mention the QR code:\n%s", email.Body)
	}
}

func TestRenderEmail_OmitsEmptySpecialRequest(t *testing.T) {
	event := testEvent()
	event.SpecialRequest = ""

	email, err := RenderEmail(EventBookingCreated, event)
	if err != nil {
		t.Fatalf("RenderEmail failed: %v", err)
	}
	if strings.Contains(email.Body, "Special Request") {
		t.Errorf("body must omit the empty special request line:\n%s", email.Body)
	}
}

func TestRenderEmail_UnknownEventType(t *testing.T) {
	if _, err := RenderEmail("booking.exploded", testEvent()); err == nil {
		t.Fatal("unknown event type must fail")
	}
}

func TestQRPayload(t *testing.T) {
	got := QRPayload(testEvent())
	want := "seatbook:65f000000000000000000001:2024-12-26:5"
	if got != want {
		t.Errorf("QRPayload = %q, want %q", got, want)
	}
}
