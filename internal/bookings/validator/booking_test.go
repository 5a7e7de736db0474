package validator

import (
	"testing"
	"time"

	apperrors "seatbook/pkg/errors"
	"seatbook/pkg/model"
)

const testInternID = "507f1f77bcf86cd799439011"

func validBooking() *model.Booking {
	return &model.Booking{
		InternID:   testInternID,
		Date:       time.Date(2024, 12, 26, 0, 0, 0, 0, time.UTC), // Thursday
		SeatNumber: 5,
		Attendance: model.AttendanceUnset,
	}
}

func TestValidateCreate(t *testing.T) {
	v := NewBookingValidator(20)

	tests := []struct {
		name    string
		mutate  func(b *model.Booking)
		wantErr bool
	}{
		{"valid booking", func(b *model.Booking) {}, false},
		{"missing intern", func(b *model.Booking) { b.InternID = "" }, true},
		{"malformed intern id", func(b *model.Booking) { b.InternID = "not-hex" }, true},
		{"zero date", func(b *model.Booking) { b.Date = time.Time{} }, true},
		{"seat below range", func(b *model.Booking) { b.SeatNumber = 0 }, true},
		{"seat above range", func(b *model.Booking) { b.SeatNumber = 21 }, true},
		{"seat at upper bound", func(b *model.Booking) { b.SeatNumber = 20 }, false},
		{"saturday", func(b *model.Booking) { b.Date = time.Date(2024, 12, 28, 0, 0, 0, 0, time.UTC) }, true},
		{"sunday", func(b *model.Booking) { b.Date = time.Date(2024, 12, 29, 0, 0, 0, 0, time.UTC) }, true},
		{"overlong special request", func(b *model.Booking) {
			for i := 0; i < 501; i++ {
				b.SpecialRequest += "x"
			}
		}, true},
		{"special request at limit", func(b *model.Booking) {
			for i := 0; i < 500; i++ {
				b.SpecialRequest += "x"
			}
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBooking()
			tt.mutate(b)
			err := v.ValidateCreate(b)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCreate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if apperrors.AsAppError(err).Code != apperrors.CodeValidation {
					t.Errorf("expected validation code, got %v", err)
				}
			}
		})
	}
}

func TestValidateSeat(t *testing.T) {
	v := NewBookingValidator(20)

	for seat, wantErr := range map[int]bool{1: false, 20: false, 0: true, -3: true, 21: true} {
		if err := v.ValidateSeat(seat); (err != nil) != wantErr {
			t.Errorf("ValidateSeat(%d) error = %v, wantErr %v", seat, err, wantErr)
		}
	}
}

func TestValidateAttendance(t *testing.T) {
	v := NewBookingValidator(20)

	if err := v.ValidateAttendance(model.AttendancePresent); err != nil {
		t.Errorf("present rejected: %v", err)
	}
	if err := v.ValidateAttendance(model.AttendanceAbsent); err != nil {
		t.Errorf("absent rejected: %v", err)
	}
	if err := v.ValidateAttendance(model.AttendanceUnset); err == nil {
		t.Error("unset must be rejected as an admin submission")
	}
	if err := v.ValidateAttendance("late"); err == nil {
		t.Error("unknown value must be rejected")
	}
}
