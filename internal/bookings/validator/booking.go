package validator

import (
	"fmt"
	apperrors "seatbook/pkg/errors"
	"seatbook/pkg/model"

	"github.com/go-playground/validator/v10"
)

// BookingValidator checks struct shape plus the booking business rules that
// do not need storage: seat range and the weekend policy. Holiday and
// double-booking checks stay in the service, where storage is available.
type BookingValidator struct {
	validate  *validator.Validate
	seatCount int
}

func NewBookingValidator(seatCount int) *BookingValidator {
	return &BookingValidator{
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		seatCount: seatCount,
	}
}

func (v *BookingValidator) ValidateCreate(booking *model.Booking) error {
	if err := v.validate.Struct(booking); err != nil {
		return apperrors.Validation("Booking validation failed", fieldErrors(err))
	}

	if booking.SeatNumber < 1 || booking.SeatNumber > v.seatCount {
		return apperrors.Validation(
			fmt.Sprintf("Seat number must be between 1 and %d", v.seatCount),
			map[string]any{"seat_number": booking.SeatNumber},
		)
	}

	if model.IsWeekend(booking.Date) {
		return apperrors.Validation(
			"Bookings are not available on weekends",
			map[string]any{"date": booking.Date.UTC().Format("2006-01-02")},
		)
	}

	if booking.Attendance != "" && !booking.Attendance.Valid() {
		return apperrors.Validation(
			"Attendance must be one of: unset, present, absent",
			map[string]any{"attendance": string(booking.Attendance)},
		)
	}

	return nil
}

// ValidateSeat checks only the seat range, for availability lookups.
func (v *BookingValidator) ValidateSeat(seatNumber int) error {
	if seatNumber < 1 || seatNumber > v.seatCount {
		return apperrors.Validation(
			fmt.Sprintf("Seat number must be between 1 and %d", v.seatCount),
			map[string]any{"seat_number": seatNumber},
		)
	}
	return nil
}

// ValidateAttendance checks an admin-submitted attendance value. Unset is a
// storage default, not something an admin records, so only present and
// absent are accepted here.
func (v *BookingValidator) ValidateAttendance(status model.Attendance) error {
	if status != model.AttendancePresent && status != model.AttendanceAbsent {
		return apperrors.Validation(
			"Attendance must be either present or absent",
			map[string]any{"attendance": string(status)},
		)
	}
	return nil
}

func fieldErrors(err error) map[string]any {
	details := make(map[string]any)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			details[fe.Field()] = fmt.Sprintf("failed on '%s' rule", fe.Tag())
		}
	}
	return details
}
