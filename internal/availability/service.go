package availability

import (
	"context"
	"errors"
	"time"

	bookingserrors "seatbook/internal/bookings/errors"
	bookingrepo "seatbook/internal/bookings/repository"
	holidayserrors "seatbook/internal/holidays/errors"
	holidayrepo "seatbook/internal/holidays/repository"
	apperrors "seatbook/pkg/errors"
	"seatbook/pkg/model"
)

// Status is the availability verdict for one (date, seat) pair.
type Status string

const (
	StatusAvailable Status = "available"
	StatusBooked    Status = "booked"
	StatusHoliday   Status = "holiday"
)

// Result carries the verdict plus the evidence behind a negative one, so
// callers can build a useful error message without a second lookup.
type Result struct {
	Status  Status         `json:"status"`
	Holiday *model.Holiday `json:"holiday,omitempty"`
	Booking *model.Booking `json:"booking,omitempty"`
}

func (r Result) Available() bool {
	return r.Status == StatusAvailable
}

// Checker answers whether a seat can be booked on a date. Holidays win over
// bookings: a holiday date reports StatusHoliday even if the seat also has a
// booking row.
type Checker interface {
	Check(ctx context.Context, date time.Time, seatNumber int) (Result, error)
}

type checker struct {
	holidays holidayrepo.HolidayRepository
	bookings bookingrepo.BookingRepository
}

func NewChecker(holidays holidayrepo.HolidayRepository, bookings bookingrepo.BookingRepository) Checker {
	return &checker{holidays: holidays, bookings: bookings}
}

func (c *checker) Check(ctx context.Context, date time.Time, seatNumber int) (Result, error) {
	day := model.Day(date)

	holiday, err := c.holidays.FindByDate(ctx, day)
	if err != nil && !errors.Is(err, holidayserrors.ErrNotFound) {
		return Result{}, apperrors.Internal("Failed to check holiday registry", err)
	}
	if holiday != nil {
		return Result{Status: StatusHoliday, Holiday: holiday}, nil
	}

	booking, err := c.bookings.FindBySeatAndDate(ctx, day, seatNumber)
	if err != nil && !errors.Is(err, bookingserrors.ErrNotFound) {
		return Result{}, apperrors.Internal("Failed to check existing bookings", err)
	}
	if booking != nil {
		return Result{Status: StatusBooked, Booking: booking}, nil
	}

	return Result{Status: StatusAvailable}, nil
}
