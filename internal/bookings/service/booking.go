package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"seatbook/internal/availability"
	bookingserrors "seatbook/internal/bookings/errors"
	bookingrepo "seatbook/internal/bookings/repository"
	"seatbook/internal/bookings/validator"
	internserrors "seatbook/internal/interns/errors"
	internrepo "seatbook/internal/interns/repository"
	"seatbook/internal/notify"
	apperrors "seatbook/pkg/errors"
	"seatbook/pkg/logger"
	"seatbook/pkg/model"
)

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) (*model.Booking, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	List(ctx context.Context, date *time.Time, limit int, offset int64) ([]*model.Booking, int64, error)
	ListByIntern(ctx context.Context, internID string, limit int, offset int64) ([]*model.Booking, int64, error)
	Confirm(ctx context.Context, id string) (*model.Booking, error)
	SetAttendance(ctx context.Context, id string, status model.Attendance) (*model.Booking, error)
	Cancel(ctx context.Context, id string) error
	AttendanceRecords(ctx context.Context, internID string, start, end *time.Time) ([]*model.Booking, error)
	CheckAvailability(ctx context.Context, date time.Time, seatNumber int) (availability.Result, error)
}

type bookingService struct {
	repo      bookingrepo.BookingRepository
	interns   internrepo.InternRepository
	checker   availability.Checker
	validator *validator.BookingValidator
	notifier  notify.Notifier
	log       *logger.Logger
}

func NewBookingService(
	repo bookingrepo.BookingRepository,
	interns internrepo.InternRepository,
	checker availability.Checker,
	v *validator.BookingValidator,
	notifier notify.Notifier,
	log *logger.Logger,
) BookingService {
	return &bookingService{
		repo:      repo,
		interns:   interns,
		checker:   checker,
		validator: v,
		notifier:  notifier,
		log:       log,
	}
}

// Create reserves a seat for one date. The availability check up front gives
// callers a precise rejection (holiday vs taken seat), but the insert itself
// is the arbiter: under concurrent requests for the same (date, seat) pair
// the unique index lets exactly one insert through and the rest surface as a
// conflict, regardless of what the pre-check saw.
func (s *bookingService) Create(ctx context.Context, booking *model.Booking) (*model.Booking, error) {
	booking.Date = model.Day(booking.Date)
	booking.SpecialRequest = strings.TrimSpace(booking.SpecialRequest)
	if booking.Attendance == "" {
		booking.Attendance = model.AttendanceUnset
	}
	booking.IsConfirmed = false

	if err := s.validator.ValidateCreate(booking); err != nil {
		return nil, err
	}

	intern, err := s.interns.FindByID(ctx, booking.InternID)
	if err != nil {
		if errors.Is(err, internserrors.ErrNotFound) || errors.Is(err, internserrors.ErrInvalidID) {
			return nil, apperrors.NotFoundWithID("Intern", booking.InternID)
		}
		return nil, apperrors.Internal("Failed to load intern", err)
	}

	result, err := s.checker.Check(ctx, booking.Date, booking.SeatNumber)
	if err != nil {
		return nil, err
	}
	switch result.Status {
	case availability.StatusHoliday:
		return nil, apperrors.Conflict(
			fmt.Sprintf("Office is closed on %s: %s",
				booking.Date.Format("2006-01-02"), result.Holiday.Reason),
		).WithDetails(map[string]any{
			"date":   booking.Date.Format("2006-01-02"),
			"reason": result.Holiday.Reason,
		})
	case availability.StatusBooked:
		return nil, seatTakenError(booking.Date, booking.SeatNumber)
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		if errors.Is(err, bookingserrors.ErrSeatTaken) {
			// Lost the race after a clean pre-check.
			return nil, seatTakenError(booking.Date, booking.SeatNumber)
		}
		return nil, apperrors.Internal("Failed to create booking", err)
	}

	s.log.Info("Booking created",
		"booking_id", booking.ID,
		"intern_id", booking.InternID,
		"date", booking.Date.Format("2006-01-02"),
		"seat_number", booking.SeatNumber,
	)

	s.notifier.BookingCreated(ctx, notify.NewBookingEvent(booking, intern))

	return booking, nil
}

func seatTakenError(date time.Time, seatNumber int) *apperrors.AppError {
	return apperrors.Conflict(
		fmt.Sprintf("Seat %d is already booked on %s", seatNumber, date.Format("2006-01-02")),
	).WithDetails(map[string]any{
		"date":        date.Format("2006-01-02"),
		"seat_number": seatNumber,
	})
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLookupError(err, id)
	}
	return booking, nil
}

func (s *bookingService) List(ctx context.Context, date *time.Time, limit int, offset int64) ([]*model.Booking, int64, error) {
	bookings, err := s.repo.FindAll(ctx, date, limit, offset)
	if err != nil {
		return nil, 0, apperrors.Internal("Failed to list bookings", err)
	}

	total, err := s.repo.Count(ctx, date)
	if err != nil {
		return nil, 0, apperrors.Internal("Failed to count bookings", err)
	}

	return bookings, total, nil
}

func (s *bookingService) ListByIntern(ctx context.Context, internID string, limit int, offset int64) ([]*model.Booking, int64, error) {
	bookings, err := s.repo.FindByIntern(ctx, internID, limit, offset)
	if err != nil {
		return nil, 0, apperrors.Internal("Failed to list bookings by intern", err)
	}

	total, err := s.repo.CountByIntern(ctx, internID)
	if err != nil {
		return nil, 0, apperrors.Internal("Failed to count bookings by intern", err)
	}

	return bookings, total, nil
}

// Confirm marks the booking confirmed. The transition is one-way and
// idempotent: confirming an already-confirmed booking succeeds without a
// second write or a second notification.
func (s *bookingService) Confirm(ctx context.Context, id string) (*model.Booking, error) {
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLookupError(err, id)
	}

	if booking.IsConfirmed {
		return booking, nil
	}

	if err := s.repo.SetConfirmed(ctx, id); err != nil {
		return nil, mapLookupError(err, id)
	}
	booking.IsConfirmed = true

	s.log.Info("Booking confirmed", "booking_id", id)

	if intern, err := s.interns.FindByID(ctx, booking.InternID); err == nil {
		s.notifier.BookingConfirmed(ctx, notify.NewBookingEvent(booking, intern))
	} else {
		s.log.Error("Skipping confirmation notification, intern lookup failed",
			"booking_id", id, "intern_id", booking.InternID, "error", err)
	}

	return booking, nil
}

// SetAttendance records the admin's presence marker. Last write wins; there
// is no transition rule between present and absent.
func (s *bookingService) SetAttendance(ctx context.Context, id string, status model.Attendance) (*model.Booking, error) {
	if err := s.validator.ValidateAttendance(status); err != nil {
		return nil, err
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLookupError(err, id)
	}

	if err := s.repo.SetAttendance(ctx, id, status); err != nil {
		return nil, mapLookupError(err, id)
	}
	booking.Attendance = status

	s.log.Info("Attendance recorded", "booking_id", id, "attendance", status)

	return booking, nil
}

// Cancel removes the booking entirely, freeing the (date, seat) pair for
// re-booking. Cancelling twice reports not found on the second call.
func (s *bookingService) Cancel(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapLookupError(err, id)
	}

	s.log.Info("Booking cancelled", "booking_id", id)
	return nil
}

func (s *bookingService) AttendanceRecords(ctx context.Context, internID string, start, end *time.Time) ([]*model.Booking, error) {
	if (start == nil) != (end == nil) {
		return nil, apperrors.InvalidInput("Both start and end dates are required for a range query")
	}
	if start != nil && end.Before(*start) {
		return nil, apperrors.InvalidInput("End date must not be before start date")
	}

	bookings, err := s.repo.FindByInternAndRange(ctx, internID, start, end)
	if err != nil {
		return nil, apperrors.Internal("Failed to load attendance records", err)
	}
	return bookings, nil
}

// CheckAvailability answers the seat lookup without writing anything. The
// answer is advisory: a booking attempt may still lose a race afterwards.
func (s *bookingService) CheckAvailability(ctx context.Context, date time.Time, seatNumber int) (availability.Result, error) {
	if err := s.validator.ValidateSeat(seatNumber); err != nil {
		return availability.Result{}, err
	}
	return s.checker.Check(ctx, date, seatNumber)
}

func mapLookupError(err error, id string) error {
	switch {
	case errors.Is(err, bookingserrors.ErrNotFound):
		return apperrors.NotFoundWithID("Booking", id)
	case errors.Is(err, bookingserrors.ErrInvalidID):
		return apperrors.InvalidInput(fmt.Sprintf("Invalid booking ID: %s", id))
	default:
		return apperrors.Internal("Booking operation failed", err)
	}
}
