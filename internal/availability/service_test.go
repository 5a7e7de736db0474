package availability

import (
	"context"
	"testing"
	"time"

	bookingserrors "seatbook/internal/bookings/errors"
	holidayserrors "seatbook/internal/holidays/errors"
	"seatbook/pkg/model"
)

type stubHolidayRepo struct {
	holidays map[string]*model.Holiday
}

func (s *stubHolidayRepo) Create(_ context.Context, _ *model.Holiday) error { return nil }
func (s *stubHolidayRepo) FindByDate(_ context.Context, date time.Time) (*model.Holiday, error) {
	if h, ok := s.holidays[model.Day(date).Format("2006-01-02")]; ok {
		return h, nil
	}
	return nil, holidayserrors.ErrNotFound
}
func (s *stubHolidayRepo) FindAll(_ context.Context) ([]*model.Holiday, error) { return nil, nil }
func (s *stubHolidayRepo) FindFrom(_ context.Context, _ time.Time) ([]*model.Holiday, error) {
	return nil, nil
}
func (s *stubHolidayRepo) Delete(_ context.Context, _ string) error { return nil }

type stubBookingRepo struct {
	bookings map[string]*model.Booking
}

func bookingKey(date time.Time, seat int) string {
	return model.Day(date).Format("2006-01-02") + "#" + string(rune('0'+seat))
}

func (s *stubBookingRepo) Create(_ context.Context, _ *model.Booking) error { return nil }
func (s *stubBookingRepo) FindByID(_ context.Context, _ string) (*model.Booking, error) {
	return nil, bookingserrors.ErrNotFound
}
func (s *stubBookingRepo) FindBySeatAndDate(_ context.Context, date time.Time, seat int) (*model.Booking, error) {
	if b, ok := s.bookings[bookingKey(date, seat)]; ok {
		return b, nil
	}
	return nil, bookingserrors.ErrNotFound
}
func (s *stubBookingRepo) FindAll(_ context.Context, _ *time.Time, _ int, _ int64) ([]*model.Booking, error) {
	return nil, nil
}
func (s *stubBookingRepo) Count(_ context.Context, _ *time.Time) (int64, error) { return 0, nil }
func (s *stubBookingRepo) FindByIntern(_ context.Context, _ string, _ int, _ int64) ([]*model.Booking, error) {
	return nil, nil
}
func (s *stubBookingRepo) CountByIntern(_ context.Context, _ string) (int64, error) { return 0, nil }
func (s *stubBookingRepo) FindByInternAndRange(_ context.Context, _ string, _, _ *time.Time) ([]*model.Booking, error) {
	return nil, nil
}
func (s *stubBookingRepo) SetConfirmed(_ context.Context, _ string) error { return nil }
func (s *stubBookingRepo) SetAttendance(_ context.Context, _ string, _ model.Attendance) error {
	return nil
}
func (s *stubBookingRepo) Delete(_ context.Context, _ string) error { return nil }

func TestCheck(t *testing.T) {
	christmas := time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC)
	workday := time.Date(2024, 12, 26, 0, 0, 0, 0, time.UTC)

	holidays := &stubHolidayRepo{holidays: map[string]*model.Holiday{
		"2024-12-25": {Date: christmas, Reason: "Christmas Day"},
	}}
	bookings := &stubBookingRepo{bookings: map[string]*model.Booking{
		bookingKey(workday, 5):   {Date: workday, SeatNumber: 5},
		bookingKey(christmas, 5): {Date: christmas, SeatNumber: 5},
	}}

	checker := NewChecker(holidays, bookings)

	tests := []struct {
		name string
		date time.Time
		seat int
		want Status
	}{
		{"free seat on a workday", workday, 9, StatusAvailable},
		{"taken seat on a workday", workday, 5, StatusBooked},
		{"free seat on a holiday", christmas, 9, StatusHoliday},
		{"taken seat on a holiday reports holiday first", christmas, 5, StatusHoliday},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := checker.Check(context.Background(), tt.date, tt.seat)
			if err != nil {
				t.Fatalf("Check failed: %v", err)
			}
			if result.Status != tt.want {
				t.Errorf("status = %q, want %q", result.Status, tt.want)
			}
			if tt.want == StatusHoliday && result.Holiday == nil {
				t.Error("holiday verdict must carry the holiday record")
			}
			if tt.want == StatusBooked && result.Booking == nil {
				t.Error("booked verdict must carry the existing booking")
			}
			if result.Available() != (tt.want == StatusAvailable) {
				t.Errorf("Available() = %v for status %q", result.Available(), result.Status)
			}
		})
	}
}

// Timestamps with a time-of-day component resolve to the same calendar day.
func TestCheck_NormalizesTimeOfDay(t *testing.T) {
	christmas := time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC)
	holidays := &stubHolidayRepo{holidays: map[string]*model.Holiday{
		"2024-12-25": {Date: christmas, Reason: "Christmas Day"},
	}}
	checker := NewChecker(holidays, &stubBookingRepo{bookings: map[string]*model.Booking{}})

	late := time.Date(2024, 12, 25, 23, 45, 0, 0, time.UTC)
	result, err := checker.Check(context.Background(), late, 1)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if result.Status != StatusHoliday {
		t.Errorf("status = %q, want holiday", result.Status)
	}
}
