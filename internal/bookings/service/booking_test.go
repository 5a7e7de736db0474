package service

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"testing"
	"time"

	"seatbook/internal/availability"
	bookingserrors "seatbook/internal/bookings/errors"
	bookingrepo "seatbook/internal/bookings/repository"
	"seatbook/internal/bookings/validator"
	internserrors "seatbook/internal/interns/errors"
	"seatbook/internal/notify"
	apperrors "seatbook/pkg/errors"
	"seatbook/pkg/logger"
	"seatbook/pkg/model"
)

const (
	testInternID = "507f1f77bcf86cd799439011"
	testSeats    = 20
)

type mockBookingRepo struct {
	createFunc               func(ctx context.Context, b *model.Booking) error
	findByIDFunc             func(ctx context.Context, id string) (*model.Booking, error)
	findBySeatAndDateFunc    func(ctx context.Context, date time.Time, seat int) (*model.Booking, error)
	findAllFunc              func(ctx context.Context, date *time.Time, limit int, offset int64) ([]*model.Booking, error)
	countFunc                func(ctx context.Context, date *time.Time) (int64, error)
	findByInternFunc         func(ctx context.Context, internID string, limit int, offset int64) ([]*model.Booking, error)
	countByInternFunc        func(ctx context.Context, internID string) (int64, error)
	findByInternAndRangeFunc func(ctx context.Context, internID string, start, end *time.Time) ([]*model.Booking, error)
	setConfirmedFunc         func(ctx context.Context, id string) error
	setAttendanceFunc        func(ctx context.Context, id string, status model.Attendance) error
	deleteFunc               func(ctx context.Context, id string) error
}

var _ bookingrepo.BookingRepository = (*mockBookingRepo)(nil)

func (m *mockBookingRepo) Create(ctx context.Context, b *model.Booking) error {
	return m.createFunc(ctx, b)
}
func (m *mockBookingRepo) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	return m.findByIDFunc(ctx, id)
}
func (m *mockBookingRepo) FindBySeatAndDate(ctx context.Context, date time.Time, seat int) (*model.Booking, error) {
	return m.findBySeatAndDateFunc(ctx, date, seat)
}
func (m *mockBookingRepo) FindAll(ctx context.Context, date *time.Time, limit int, offset int64) ([]*model.Booking, error) {
	return m.findAllFunc(ctx, date, limit, offset)
}
func (m *mockBookingRepo) Count(ctx context.Context, date *time.Time) (int64, error) {
	return m.countFunc(ctx, date)
}
func (m *mockBookingRepo) FindByIntern(ctx context.Context, internID string, limit int, offset int64) ([]*model.Booking, error) {
	return m.findByInternFunc(ctx, internID, limit, offset)
}
func (m *mockBookingRepo) CountByIntern(ctx context.Context, internID string) (int64, error) {
	return m.countByInternFunc(ctx, internID)
}
func (m *mockBookingRepo) FindByInternAndRange(ctx context.Context, internID string, start, end *time.Time) ([]*model.Booking, error) {
	return m.findByInternAndRangeFunc(ctx, internID, start, end)
}
func (m *mockBookingRepo) SetConfirmed(ctx context.Context, id string) error {
	return m.setConfirmedFunc(ctx, id)
}
func (m *mockBookingRepo) SetAttendance(ctx context.Context, id string, status model.Attendance) error {
	return m.setAttendanceFunc(ctx, id, status)
}
func (m *mockBookingRepo) Delete(ctx context.Context, id string) error {
	return m.deleteFunc(ctx, id)
}

type mockInternRepo struct {
	findByIDFunc func(ctx context.Context, id string) (*model.Intern, error)
}

func (m *mockInternRepo) Create(_ context.Context, _ *model.Intern) error { return nil }
func (m *mockInternRepo) FindByID(ctx context.Context, id string) (*model.Intern, error) {
	return m.findByIDFunc(ctx, id)
}
func (m *mockInternRepo) FindByEmail(_ context.Context, _ string) (*model.Intern, error) {
	return nil, internserrors.ErrNotFound
}
func (m *mockInternRepo) FindAll(_ context.Context, _ int, _ int64) ([]*model.Intern, error) {
	return nil, nil
}
func (m *mockInternRepo) Count(_ context.Context) (int64, error) { return 0, nil }

type mockChecker struct {
	checkFunc func(ctx context.Context, date time.Time, seat int) (availability.Result, error)
}

func (m *mockChecker) Check(ctx context.Context, date time.Time, seat int) (availability.Result, error) {
	return m.checkFunc(ctx, date, seat)
}

type recordingNotifier struct {
	mu        sync.Mutex
	created   []notify.BookingEvent
	confirmed []notify.BookingEvent
}

func (n *recordingNotifier) BookingCreated(_ context.Context, e notify.BookingEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.created = append(n.created, e)
}

func (n *recordingNotifier) BookingConfirmed(_ context.Context, e notify.BookingEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.confirmed = append(n.confirmed, e)
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: logger.ERROR, Format: logger.TEXT, Service: "test"})
}

func testIntern() *model.Intern {
	return &model.Intern{
		ID:        testInternID,
		InternID:  "INT-042",
		FirstName: "Dana",
		LastName:  "Okafor",
		Email:     "dana.okafor@example.com",
	}
}

func availableChecker() *mockChecker {
	return &mockChecker{
		checkFunc: func(_ context.Context, _ time.Time, _ int) (availability.Result, error) {
			return availability.Result{Status: availability.StatusAvailable}, nil
		},
	}
}

func newTestService(repo *mockBookingRepo, checker availability.Checker, notifier notify.Notifier) BookingService {
	interns := &mockInternRepo{
		findByIDFunc: func(_ context.Context, id string) (*model.Intern, error) {
			if id != testInternID {
				return nil, internserrors.ErrNotFound
			}
			return testIntern(), nil
		},
	}
	return NewBookingService(
		repo,
		interns,
		checker,
		validator.NewBookingValidator(testSeats),
		notifier,
		testLogger(),
	)
}

// weekday returns a date guaranteed to be a working day.
func weekday() time.Time {
	// 2024-12-26 is a Thursday.
	return time.Date(2024, 12, 26, 0, 0, 0, 0, time.UTC)
}

func TestCreateBooking_Success(t *testing.T) {
	notifier := &recordingNotifier{}
	repo := &mockBookingRepo{
		createFunc: func(_ context.Context, b *model.Booking) error {
			b.ID = "65f000000000000000000001"
			return nil
		},
	}
	svc := newTestService(repo, availableChecker(), notifier)

	booking := &model.Booking{
		InternID:   testInternID,
		Date:       time.Date(2024, 12, 26, 14, 30, 0, 0, time.FixedZone("CET", 3600)),
		SeatNumber: 5,
	}

	created, err := svc.Create(context.Background(), booking)
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}

	if created.ID == "" {
		t.Error("expected booking ID to be set")
	}
	if created.IsConfirmed {
		t.Error("new booking must start unconfirmed")
	}
	if created.Attendance != model.AttendanceUnset {
		t.Errorf("new booking attendance = %q, want unset", created.Attendance)
	}
	if !created.Date.Equal(time.Date(2024, 12, 26, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("date not normalized to UTC midnight: %v", created.Date)
	}
	if len(notifier.created) != 1 {
		t.Errorf("expected 1 created notification, got %d", len(notifier.created))
	}
}

func TestCreateBooking_WeekendRejected(t *testing.T) {
	repo := &mockBookingRepo{
		createFunc: func(_ context.Context, _ *model.Booking) error {
			t.Fatal("repo must not be reached for a weekend date")
			return nil
		},
	}
	svc := newTestService(repo, availableChecker(), &recordingNotifier{})

	booking := &model.Booking{
		InternID:   testInternID,
		Date:       time.Date(2024, 12, 28, 0, 0, 0, 0, time.UTC), // Saturday
		SeatNumber: 5,
	}

	_, err := svc.Create(context.Background(), booking)
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateBooking_HolidayConflict(t *testing.T) {
	christmas := time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC)
	checker := &mockChecker{
		checkFunc: func(_ context.Context, date time.Time, _ int) (availability.Result, error) {
			if date.Equal(christmas) {
				return availability.Result{
					Status:  availability.StatusHoliday,
					Holiday: &model.Holiday{Date: christmas, Reason: "Christmas Day"},
				}, nil
			}
			return availability.Result{Status: availability.StatusAvailable}, nil
		},
	}
	repo := &mockBookingRepo{
		createFunc: func(_ context.Context, _ *model.Booking) error {
			t.Fatal("repo must not be reached on a holiday")
			return nil
		},
	}
	svc := newTestService(repo, checker, &recordingNotifier{})

	_, err := svc.Create(context.Background(), &model.Booking{
		InternID:   testInternID,
		Date:       christmas,
		SeatNumber: 5,
	})

	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if appErr.HTTPStatus != http.StatusConflict {
		t.Errorf("status = %d, want %d", appErr.HTTPStatus, http.StatusConflict)
	}
	if appErr.Details["reason"] != "Christmas Day" {
		t.Errorf("expected holiday reason in details, got %v", appErr.Details)
	}
}

func TestCreateBooking_SeatAlreadyBooked(t *testing.T) {
	checker := &mockChecker{
		checkFunc: func(_ context.Context, date time.Time, seat int) (availability.Result, error) {
			return availability.Result{
				Status:  availability.StatusBooked,
				Booking: &model.Booking{Date: date, SeatNumber: seat},
			}, nil
		},
	}
	svc := newTestService(&mockBookingRepo{}, checker, &recordingNotifier{})

	_, err := svc.Create(context.Background(), &model.Booking{
		InternID:   testInternID,
		Date:       weekday(),
		SeatNumber: 5,
	})

	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

// A clean availability pre-check does not protect against a concurrent
// writer landing first; the insert itself must surface the conflict.
func TestCreateBooking_RaceLostAfterCleanCheck(t *testing.T) {
	notifier := &recordingNotifier{}
	repo := &mockBookingRepo{
		createFunc: func(_ context.Context, _ *model.Booking) error {
			return bookingserrors.ErrSeatTaken
		},
	}
	svc := newTestService(repo, availableChecker(), notifier)

	_, err := svc.Create(context.Background(), &model.Booking{
		InternID:   testInternID,
		Date:       weekday(),
		SeatNumber: 5,
	})

	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if len(notifier.created) != 0 {
		t.Error("no notification must be sent for a failed booking")
	}
}

// Many goroutines race for the same (date, seat) pair against a store that
// enforces uniqueness the way the database index does. Exactly one wins.
func TestCreateBooking_ConcurrentSameSeat(t *testing.T) {
	var (
		mu    sync.Mutex
		taken = make(map[string]bool)
	)
	repo := &mockBookingRepo{
		createFunc: func(_ context.Context, b *model.Booking) error {
			key := b.Date.Format("2006-01-02") + "#" + strconv.Itoa(b.SeatNumber)
			mu.Lock()
			defer mu.Unlock()
			if taken[key] {
				return bookingserrors.ErrSeatTaken
			}
			taken[key] = true
			b.ID = "65f000000000000000000002"
			return nil
		},
	}
	notifier := &recordingNotifier{}
	svc := newTestService(repo, availableChecker(), notifier)

	const writers = 50
	var (
		wg        sync.WaitGroup
		successes int64
		conflicts int64
		countMu   sync.Mutex
	)

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Create(context.Background(), &model.Booking{
				InternID:   testInternID,
				Date:       weekday(),
				SeatNumber: 7,
			})

			countMu.Lock()
			defer countMu.Unlock()
			if err == nil {
				successes++
				return
			}
			if apperrors.AsAppError(err).Code == apperrors.CodeConflict {
				conflicts++
			}
		}()
	}
	wg.Wait()

	if successes != 1 {
		t.Errorf("successes = %d, want exactly 1", successes)
	}
	if conflicts != writers-1 {
		t.Errorf("conflicts = %d, want %d", conflicts, writers-1)
	}
	if len(notifier.created) != 1 {
		t.Errorf("notifications = %d, want 1", len(notifier.created))
	}
}

func TestConfirm_Idempotent(t *testing.T) {
	stored := &model.Booking{
		ID:         "65f000000000000000000003",
		InternID:   testInternID,
		Date:       weekday(),
		SeatNumber: 3,
		Attendance: model.AttendanceUnset,
	}
	setConfirmedCalls := 0
	repo := &mockBookingRepo{
		findByIDFunc: func(_ context.Context, id string) (*model.Booking, error) {
			snapshot := *stored
			return &snapshot, nil
		},
		setConfirmedFunc: func(_ context.Context, id string) error {
			setConfirmedCalls++
			stored.IsConfirmed = true
			return nil
		},
	}
	notifier := &recordingNotifier{}
	svc := newTestService(repo, availableChecker(), notifier)

	first, err := svc.Confirm(context.Background(), stored.ID)
	if err != nil {
		t.Fatalf("first confirm failed: %v", err)
	}
	if !first.IsConfirmed {
		t.Error("booking must be confirmed after first call")
	}

	second, err := svc.Confirm(context.Background(), stored.ID)
	if err != nil {
		t.Fatalf("second confirm failed: %v", err)
	}
	if !second.IsConfirmed {
		t.Error("booking must stay confirmed")
	}

	if setConfirmedCalls != 1 {
		t.Errorf("SetConfirmed calls = %d, want 1", setConfirmedCalls)
	}
	if len(notifier.confirmed) != 1 {
		t.Errorf("confirmation notifications = %d, want 1", len(notifier.confirmed))
	}
}

func TestConfirm_NotFound(t *testing.T) {
	repo := &mockBookingRepo{
		findByIDFunc: func(_ context.Context, _ string) (*model.Booking, error) {
			return nil, bookingserrors.ErrNotFound
		},
	}
	svc := newTestService(repo, availableChecker(), &recordingNotifier{})

	_, err := svc.Confirm(context.Background(), "65f000000000000000000009")
	if apperrors.AsAppError(err).Code != apperrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSetAttendance_LastWriteWins(t *testing.T) {
	stored := &model.Booking{
		ID:         "65f000000000000000000004",
		InternID:   testInternID,
		Date:       weekday(),
		SeatNumber: 4,
		Attendance: model.AttendanceUnset,
	}
	repo := &mockBookingRepo{
		findByIDFunc: func(_ context.Context, _ string) (*model.Booking, error) {
			snapshot := *stored
			return &snapshot, nil
		},
		setAttendanceFunc: func(_ context.Context, _ string, status model.Attendance) error {
			stored.Attendance = status
			return nil
		},
	}
	svc := newTestService(repo, availableChecker(), &recordingNotifier{})

	for _, status := range []model.Attendance{
		model.AttendancePresent,
		model.AttendanceAbsent,
		model.AttendancePresent,
	} {
		updated, err := svc.SetAttendance(context.Background(), stored.ID, status)
		if err != nil {
			t.Fatalf("SetAttendance(%s) failed: %v", status, err)
		}
		if updated.Attendance != status {
			t.Errorf("attendance = %q, want %q", updated.Attendance, status)
		}
	}

	if stored.Attendance != model.AttendancePresent {
		t.Errorf("final stored attendance = %q, want present", stored.Attendance)
	}
}

func TestSetAttendance_RejectsInvalidValues(t *testing.T) {
	svc := newTestService(&mockBookingRepo{}, availableChecker(), &recordingNotifier{})

	for _, status := range []model.Attendance{model.AttendanceUnset, "late", ""} {
		_, err := svc.SetAttendance(context.Background(), "65f000000000000000000004", status)
		if apperrors.AsAppError(err).Code != apperrors.CodeValidation {
			t.Errorf("SetAttendance(%q): expected validation error, got %v", status, err)
		}
	}
}

func TestCancel_SecondCallNotFound(t *testing.T) {
	deleted := false
	repo := &mockBookingRepo{
		deleteFunc: func(_ context.Context, _ string) error {
			if deleted {
				return bookingserrors.ErrNotFound
			}
			deleted = true
			return nil
		},
	}
	svc := newTestService(repo, availableChecker(), &recordingNotifier{})

	if err := svc.Cancel(context.Background(), "65f000000000000000000005"); err != nil {
		t.Fatalf("first cancel failed: %v", err)
	}

	err := svc.Cancel(context.Background(), "65f000000000000000000005")
	if apperrors.AsAppError(err).Code != apperrors.CodeNotFound {
		t.Fatalf("expected not found on second cancel, got %v", err)
	}
}

func TestCancel_InvalidID(t *testing.T) {
	repo := &mockBookingRepo{
		deleteFunc: func(_ context.Context, id string) error {
			return bookingserrors.ErrInvalidID
		},
	}
	svc := newTestService(repo, availableChecker(), &recordingNotifier{})

	err := svc.Cancel(context.Background(), "not-a-hex-id")
	if apperrors.AsAppError(err).Code != apperrors.CodeInvalidInput {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestAttendanceRecords_RangeValidation(t *testing.T) {
	repo := &mockBookingRepo{
		findByInternAndRangeFunc: func(_ context.Context, _ string, _, _ *time.Time) ([]*model.Booking, error) {
			return []*model.Booking{}, nil
		},
	}
	svc := newTestService(repo, availableChecker(), &recordingNotifier{})

	start := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.AttendanceRecords(context.Background(), testInternID, &start, &end)
	if apperrors.AsAppError(err).Code != apperrors.CodeInvalidInput {
		t.Fatalf("expected invalid input for reversed range, got %v", err)
	}

	_, err = svc.AttendanceRecords(context.Background(), testInternID, &start, nil)
	if apperrors.AsAppError(err).Code != apperrors.CodeInvalidInput {
		t.Fatalf("expected invalid input for half-open range, got %v", err)
	}

	if _, err := svc.AttendanceRecords(context.Background(), testInternID, nil, nil); err != nil {
		t.Fatalf("unbounded query failed: %v", err)
	}
}
