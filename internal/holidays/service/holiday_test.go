package service

import (
	"context"
	"testing"
	"time"

	holidayserrors "seatbook/internal/holidays/errors"
	apperrors "seatbook/pkg/errors"
	"seatbook/pkg/logger"
	"seatbook/pkg/model"
)

type mockHolidayRepo struct {
	createFunc     func(ctx context.Context, h *model.Holiday) error
	findByDateFunc func(ctx context.Context, date time.Time) (*model.Holiday, error)
	findAllFunc    func(ctx context.Context) ([]*model.Holiday, error)
	findFromFunc   func(ctx context.Context, asOf time.Time) ([]*model.Holiday, error)
	deleteFunc     func(ctx context.Context, id string) error
}

func (m *mockHolidayRepo) Create(ctx context.Context, h *model.Holiday) error {
	return m.createFunc(ctx, h)
}
func (m *mockHolidayRepo) FindByDate(ctx context.Context, date time.Time) (*model.Holiday, error) {
	return m.findByDateFunc(ctx, date)
}
func (m *mockHolidayRepo) FindAll(ctx context.Context) ([]*model.Holiday, error) {
	return m.findAllFunc(ctx)
}
func (m *mockHolidayRepo) FindFrom(ctx context.Context, asOf time.Time) ([]*model.Holiday, error) {
	return m.findFromFunc(ctx, asOf)
}
func (m *mockHolidayRepo) Delete(ctx context.Context, id string) error {
	return m.deleteFunc(ctx, id)
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: logger.ERROR, Format: logger.TEXT, Service: "test"})
}

func TestAdd_Success(t *testing.T) {
	repo := &mockHolidayRepo{
		createFunc: func(_ context.Context, h *model.Holiday) error {
			h.ID = "65f000000000000000000010"
			return nil
		},
	}
	svc := NewHolidayService(repo, testLogger())

	holiday, err := svc.Add(context.Background(), &model.Holiday{
		Date:   time.Date(2024, 12, 25, 18, 0, 0, 0, time.UTC),
		Reason: "Christmas Day",
	})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if holiday.ID == "" {
		t.Error("expected ID to be set")
	}
	if !holiday.Date.Equal(time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("date not normalized to UTC midnight: %v", holiday.Date)
	}
}

func TestAdd_DuplicateDateConflict(t *testing.T) {
	existing := &model.Holiday{
		Date:   time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC),
		Reason: "Christmas Day",
	}
	repo := &mockHolidayRepo{
		createFunc: func(_ context.Context, _ *model.Holiday) error {
			return holidayserrors.ErrDuplicateDate
		},
		findByDateFunc: func(_ context.Context, _ time.Time) (*model.Holiday, error) {
			return existing, nil
		},
	}
	svc := NewHolidayService(repo, testLogger())

	_, err := svc.Add(context.Background(), &model.Holiday{
		Date:   existing.Date,
		Reason: "Office closure",
	})

	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if appErr.Details["existing_reason"] != "Christmas Day" {
		t.Errorf("expected existing reason in details, got %v", appErr.Details)
	}
}

func TestAdd_ValidationFailure(t *testing.T) {
	svc := NewHolidayService(&mockHolidayRepo{}, testLogger())

	tests := []struct {
		name    string
		holiday *model.Holiday
	}{
		{"missing reason", &model.Holiday{Date: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}},
		{"reason too short", &model.Holiday{Date: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Reason: "x"}},
		{"zero date", &model.Holiday{Reason: "New Year"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Add(context.Background(), tt.holiday)
			if apperrors.AsAppError(err).Code != apperrors.CodeValidation {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestIsHoliday(t *testing.T) {
	christmas := time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC)
	repo := &mockHolidayRepo{
		findByDateFunc: func(_ context.Context, date time.Time) (*model.Holiday, error) {
			if date.Equal(christmas) {
				return &model.Holiday{Date: christmas, Reason: "Christmas Day"}, nil
			}
			return nil, holidayserrors.ErrNotFound
		},
	}
	svc := NewHolidayService(repo, testLogger())

	holiday, err := svc.IsHoliday(context.Background(), christmas)
	if err != nil {
		t.Fatalf("IsHoliday failed: %v", err)
	}
	if holiday == nil {
		t.Fatal("expected a holiday on Christmas")
	}

	holiday, err = svc.IsHoliday(context.Background(), christmas.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("IsHoliday failed: %v", err)
	}
	if holiday != nil {
		t.Errorf("expected no holiday, got %v", holiday)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo := &mockHolidayRepo{
		deleteFunc: func(_ context.Context, _ string) error {
			return holidayserrors.ErrNotFound
		},
	}
	svc := NewHolidayService(repo, testLogger())

	err := svc.Delete(context.Background(), "65f000000000000000000011")
	if apperrors.AsAppError(err).Code != apperrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
