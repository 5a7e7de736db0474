package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	holidayserrors "seatbook/internal/holidays/errors"
	holidayrepo "seatbook/internal/holidays/repository"
	apperrors "seatbook/pkg/errors"
	"seatbook/pkg/logger"
	"seatbook/pkg/model"

	"github.com/go-playground/validator/v10"
)

type HolidayService interface {
	Add(ctx context.Context, holiday *model.Holiday) (*model.Holiday, error)
	List(ctx context.Context) ([]*model.Holiday, error)
	ListFrom(ctx context.Context, asOf time.Time) ([]*model.Holiday, error)
	IsHoliday(ctx context.Context, date time.Time) (*model.Holiday, error)
	Delete(ctx context.Context, id string) error
}

type holidayService struct {
	repo     holidayrepo.HolidayRepository
	validate *validator.Validate
	log      *logger.Logger
}

func NewHolidayService(repo holidayrepo.HolidayRepository, log *logger.Logger) HolidayService {
	return &holidayService{
		repo:     repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
	}
}

// Add registers a blackout date. One holiday per date; a duplicate reports a
// conflict carrying the existing reason so admins can see what collided.
func (s *holidayService) Add(ctx context.Context, holiday *model.Holiday) (*model.Holiday, error) {
	holiday.Date = model.Day(holiday.Date)

	if err := s.validate.Struct(holiday); err != nil {
		return nil, apperrors.Validation("Holiday validation failed", fieldErrors(err))
	}

	if err := s.repo.Create(ctx, holiday); err != nil {
		if errors.Is(err, holidayserrors.ErrDuplicateDate) {
			details := map[string]any{"date": holiday.Date.Format("2006-01-02")}
			if existing, findErr := s.repo.FindByDate(ctx, holiday.Date); findErr == nil {
				details["existing_reason"] = existing.Reason
			}
			return nil, apperrors.Conflict(
				fmt.Sprintf("A holiday is already registered on %s", holiday.Date.Format("2006-01-02")),
			).WithDetails(details)
		}
		return nil, apperrors.Internal("Failed to register holiday", err)
	}

	s.log.Info("Holiday registered",
		"holiday_id", holiday.ID,
		"date", holiday.Date.Format("2006-01-02"),
		"reason", holiday.Reason,
	)

	return holiday, nil
}

func (s *holidayService) List(ctx context.Context) ([]*model.Holiday, error) {
	holidays, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to list holidays", err)
	}
	return holidays, nil
}

// ListFrom returns holidays on or after asOf, for upcoming-holidays views.
func (s *holidayService) ListFrom(ctx context.Context, asOf time.Time) ([]*model.Holiday, error) {
	holidays, err := s.repo.FindFrom(ctx, asOf)
	if err != nil {
		return nil, apperrors.Internal("Failed to list holidays", err)
	}
	return holidays, nil
}

// IsHoliday returns the holiday on the given date, or nil when the date is a
// working day.
func (s *holidayService) IsHoliday(ctx context.Context, date time.Time) (*model.Holiday, error) {
	holiday, err := s.repo.FindByDate(ctx, date)
	if err != nil {
		if errors.Is(err, holidayserrors.ErrNotFound) {
			return nil, nil
		}
		return nil, apperrors.Internal("Failed to look up holiday", err)
	}
	return holiday, nil
}

func (s *holidayService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, holidayserrors.ErrNotFound):
			return apperrors.NotFoundWithID("Holiday", id)
		case errors.Is(err, holidayserrors.ErrInvalidID):
			return apperrors.InvalidInput(fmt.Sprintf("Invalid holiday ID: %s", id))
		default:
			return apperrors.Internal("Failed to delete holiday", err)
		}
	}

	s.log.Info("Holiday removed", "holiday_id", id)
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
