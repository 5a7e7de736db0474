package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"seatbook/internal/auth"
	internserrors "seatbook/internal/interns/errors"
	internrepo "seatbook/internal/interns/repository"
	"seatbook/pkg/config"
	apperrors "seatbook/pkg/errors"
	"seatbook/pkg/logger"
	"seatbook/pkg/model"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

// Session is the result of a successful signup or login.
type Session struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	Intern    *model.Intern `json:"intern"`
}

type SignupInput struct {
	InternID  string `json:"intern_id" validate:"required,min=1,max=50"`
	FirstName string `json:"first_name" validate:"required,min=1,max=100"`
	LastName  string `json:"last_name" validate:"required,min=1,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
}

type InternService interface {
	Signup(ctx context.Context, input SignupInput) (*Session, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	GetByID(ctx context.Context, id string) (*model.Intern, error)
	List(ctx context.Context, limit int, offset int64) ([]*model.Intern, int64, error)
}

type internService struct {
	repo     internrepo.InternRepository
	cfg      *config.Config
	validate *validator.Validate
	log      *logger.Logger
}

func NewInternService(repo internrepo.InternRepository, cfg *config.Config) InternService {
	return &internService{
		repo:     repo,
		cfg:      cfg,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      cfg.Log,
	}
}

func (s *internService) Signup(ctx context.Context, input SignupInput) (*Session, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, apperrors.Validation("Signup validation failed", fieldErrors(err))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, apperrors.Internal("Failed to hash password", err)
	}

	intern := &model.Intern{
		InternID:     input.InternID,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: string(hash),
	}

	if err := s.repo.Create(ctx, intern); err != nil {
		if errors.Is(err, internserrors.ErrEmailTaken) {
			return nil, apperrors.Conflict("An account with this email already exists")
		}
		return nil, apperrors.Internal("Failed to create intern", err)
	}

	s.log.Info("Intern signed up", "intern_id", intern.InternID, "email", intern.Email)

	return s.newSession(intern)
}

func (s *internService) Login(ctx context.Context, email, password string) (*Session, error) {
	if email == "" || password == "" {
		return nil, apperrors.InvalidInput("Email and password are required")
	}

	intern, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, internserrors.ErrNotFound) {
			// Same response as a bad password, no account enumeration.
			return nil, apperrors.Unauthorized("Invalid email or password")
		}
		return nil, apperrors.Internal("Failed to load intern", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(intern.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.Unauthorized("Invalid email or password")
	}

	s.log.Info("Intern logged in", "intern_id", intern.InternID)

	return s.newSession(intern)
}

func (s *internService) newSession(intern *model.Intern) (*Session, error) {
	token, expiresAt, err := auth.Issue(intern.ID, intern.Email, s.cfg.JWTSecret, s.cfg.SessionTTL)
	if err != nil {
		return nil, apperrors.Internal("Failed to issue session token", err)
	}
	return &Session{Token: token, ExpiresAt: expiresAt, Intern: intern}, nil
}

func (s *internService) GetByID(ctx context.Context, id string) (*model.Intern, error) {
	intern, err := s.repo.FindByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, internserrors.ErrNotFound):
			return nil, apperrors.NotFoundWithID("Intern", id)
		case errors.Is(err, internserrors.ErrInvalidID):
			return nil, apperrors.InvalidInput(fmt.Sprintf("Invalid intern ID: %s", id))
		default:
			return nil, apperrors.Internal("Failed to load intern", err)
		}
	}
	return intern, nil
}

func (s *internService) List(ctx context.Context, limit int, offset int64) ([]*model.Intern, int64, error) {
	interns, err := s.repo.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, 0, apperrors.Internal("Failed to list interns", err)
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, apperrors.Internal("Failed to count interns", err)
	}

	return interns, total, nil
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
