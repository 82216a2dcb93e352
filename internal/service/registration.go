package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/festflow/festflow-api/internal/domain"
	"github.com/festflow/festflow-api/internal/metrics"
	"github.com/festflow/festflow-api/internal/repository"
)

var (
	ErrAlreadyRegistered = repository.ErrAlreadyRegistered
	ErrNotRegistered     = repository.ErrNotRegistered
	ErrEventFull         = repository.ErrEventFull
)

type RegistrationRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Event, error)
	AddRegistration(ctx context.Context, eventID, userID uint, registeredAt time.Time) error
	RemoveRegistration(ctx context.Context, eventID, userID uint) error
}

type RegistrationService struct {
	repo RegistrationRepository
	now  func() time.Time
}

func NewRegistrationService(repo RegistrationRepository) *RegistrationService {
	return &RegistrationService{
		repo: repo,
		now:  time.Now,
	}
}

// Join registers userID for the event and returns the event as stored
// afterwards. Capacity and uniqueness are enforced by the repository in the
// same transaction as the insert.
func (s *RegistrationService) Join(ctx context.Context, eventID, userID uint) (domain.Event, error) {
	err := s.repo.AddRegistration(ctx, eventID, userID, s.now().UTC())
	metrics.RecordRegistration(metrics.ActionJoin, registrationOutcome(err))
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.AddRegistration -> %w", err)
	}

	return s.reload(ctx, eventID)
}

func (s *RegistrationService) Leave(ctx context.Context, eventID, userID uint) (domain.Event, error) {
	err := s.repo.RemoveRegistration(ctx, eventID, userID)
	metrics.RecordRegistration(metrics.ActionLeave, registrationOutcome(err))
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.RemoveRegistration -> %w", err)
	}

	return s.reload(ctx, eventID)
}

func (s *RegistrationService) reload(ctx context.Context, eventID uint) (domain.Event, error) {
	event, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return event, nil
}

func registrationOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, ErrEventFull):
		return metrics.OutcomeFull
	case errors.Is(err, ErrAlreadyRegistered):
		return metrics.OutcomeDuplicate
	case errors.Is(err, ErrNotRegistered):
		return metrics.OutcomeNotRegistered
	case errors.Is(err, ErrEventNotFound):
		return metrics.OutcomeNotFound
	default:
		return metrics.OutcomeError
	}
}
