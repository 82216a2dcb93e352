package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/festflow/festflow-api/internal/domain"
	"github.com/festflow/festflow-api/internal/pkg/sanitize"
	"github.com/festflow/festflow-api/internal/repository"
)

var (
	ErrEventNotFound = repository.ErrEventNotFound
	ErrNotOrganizer  = errors.New("not authorized to modify this event")
)

// ValidationError reports an event whose fields break the catalog rules.
// Its message is safe to return to the client.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

type EventRepository interface {
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	FindByID(ctx context.Context, id uint) (domain.Event, error)
	FindAll(ctx context.Context, filter domain.EventFilter) ([]domain.Event, error)
	Update(ctx context.Context, event domain.Event) (domain.Event, error)
	Delete(ctx context.Context, id uint) error
}

type EventService struct {
	repo EventRepository
}

func NewEventService(repo EventRepository) *EventService {
	return &EventService{
		repo: repo,
	}
}

// ListEvents returns the events matching filter by ascending date. Listed
// organizers only carry their name and email.
func (s *EventService) ListEvents(ctx context.Context, filter domain.EventFilter) ([]domain.Event, error) {
	events, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	for i := range events {
		events[i].Organizer.College = ""
	}

	return events, nil
}

func (s *EventService) GetEvent(ctx context.Context, id uint) (domain.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return event, nil
}

// CreateEvent stores a new event owned by organizerID. Fields left nil fall
// back to the catalog defaults.
func (s *EventService) CreateEvent(ctx context.Context, organizerID uint, fields domain.EventPatch) (domain.Event, error) {
	event := fields.Apply(domain.Event{
		MaxParticipants: domain.DefaultMaxParticipants,
		Status:          domain.StatusUpcoming,
		Image:           domain.DefaultImage,
	})
	event.Organizer = domain.UserSummary{ID: organizerID}
	event = trimEvent(event)

	if err := validateEvent(event); err != nil {
		return domain.Event{}, err
	}

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// UpdateEvent merges patch into the event and re-validates the result. The
// organizer never changes.
func (s *EventService) UpdateEvent(ctx context.Context, id, callerID uint, patch domain.EventPatch) (domain.Event, error) {
	event, err := s.ownedEvent(ctx, id, callerID)
	if err != nil {
		return domain.Event{}, err
	}

	updated := trimEvent(patch.Apply(event))
	updated.ID = event.ID
	updated.Organizer = event.Organizer

	if err = validateEvent(updated); err != nil {
		return domain.Event{}, err
	}

	saved, err := s.repo.Update(ctx, updated)
	if err != nil {
		if errors.Is(err, repository.ErrCapacityBelowRegistrations) {
			return domain.Event{}, &ValidationError{Err: repository.ErrCapacityBelowRegistrations}
		}

		return domain.Event{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return saved, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, id, callerID uint) error {
	if _, err := s.ownedEvent(ctx, id, callerID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func (s *EventService) ownedEvent(ctx context.Context, id, callerID uint) (domain.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if !callerOwns(event, callerID) {
		return domain.Event{}, ErrNotOrganizer
	}

	return event, nil
}

// callerOwns is the only ownership check for event mutations.
func callerOwns(event domain.Event, callerID uint) bool {
	return callerID != 0 && event.Organizer.ID == callerID
}

// trimEvent only trims free text. Values are otherwise stored as sent.
func trimEvent(e domain.Event) domain.Event {
	e.Title = strings.TrimSpace(e.Title)
	e.Description = strings.TrimSpace(e.Description)
	e.Time = strings.TrimSpace(e.Time)
	e.Venue = strings.TrimSpace(e.Venue)
	e.Image = strings.TrimSpace(e.Image)
	e.Date = e.Date.UTC()

	return e
}

var (
	categoryValues = toInterfaces(domain.Categories)
	statusValues   = toInterfaces(domain.Statuses)
)

var errContainsHTML = errors.New("must not contain HTML")

// plainText rejects anything the strict policy would rewrite.
var plainText = validation.By(func(value interface{}) error {
	if s, ok := value.(string); ok && sanitize.ContainsMarkup(s) {
		return errContainsHTML
	}
	return nil
})

func validateEvent(e domain.Event) error {
	err := validation.ValidateStruct(&e,
		validation.Field(&e.Title, validation.Required, validation.RuneLength(1, domain.MaxTitleLength), plainText),
		validation.Field(&e.Description, validation.Required, validation.RuneLength(1, domain.MaxDescriptionLength), plainText),
		validation.Field(&e.Category, validation.Required, validation.In(categoryValues...)),
		validation.Field(&e.Date, validation.Required),
		validation.Field(&e.Time, validation.Required, plainText),
		validation.Field(&e.Venue, validation.Required, plainText),
		validation.Field(&e.MaxParticipants, validation.Required, validation.Min(1)),
		validation.Field(&e.Status, validation.Required, validation.In(statusValues...)),
		validation.Field(&e.Image, validation.Required, plainText),
	)
	if err != nil {
		return &ValidationError{Err: err}
	}

	return nil
}

func toInterfaces[T any](values []T) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
