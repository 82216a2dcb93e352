package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/festflow/festflow-api/internal/domain"
	"github.com/festflow/festflow-api/internal/repository/dao"
)

var (
	ErrEventNotFound              = dao.ErrEventNotFound
	ErrCapacityBelowRegistrations = dao.ErrCapacityBelowRegistrations
	ErrAlreadyRegistered          = dao.ErrAlreadyRegistered
	ErrNotRegistered              = dao.ErrNotRegistered
	ErrEventFull                  = dao.ErrEventFull
)

type EventDAO interface {
	Insert(ctx context.Context, event dao.Event) (dao.Event, error)
	FindByID(ctx context.Context, id uint) (dao.Event, error)
	FindAll(ctx context.Context, category, status, search string) ([]dao.Event, error)
	Update(ctx context.Context, event dao.Event) (dao.Event, error)
	Delete(ctx context.Context, id uint) error
	AddRegistration(ctx context.Context, eventID, userID uint, registeredAt time.Time) error
	RemoveRegistration(ctx context.Context, eventID, userID uint) error
}

type EventRepository struct {
	dao EventDAO
}

func NewEventRepository(dao EventDAO) *EventRepository {
	return &EventRepository{
		dao: dao,
	}
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(event))
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (domain.Event, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *EventRepository) FindAll(ctx context.Context, filter domain.EventFilter) ([]domain.Event, error) {
	found, err := r.dao.FindAll(ctx, string(filter.Category), string(filter.Status), filter.Search)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	events := make([]domain.Event, len(found))
	for i, e := range found {
		events[i] = r.daoToDomain(e)
	}

	return events, nil
}

func (r *EventRepository) Update(ctx context.Context, event domain.Event) (domain.Event, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(event))
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *EventRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *EventRepository) AddRegistration(ctx context.Context, eventID, userID uint, registeredAt time.Time) error {
	if err := r.dao.AddRegistration(ctx, eventID, userID, registeredAt); err != nil {
		return fmt.Errorf("r.dao.AddRegistration -> %w", err)
	}

	return nil
}

func (r *EventRepository) RemoveRegistration(ctx context.Context, eventID, userID uint) error {
	if err := r.dao.RemoveRegistration(ctx, eventID, userID); err != nil {
		return fmt.Errorf("r.dao.RemoveRegistration -> %w", err)
	}

	return nil
}

func (r *EventRepository) domainToDao(e domain.Event) dao.Event {
	return dao.Event{
		ID:              e.ID,
		Title:           e.Title,
		Description:     e.Description,
		Category:        string(e.Category),
		Date:            e.Date,
		Time:            e.Time,
		Venue:           e.Venue,
		OrganizerID:     e.Organizer.ID,
		MaxParticipants: e.MaxParticipants,
		Status:          string(e.Status),
		Image:           e.Image,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func (r *EventRepository) daoToDomain(e dao.Event) domain.Event {
	organizer := summaryDaoToDomain(e.Organizer)
	organizer.ID = e.OrganizerID

	registrations := make([]domain.Registration, len(e.Registrations))
	for i, reg := range e.Registrations {
		user := summaryDaoToDomain(reg.User)
		user.ID = reg.UserID
		registrations[i] = domain.Registration{
			User:         user,
			RegisteredAt: reg.RegisteredAt,
		}
	}

	return domain.Event{
		ID:              e.ID,
		Title:           e.Title,
		Description:     e.Description,
		Category:        domain.Category(e.Category),
		Date:            e.Date,
		Time:            e.Time,
		Venue:           e.Venue,
		Organizer:       organizer,
		MaxParticipants: e.MaxParticipants,
		Status:          domain.EventStatus(e.Status),
		Image:           e.Image,
		Registrations:   registrations,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}
