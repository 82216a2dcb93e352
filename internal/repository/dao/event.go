package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrEventNotFound              = errors.New("event not found")
	ErrCapacityBelowRegistrations = errors.New("maxParticipants cannot be lower than the number of registrations")
)

type Event struct {
	ID          uint      `gorm:"primaryKey"`
	Title       string    `gorm:"size:100;not null"`
	Description string    `gorm:"size:2000;not null"`
	Category    string    `gorm:"not null;index:idx_events_date_category,priority:2"`
	Date        time.Time `gorm:"not null;index:idx_events_date_category,priority:1"`
	Time        string    `gorm:"not null"`
	Venue       string    `gorm:"not null"`

	OrganizerID uint `gorm:"not null;index"`
	Organizer   User `gorm:"foreignKey:OrganizerID"`

	MaxParticipants int `gorm:"not null"`
	// RegistrationCount mirrors len(Registrations) and is only touched by
	// the conditional updates in registration.go.
	RegistrationCount int            `gorm:"not null"`
	Registrations     []Registration `gorm:"foreignKey:EventID"`

	Status string `gorm:"not null"`
	Image  string `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

func (d *EventDAO) Insert(ctx context.Context, event Event) (Event, error) {
	event.RegistrationCount = 0

	result := d.db.WithContext(ctx).Omit(clause.Associations).Create(&event)
	if result.Error != nil {
		return Event{}, result.Error
	}

	return d.FindByID(ctx, event.ID)
}

func (d *EventDAO) FindByID(ctx context.Context, id uint) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).
		Preload("Organizer").
		Preload("Registrations", orderRegistrations).
		Preload("Registrations.User").
		First(&event, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

// FindAll lists events by ascending date. Empty arguments place no
// constraint; search is a case-insensitive substring match on title or
// description. SQLite's LOWER only folds ASCII, so stored non-ASCII capitals
// only match case-insensitively on Postgres.
func (d *EventDAO) FindAll(ctx context.Context, category, status, search string) ([]Event, error) {
	query := d.db.WithContext(ctx).
		Preload("Organizer").
		Preload("Registrations", orderRegistrations)

	if category != "" {
		query = query.Where("category = ?", category)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if search != "" {
		pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
		query = query.Where(
			`(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\')`,
			pattern, pattern,
		)
	}

	events := []Event{}
	if result := query.Order("date ASC, id ASC").Find(&events); result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

// Update writes the editable columns of event. The write only goes through
// while the current registration count still fits the new capacity.
func (d *EventDAO) Update(ctx context.Context, event Event) (Event, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Event{}).
			Where("id = ? AND registration_count <= ?", event.ID, event.MaxParticipants).
			Updates(map[string]interface{}{
				"title":            event.Title,
				"description":      event.Description,
				"category":         event.Category,
				"date":             event.Date,
				"time":             event.Time,
				"venue":            event.Venue,
				"max_participants": event.MaxParticipants,
				"status":           event.Status,
				"image":            event.Image,
			})
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			if err := ensureEventExists(tx, event.ID); err != nil {
				return err
			}

			return ErrCapacityBelowRegistrations
		}

		return nil
	})
	if err != nil {
		return Event{}, err
	}

	return d.FindByID(ctx, event.ID)
}

// Delete removes the event together with its registrations.
func (d *EventDAO) Delete(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if result := tx.Where("event_id = ?", id).Delete(&Registration{}); result.Error != nil {
			return result.Error
		}

		result := tx.Delete(&Event{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrEventNotFound
		}

		return nil
	})
}

func ensureEventExists(tx *gorm.DB, id uint) error {
	var count int64
	if result := tx.Model(&Event{}).Where("id = ?", id).Count(&count); result.Error != nil {
		return result.Error
	}
	if count == 0 {
		return ErrEventNotFound
	}

	return nil
}

func orderRegistrations(db *gorm.DB) *gorm.DB {
	return db.Order("registered_at ASC, id ASC")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
