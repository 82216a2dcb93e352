package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrAlreadyRegistered = errors.New("already registered for this event")
	ErrNotRegistered     = errors.New("not registered for this event")
	ErrEventFull         = errors.New("event is full")
)

type Registration struct {
	ID           uint      `gorm:"primaryKey"`
	EventID      uint      `gorm:"not null;uniqueIndex:uni_registrations_event_user,priority:1"`
	UserID       uint      `gorm:"not null;uniqueIndex:uni_registrations_event_user,priority:2;index"`
	User         User      `gorm:"foreignKey:UserID"`
	RegisteredAt time.Time `gorm:"not null"`
}

// AddRegistration appends userID to the event in a single transaction. The
// capacity check is the conditional increment of registration_count, so two
// concurrent joins for the last seat cannot both succeed. The unique index on
// (event_id, user_id) catches a concurrent double join by the same user.
func (d *EventDAO) AddRegistration(ctx context.Context, eventID, userID uint, registeredAt time.Time) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureEventExists(tx, eventID); err != nil {
			return err
		}

		var existing int64
		result := tx.Model(&Registration{}).
			Where("event_id = ? AND user_id = ?", eventID, userID).
			Count(&existing)
		if result.Error != nil {
			return result.Error
		}
		if existing > 0 {
			return ErrAlreadyRegistered
		}

		result = tx.Model(&Event{}).
			Where("id = ? AND registration_count < max_participants", eventID).
			UpdateColumn("registration_count", gorm.Expr("registration_count + 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrEventFull
		}

		result = tx.Omit(clause.Associations).Create(&Registration{
			EventID:      eventID,
			UserID:       userID,
			RegisteredAt: registeredAt,
		})
		if result.Error != nil {
			if isUniqueViolation(result.Error) {
				return ErrAlreadyRegistered
			}

			return result.Error
		}

		return nil
	})
}

// RemoveRegistration deletes the registration of userID and frees its seat.
func (d *EventDAO) RemoveRegistration(ctx context.Context, eventID, userID uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureEventExists(tx, eventID); err != nil {
			return err
		}

		result := tx.Where("event_id = ? AND user_id = ?", eventID, userID).Delete(&Registration{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotRegistered
		}

		result = tx.Model(&Event{}).
			Where("id = ? AND registration_count > 0", eventID).
			UpdateColumn("registration_count", gorm.Expr("registration_count - 1"))

		return result.Error
	})
}
