package request

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/festflow/festflow-api/internal/domain"
)

var errInvalidDate = errors.New("date: must be a YYYY-MM-DD date or an RFC 3339 timestamp.")

// EventRequest is the body of event create and update. The organizer is not
// part of it; whatever the client sends there is dropped by the decoder.
type EventRequest struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	Category        *string `json:"category"`
	Date            *string `json:"date" example:"2026-03-15"`
	Time            *string `json:"time" example:"10:00 AM"`
	Venue           *string `json:"venue"`
	MaxParticipants *int    `json:"maxParticipants"`
	Status          *string `json:"status"`
	Image           *string `json:"image"`
}

// Validate checks the shape of the body. Business rules such as the
// category enum are enforced by the event service.
func (req *EventRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.NilOrNotEmpty),
		validation.Field(&req.Description, validation.NilOrNotEmpty),
		validation.Field(&req.Category, validation.NilOrNotEmpty),
		validation.Field(&req.Date, validation.NilOrNotEmpty),
		validation.Field(&req.Time, validation.NilOrNotEmpty),
		validation.Field(&req.Venue, validation.NilOrNotEmpty),
		validation.Field(&req.Status, validation.NilOrNotEmpty),
	)
	if err != nil {
		return err
	}

	if req.Date != nil {
		if _, err = ParseDate(*req.Date); err != nil {
			return errInvalidDate
		}
	}

	return nil
}

// Patch converts the request into domain fields. Validate must have passed.
func (req *EventRequest) Patch() domain.EventPatch {
	patch := domain.EventPatch{
		Title:           req.Title,
		Description:     req.Description,
		Time:            req.Time,
		Venue:           req.Venue,
		MaxParticipants: req.MaxParticipants,
		Image:           req.Image,
	}

	if req.Category != nil {
		category := domain.Category(*req.Category)
		patch.Category = &category
	}
	if req.Status != nil {
		status := domain.EventStatus(*req.Status)
		patch.Status = &status
	}
	if req.Date != nil {
		if date, err := ParseDate(*req.Date); err == nil {
			patch.Date = &date
		}
	}

	return patch
}

// ParseDate accepts a calendar date or a full RFC 3339 timestamp and returns
// it in UTC.
func ParseDate(value string) (time.Time, error) {
	for _, layout := range []string{time.DateOnly, time.RFC3339Nano} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, errInvalidDate
}

type EventQuery struct {
	Category string `form:"category"`
	Status   string `form:"status"`
	Search   string `form:"search"`
}

func (q EventQuery) Filter() domain.EventFilter {
	return domain.EventFilter{
		Category: domain.Category(q.Category),
		Status:   domain.EventStatus(q.Status),
		Search:   q.Search,
	}
}
