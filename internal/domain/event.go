package domain

import "time"

type Category string

const (
	CategoryTechnical   Category = "Technical"
	CategoryCultural    Category = "Cultural"
	CategorySports      Category = "Sports"
	CategoryWorkshop    Category = "Workshop"
	CategorySeminar     Category = "Seminar"
	CategoryCompetition Category = "Competition"
	CategoryOther       Category = "Other"
)

var Categories = []Category{
	CategoryTechnical,
	CategoryCultural,
	CategorySports,
	CategoryWorkshop,
	CategorySeminar,
	CategoryCompetition,
	CategoryOther,
}

type EventStatus string

const (
	StatusUpcoming  EventStatus = "upcoming"
	StatusOngoing   EventStatus = "ongoing"
	StatusCompleted EventStatus = "completed"
	StatusCancelled EventStatus = "cancelled"
)

var Statuses = []EventStatus{StatusUpcoming, StatusOngoing, StatusCompleted, StatusCancelled}

const (
	DefaultMaxParticipants = 100
	DefaultImage           = "default-event.jpg"

	MaxTitleLength       = 100
	MaxDescriptionLength = 2000
)

type Event struct {
	ID              uint           `json:"id"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Category        Category       `json:"category"`
	Date            time.Time      `json:"date"`
	Time            string         `json:"time"`
	Venue           string         `json:"venue"`
	Organizer       UserSummary    `json:"organizer"`
	MaxParticipants int            `json:"maxParticipants"`
	Status          EventStatus    `json:"status"`
	Image           string         `json:"image"`
	Registrations   []Registration `json:"registrations"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// SpotsLeft is the number of registrations the event can still take.
func (e Event) SpotsLeft() int {
	return e.MaxParticipants - len(e.Registrations)
}

type Registration struct {
	User         UserSummary `json:"user"`
	RegisteredAt time.Time   `json:"registeredAt"`
}

// EventFilter holds the optional listing constraints. An empty field places
// no constraint on the result.
type EventFilter struct {
	Category Category
	Status   EventStatus
	Search   string
}

// EventPatch carries the fields of an update. Nil fields keep their value.
type EventPatch struct {
	Title           *string
	Description     *string
	Category        *Category
	Date            *time.Time
	Time            *string
	Venue           *string
	MaxParticipants *int
	Status          *EventStatus
	Image           *string
}

// Apply returns a copy of e with every non-nil patch field written over it.
func (p EventPatch) Apply(e Event) Event {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Time != nil {
		e.Time = *p.Time
	}
	if p.Venue != nil {
		e.Venue = *p.Venue
	}
	if p.MaxParticipants != nil {
		e.MaxParticipants = *p.MaxParticipants
	}
	if p.Status != nil {
		e.Status = *p.Status
	}
	if p.Image != nil {
		e.Image = *p.Image
	}

	return e
}
