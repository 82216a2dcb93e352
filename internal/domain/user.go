package domain

import "time"

type User struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"-"`
	College  string `json:"college,omitempty"`
	Phone    string `json:"phone,omitempty"`

	// RegisteredEvents is derived from the registrations table on read.
	RegisteredEvents []uint `json:"registeredEvents"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserSummary is the public projection of a user embedded in events.
type UserSummary struct {
	ID      uint   `json:"id"`
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	College string `json:"college,omitempty"`
}
