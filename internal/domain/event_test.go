package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEventPatch_Apply(t *testing.T) {
	date := time.Date(2026, 11, 3, 0, 0, 0, 0, time.UTC)
	event := Event{
		ID:              7,
		Title:           "Hackathon",
		Category:        CategoryTechnical,
		MaxParticipants: 50,
		Organizer:       UserSummary{ID: 1},
	}

	title := "Night Hackathon"
	capacity := 80
	patched := EventPatch{Title: &title, Date: &date, MaxParticipants: &capacity}.Apply(event)

	assert.Equal(t, "Night Hackathon", patched.Title)
	assert.Equal(t, date, patched.Date)
	assert.Equal(t, 80, patched.MaxParticipants)
	assert.Equal(t, CategoryTechnical, patched.Category)
	assert.Equal(t, uint(1), patched.Organizer.ID)
	assert.Equal(t, "Hackathon", event.Title, "original must stay untouched")
}

func TestEvent_SpotsLeft(t *testing.T) {
	event := Event{
		MaxParticipants: 3,
		Registrations: []Registration{
			{User: UserSummary{ID: 4}},
			{User: UserSummary{ID: 9}},
		},
	}

	assert.Equal(t, 1, event.SpotsLeft())

	event.MaxParticipants = 2
	assert.Equal(t, 0, event.SpotsLeft())
}
