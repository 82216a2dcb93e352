package response

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/festflow/festflow-api/internal/domain"
)

func TestNewEvent(t *testing.T) {
	event := domain.Event{
		ID:              7,
		Title:           "Chess Open",
		MaxParticipants: 3,
		Registrations:   []domain.Registration{{User: domain.UserSummary{ID: 2}}},
	}

	raw, err := json.Marshal(NewEvent(event))
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, float64(7), out["id"])
	assert.Equal(t, "Chess Open", out["title"])
	assert.Equal(t, float64(2), out["spotsLeft"])
	assert.NotContains(t, out, "Event")
}

func TestNewEvents(t *testing.T) {
	assert.Empty(t, NewEvents(nil))

	views := NewEvents([]domain.Event{{MaxParticipants: 5}, {MaxParticipants: 1}})
	require.Len(t, views, 2)
	assert.Equal(t, 5, views[0].SpotsLeft)
	assert.Equal(t, 1, views[1].SpotsLeft)
}
