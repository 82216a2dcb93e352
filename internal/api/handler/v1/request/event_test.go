package request

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/festflow/festflow-api/internal/domain"
)

func strPtr(s string) *string {
	return &s
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "2026-03-15", want: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)},
		{in: "2026-03-15T18:30:00+05:30", want: time.Date(2026, 3, 15, 13, 0, 0, 0, time.UTC)},
		{in: "2026-03-15T10:00:00.5Z", want: time.Date(2026, 3, 15, 10, 0, 0, 500000000, time.UTC)},
		{in: "15/03/2026", wantErr: true},
		{in: "tomorrow", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got))
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestEventRequest_Validate(t *testing.T) {
	assert.NoError(t, (&EventRequest{}).Validate())
	assert.NoError(t, (&EventRequest{Title: strPtr("Expo"), Date: strPtr("2026-01-02")}).Validate())

	err := (&EventRequest{Title: strPtr("")}).Validate()
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "title")
	}

	err = (&EventRequest{Date: strPtr("02-01-2026")}).Validate()
	assert.ErrorIs(t, err, errInvalidDate)
}

func TestEventRequest_Patch(t *testing.T) {
	capacity := 40
	req := EventRequest{
		Title:           strPtr("Expo"),
		Category:        strPtr("Technical"),
		Date:            strPtr("2026-01-02"),
		MaxParticipants: &capacity,
	}

	patch := req.Patch()

	require.NotNil(t, patch.Category)
	assert.Equal(t, domain.CategoryTechnical, *patch.Category)
	require.NotNil(t, patch.Date)
	assert.Equal(t, time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), *patch.Date)
	assert.Equal(t, 40, *patch.MaxParticipants)
	assert.Nil(t, patch.Status)
	assert.Nil(t, patch.Venue)
}
