package service_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/festflow/festflow-api/internal/domain"
	"github.com/festflow/festflow-api/internal/metrics"
	"github.com/festflow/festflow-api/internal/service"
)

func registrantIDs(e domain.Event) []uint {
	ids := make([]uint, len(e.Registrations))
	for i, r := range e.Registrations {
		ids[i] = r.User.ID
	}
	return ids
}

func TestRegistrationService_SingleSeat(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	organizer := f.register(t, "org@college.edu")
	a := f.register(t, "a@college.edu")
	b := f.register(t, "b@college.edu")
	event := f.createEvent(t, organizer.ID, "Pottery Workshop", domain.CategoryWorkshop, day(15), 1)

	fullBefore := testutil.ToFloat64(metrics.RegistrationsTotal.WithLabelValues(metrics.ActionJoin, metrics.OutcomeFull))

	got, err := f.registrations.Join(ctx, event.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{a.ID}, registrantIDs(got))
	assert.Equal(t, "a@college.edu", got.Registrations[0].User.Email)

	_, err = f.registrations.Join(ctx, event.ID, b.ID)
	assert.ErrorIs(t, err, service.ErrEventFull)
	assert.Equal(t, fullBefore+1, testutil.ToFloat64(metrics.RegistrationsTotal.WithLabelValues(metrics.ActionJoin, metrics.OutcomeFull)))

	got, err = f.registrations.Leave(ctx, event.ID, a.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Registrations)

	got, err = f.registrations.Join(ctx, event.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{b.ID}, registrantIDs(got))
}

func TestRegistrationService_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	organizer := f.register(t, "org@college.edu")
	student := f.register(t, "student@college.edu")
	event := f.createEvent(t, organizer.ID, "Debate", domain.CategoryCompetition, day(16), 10)

	_, err := f.registrations.Leave(ctx, event.ID, student.ID)
	assert.ErrorIs(t, err, service.ErrNotRegistered)

	_, err = f.registrations.Join(ctx, event.ID, student.ID)
	require.NoError(t, err)

	_, err = f.registrations.Join(ctx, event.ID, student.ID)
	assert.ErrorIs(t, err, service.ErrAlreadyRegistered)

	got, err := f.events.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{student.ID}, registrantIDs(got))

	_, err = f.registrations.Join(ctx, 777, student.ID)
	assert.ErrorIs(t, err, service.ErrEventNotFound)

	_, err = f.registrations.Leave(ctx, 777, student.ID)
	assert.ErrorIs(t, err, service.ErrEventNotFound)
}
