package service_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/festflow/festflow-api/internal/db"
	"github.com/festflow/festflow-api/internal/domain"
	"github.com/festflow/festflow-api/internal/pkg/jwthelper"
	"github.com/festflow/festflow-api/internal/repository"
	"github.com/festflow/festflow-api/internal/repository/dao"
	"github.com/festflow/festflow-api/internal/service"
)

type fixture struct {
	auth          *service.AuthService
	users         *service.UserService
	events        *service.EventService
	registrations *service.RegistrationService
	tokens        *jwthelper.Manager
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	gdb, err := db.OpenSQLite(fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	require.NoError(t, dao.InitTables(gdb))
	t.Cleanup(func() {
		_ = db.Close(gdb)
	})

	userRepo := repository.NewUserRepository(dao.NewUserDAO(gdb))
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(gdb))
	tokens := jwthelper.NewManager("test-key", time.Hour, "festflow")

	return fixture{
		auth:          service.NewAuthService(userRepo, tokens),
		users:         service.NewUserService(userRepo),
		events:        service.NewEventService(eventRepo),
		registrations: service.NewRegistrationService(eventRepo),
		tokens:        tokens,
	}
}

func (f fixture) register(t *testing.T, email string) domain.User {
	t.Helper()

	user, _, err := f.auth.Register(context.Background(), domain.User{
		Name:     strings.Split(email, "@")[0],
		Email:    email,
		Password: "password1",
		College:  "NIT",
	})
	require.NoError(t, err)

	return user
}

func (f fixture) createEvent(t *testing.T, organizerID uint, title string, category domain.Category, date time.Time, capacity int) domain.Event {
	t.Helper()

	event, err := f.events.CreateEvent(context.Background(), organizerID, domain.EventPatch{
		Title:           ptr(title),
		Description:     ptr(title + " description"),
		Category:        &category,
		Date:            &date,
		Time:            ptr("10:00"),
		Venue:           ptr("Auditorium"),
		MaxParticipants: &capacity,
	})
	require.NoError(t, err)

	return event
}

func ptr[T any](v T) *T {
	return &v
}

func day(n int) time.Time {
	return time.Date(2026, 12, n, 0, 0, 0, 0, time.UTC)
}
