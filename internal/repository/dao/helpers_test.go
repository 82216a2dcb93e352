package dao_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/festflow/festflow-api/internal/db"
	"github.com/festflow/festflow-api/internal/repository/dao"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	gdb, err := db.OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	require.NoError(t, dao.InitTables(gdb))

	t.Cleanup(func() {
		_ = db.Close(gdb)
	})

	return gdb
}

func seedUser(t *testing.T, d *dao.UserDAO, email string) dao.User {
	t.Helper()

	user, err := d.Insert(context.Background(), dao.User{
		Name:     strings.Split(email, "@")[0],
		Email:    email,
		Password: "hash",
		College:  "IIT",
	})
	require.NoError(t, err)

	return user
}

func seedEvent(t *testing.T, d *dao.EventDAO, organizerID uint, title, category string, date time.Time, capacity int) dao.Event {
	t.Helper()

	event, err := d.Insert(context.Background(), dao.Event{
		Title:           title,
		Description:     title + " description",
		Category:        category,
		Date:            date,
		Time:            "10:00",
		Venue:           "Main Hall",
		OrganizerID:     organizerID,
		MaxParticipants: capacity,
		Status:          "upcoming",
		Image:           "default-event.jpg",
	})
	require.NoError(t, err)

	return event
}

func day(n int) time.Time {
	return time.Date(2026, 11, n, 0, 0, 0, 0, time.UTC)
}
