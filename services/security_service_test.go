package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xxml-lang/xxmlhub/models"
)

func TestRecordUpsertsDailyCounter(t *testing.T) {
	db := openTestDB(t)
	svc := NewSecurityService(db)

	require.NoError(t, svc.Record(models.SecurityEventAuthFailed, "10.0.0.1"))
	require.NoError(t, svc.Record(models.SecurityEventAuthFailed, "10.0.0.1"))
	require.NoError(t, svc.Record(models.SecurityEventAuthFailed, "10.0.0.2"))
	require.NoError(t, svc.Record(models.SecurityEventRateLimited, "10.0.0.1"))

	var events []models.SecurityEvent
	require.NoError(t, db.Order("kind, source").Find(&events).Error)
	require.Len(t, events, 3)

	require.Equal(t, models.SecurityEventAuthFailed, events[0].Kind)
	require.Equal(t, "10.0.0.1", events[0].Source)
	require.EqualValues(t, 2, events[0].Count)
	require.EqualValues(t, 1, events[1].Count)
	require.EqualValues(t, 1, events[2].Count)
}

func TestDashboardElevatedOnly(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, "alice", models.RoleUser)
	mod := createUser(t, db, "mina", models.RoleModerator)
	svc := NewSecurityService(db)

	_, err := svc.Dashboard(0, 7)
	require.ErrorIs(t, err, ErrUnauthenticated)

	_, err = svc.Dashboard(user.ID, 7)
	require.ErrorIs(t, err, ErrForbidden)

	report, err := svc.Dashboard(mod.ID, 7)
	require.NoError(t, err)
	require.Equal(t, 7, report.Days)
	require.Empty(t, report.Totals)
}

func TestDashboardAggregatesByKindAndSource(t *testing.T) {
	db := openTestDB(t)
	mod := createUser(t, db, "mina", models.RoleModerator)
	svc := NewSecurityService(db)

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.Record(models.SecurityEventRateLimited, "10.0.0.1"))
	}
	require.NoError(t, svc.Record(models.SecurityEventRateLimited, "10.0.0.2"))
	require.NoError(t, svc.Record(models.SecurityEventForbidden, "10.0.0.3"))

	// A non-positive window falls back to the 7-day default.
	report, err := svc.Dashboard(mod.ID, 0)
	require.NoError(t, err)
	require.Equal(t, 7, report.Days)

	require.Len(t, report.Totals, 2)
	require.Equal(t, models.SecurityEventRateLimited, report.Totals[0].Kind)
	require.EqualValues(t, 4, report.Totals[0].Count)
	require.Equal(t, models.SecurityEventForbidden, report.Totals[1].Kind)
	require.EqualValues(t, 1, report.Totals[1].Count)

	require.Len(t, report.TopSources, 3)
	require.Equal(t, "10.0.0.1", report.TopSources[0].Source)
	require.EqualValues(t, 3, report.TopSources[0].Count)
}
