package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/jobtracker/internal/models"
	"github.com/iudanet/jobtracker/internal/server/storage"
)

func newTestApplication(userID int64, date time.Time) *models.JobApplication {
	return &models.JobApplication{
		UserID:          userID,
		JobTitle:        "Go Developer",
		CompanyName:     "Acme",
		JobURL:          strPtr("https://jobs.example.com/1"),
		Status:          models.StatusApplied,
		Source:          models.DefaultSource,
		ApplicationDate: date,
	}
}

func TestApplicationStorage_CreateApplication(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user := createTestUser(t, ctx, s, "apps@example.com")
	app := newTestApplication(user.ID, testNow)

	require.NoError(t, s.CreateApplication(ctx, app, models.InitialHistoryNote))
	require.NotZero(t, app.ID)

	got, err := s.GetApplication(ctx, app.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, app, got)

	history, err := s.GetHistory(ctx, app.ID, user.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, models.StatusApplied, history[0].Status)
	require.NotNil(t, history[0].Notes)
	assert.Equal(t, models.InitialHistoryNote, *history[0].Notes)
	assert.Equal(t, testNow, history[0].ChangedAt)
}

func TestApplicationStorage_CreateApplication_InvalidStatus(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user := createTestUser(t, ctx, s, "rollback@example.com")
	app := newTestApplication(user.ID, testNow)
	app.Status = "bogus" // нарушает CHECK constraint

	assert.Error(t, s.CreateApplication(ctx, app, models.InitialHistoryNote))

	var apps, history int
	require.NoError(t, s.DB().QueryRow("SELECT COUNT(*) FROM job_applications").Scan(&apps))
	require.NoError(t, s.DB().QueryRow("SELECT COUNT(*) FROM application_status_history").Scan(&history))
	assert.Zero(t, apps)
	assert.Zero(t, history)
}

func TestApplicationStorage_GetApplication_Ownership(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	owner := createTestUser(t, ctx, s, "owner@example.com")
	other := createTestUser(t, ctx, s, "other@example.com")
	app := newTestApplication(owner.ID, testNow)
	require.NoError(t, s.CreateApplication(ctx, app, models.InitialHistoryNote))

	_, err := s.GetApplication(ctx, app.ID, other.ID)
	assert.ErrorIs(t, err, storage.ErrNotOwner)
	assert.ErrorIs(t, err, storage.ErrApplicationNotFound)

	_, err = s.GetApplication(ctx, app.ID+100, owner.ID)
	assert.ErrorIs(t, err, storage.ErrApplicationNotFound)
	assert.NotErrorIs(t, err, storage.ErrNotOwner)
}

func TestApplicationStorage_ListApplications(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user := createTestUser(t, ctx, s, "list@example.com")
	other := createTestUser(t, ctx, s, "list-other@example.com")

	older := newTestApplication(user.ID, testNow.Add(-48*time.Hour))
	newer := newTestApplication(user.ID, testNow)
	sameTime := newTestApplication(user.ID, testNow)
	foreign := newTestApplication(other.ID, testNow)
	for _, app := range []*models.JobApplication{older, newer, sameTime, foreign} {
		require.NoError(t, s.CreateApplication(ctx, app, models.InitialHistoryNote))
	}
	require.NoError(t, s.UpdateStatus(ctx, older.ID, user.ID, models.StatusRejected, nil, testNow))

	apps, err := s.ListApplications(ctx, user.ID, nil)
	require.NoError(t, err)
	require.Len(t, apps, 3)
	assert.Equal(t, []int64{sameTime.ID, newer.ID, older.ID}, []int64{apps[0].ID, apps[1].ID, apps[2].ID})

	rejected := models.StatusRejected
	apps, err = s.ListApplications(ctx, user.ID, &rejected)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, older.ID, apps[0].ID)

	withdrawn := models.StatusWithdrawn
	apps, err = s.ListApplications(ctx, user.ID, &withdrawn)
	require.NoError(t, err)
	assert.NotNil(t, apps)
	assert.Empty(t, apps)
}

func TestApplicationStorage_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	owner := createTestUser(t, ctx, s, "status@example.com")
	other := createTestUser(t, ctx, s, "status-other@example.com")
	app := newTestApplication(owner.ID, testNow)
	require.NoError(t, s.CreateApplication(ctx, app, models.InitialHistoryNote))

	changedAt := testNow.Add(time.Hour)
	err := s.UpdateStatus(ctx, app.ID, owner.ID, models.StatusInterviewing, strPtr("phone screen"), changedAt)
	require.NoError(t, err)

	got, err := s.GetApplication(ctx, app.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInterviewing, got.Status)
	assert.Equal(t, testNow, got.ApplicationDate)

	history, err := s.GetHistory(ctx, app.ID, owner.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, models.StatusInterviewing, history[0].Status)
	assert.Equal(t, "phone screen", *history[0].Notes)
	assert.Equal(t, changedAt, history[0].ChangedAt)
	assert.Equal(t, models.StatusApplied, history[1].Status)

	// Чужой пользователь: ошибка и никаких изменений
	err = s.UpdateStatus(ctx, app.ID, other.ID, models.StatusRejected, nil, changedAt)
	assert.ErrorIs(t, err, storage.ErrApplicationNotFound)

	history, err = s.GetHistory(ctx, app.ID, owner.ID)
	require.NoError(t, err)
	assert.Len(t, history, 2)
	got, err = s.GetApplication(ctx, app.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInterviewing, got.Status)
}

func TestApplicationStorage_UpdateApplication(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	owner := createTestUser(t, ctx, s, "edit@example.com")
	other := createTestUser(t, ctx, s, "edit-other@example.com")
	app := newTestApplication(owner.ID, testNow)
	require.NoError(t, s.CreateApplication(ctx, app, models.InitialHistoryNote))

	err := s.UpdateApplication(ctx, app.ID, owner.ID, models.ApplicationUpdate{
		Notes:          strPtr("referred by Bob"),
		EmploymentType: strPtr(string(models.EmploymentContract)),
	})
	require.NoError(t, err)

	got, err := s.GetApplication(ctx, app.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "referred by Bob", *got.Notes)
	assert.Equal(t, "contract", *got.EmploymentType)
	assert.Equal(t, "Go Developer", got.JobTitle)
	assert.Equal(t, "https://jobs.example.com/1", *got.JobURL)

	// Пустое обновление после проверки владельца - успех
	assert.NoError(t, s.UpdateApplication(ctx, app.ID, owner.ID, models.ApplicationUpdate{}))
	assert.ErrorIs(t, s.UpdateApplication(ctx, app.ID, other.ID, models.ApplicationUpdate{}), storage.ErrNotOwner)
	assert.ErrorIs(t, s.UpdateApplication(ctx, 777, owner.ID, models.ApplicationUpdate{}), storage.ErrApplicationNotFound)

	err = s.UpdateApplication(ctx, app.ID, other.ID, models.ApplicationUpdate{JobTitle: strPtr("hijacked")})
	assert.ErrorIs(t, err, storage.ErrApplicationNotFound)
	got, err = s.GetApplication(ctx, app.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go Developer", got.JobTitle)
}

func TestApplicationStorage_DeleteApplication(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	owner := createTestUser(t, ctx, s, "del@example.com")
	other := createTestUser(t, ctx, s, "del-other@example.com")
	app := newTestApplication(owner.ID, testNow)
	require.NoError(t, s.CreateApplication(ctx, app, models.InitialHistoryNote))
	require.NoError(t, s.UpdateStatus(ctx, app.ID, owner.ID, models.StatusRejected, nil, testNow))

	assert.ErrorIs(t, s.DeleteApplication(ctx, app.ID, other.ID), storage.ErrApplicationNotFound)

	require.NoError(t, s.DeleteApplication(ctx, app.ID, owner.ID))

	_, err := s.GetApplication(ctx, app.ID, owner.ID)
	assert.ErrorIs(t, err, storage.ErrApplicationNotFound)

	history, err := s.GetHistory(ctx, app.ID, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, history)

	var rows int
	require.NoError(t, s.DB().QueryRow(
		"SELECT COUNT(*) FROM application_status_history WHERE application_id = ?", app.ID,
	).Scan(&rows))
	assert.Zero(t, rows)

	assert.ErrorIs(t, s.DeleteApplication(ctx, app.ID, owner.ID), storage.ErrApplicationNotFound)
}

func TestApplicationStorage_GetHistory_NotOwned(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	owner := createTestUser(t, ctx, s, "hist@example.com")
	other := createTestUser(t, ctx, s, "hist-other@example.com")
	app := newTestApplication(owner.ID, testNow)
	require.NoError(t, s.CreateApplication(ctx, app, models.InitialHistoryNote))

	history, err := s.GetHistory(ctx, app.ID, other.ID)
	require.NoError(t, err)
	assert.NotNil(t, history)
	assert.Empty(t, history)
}

func TestApplicationStorage_Counts(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user := createTestUser(t, ctx, s, "counts@example.com")
	monthStart := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	dates := []time.Time{
		monthStart.Add(-time.Second),
		monthStart,
		testNow,
	}
	for _, d := range dates {
		require.NoError(t, s.CreateApplication(ctx, newTestApplication(user.ID, d), models.InitialHistoryNote))
	}

	apps, err := s.ListApplications(ctx, user.ID, nil)
	require.NoError(t, err)
	require.NoError(t, s.UpdateStatus(ctx, apps[0].ID, user.ID, models.StatusAccepted, nil, testNow))

	counts, err := s.CountByStatus(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, map[models.ApplicationStatus]int{
		models.StatusApplied:  2,
		models.StatusAccepted: 1,
	}, counts)

	since, err := s.CountSince(ctx, user.ID, monthStart)
	require.NoError(t, err)
	assert.Equal(t, 2, since)

	empty, err := s.CountByStatus(ctx, 9999)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
