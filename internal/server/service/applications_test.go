package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/jobtracker/internal/models"
	"github.com/iudanet/jobtracker/internal/server/storage"
)

func createTestUser(t *testing.T, tr *Tracker, email string) *models.User {
	t.Helper()
	user, err := tr.CreateUser(context.Background(), email, "secret1", "Test", "User")
	require.NoError(t, err)
	return user
}

func TestApplicationService_CreateApplication(t *testing.T) {
	ctx := context.Background()
	tr, _ := setupTestTracker(t)
	user := createTestUser(t, tr, "create@example.com")

	tests := []struct {
		wantError  error
		name       string
		in         models.NewApplication
		wantStatus models.ApplicationStatus
		wantSource string
	}{
		{
			name:       "defaults applied",
			in:         models.NewApplication{JobTitle: "Go Dev", CompanyName: "Acme"},
			wantStatus: models.StatusApplied,
			wantSource: models.DefaultSource,
		},
		{
			name: "explicit status and source",
			in: models.NewApplication{
				JobTitle:    "SRE",
				CompanyName: "Initech",
				Status:      models.StatusInterviewing,
				Source:      "linkedin",
				JobURL:      strPtr("https://example.com/job/7"),
			},
			wantStatus: models.StatusInterviewing,
			wantSource: "linkedin",
		},
		{
			name:      "missing title",
			in:        models.NewApplication{CompanyName: "Acme"},
			wantError: ErrInvalidInput,
		},
		{
			name:      "unknown status",
			in:        models.NewApplication{JobTitle: "Go Dev", CompanyName: "Acme", Status: "ghosted"},
			wantError: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := tr.CreateApplication(ctx, user.ID, tt.in)
			if tt.wantError != nil {
				assert.ErrorIs(t, err, tt.wantError)
				assert.Zero(t, id)
				return
			}
			require.NoError(t, err)

			app, err := tr.GetApplication(ctx, id, user.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, app.Status)
			assert.Equal(t, tt.wantSource, app.Source)
			assert.Equal(t, testStart, app.ApplicationDate)

			history, err := tr.GetHistory(ctx, id, user.ID)
			require.NoError(t, err)
			require.Len(t, history, 1)
			assert.Equal(t, tt.wantStatus, history[0].Status)
			require.NotNil(t, history[0].Notes)
			assert.Equal(t, "Application created", *history[0].Notes)
		})
	}
}

func TestApplicationService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	tr, clock := setupTestTracker(t)
	owner := createTestUser(t, tr, "owner@example.com")
	stranger := createTestUser(t, tr, "stranger@example.com")

	id, err := tr.CreateApplication(ctx, owner.ID, models.NewApplication{JobTitle: "Go Dev", CompanyName: "Acme"})
	require.NoError(t, err)

	clock.Advance(24 * time.Hour)
	require.NoError(t, tr.UpdateStatus(ctx, id, owner.ID, models.StatusInterviewing, strPtr("onsite next week")))

	history, err := tr.GetHistory(ctx, id, owner.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, models.StatusInterviewing, history[0].Status)
	assert.Equal(t, testStart.Add(24*time.Hour), history[0].ChangedAt)
	assert.Equal(t, models.StatusApplied, history[1].Status)

	// Не владелец: not found, история не меняется
	err = tr.UpdateStatus(ctx, id, stranger.ID, models.StatusRejected, nil)
	assert.ErrorIs(t, err, storage.ErrApplicationNotFound)

	history, err = tr.GetHistory(ctx, id, owner.ID)
	require.NoError(t, err)
	assert.Len(t, history, 2)

	err = tr.UpdateStatus(ctx, id, owner.ID, "unknown", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestApplicationService_NotFoundAndNotOwnedLookAlike(t *testing.T) {
	ctx := context.Background()
	tr, _ := setupTestTracker(t)
	owner := createTestUser(t, tr, "a@example.com")
	stranger := createTestUser(t, tr, "b@example.com")

	id, err := tr.CreateApplication(ctx, owner.ID, models.NewApplication{JobTitle: "Go Dev", CompanyName: "Acme"})
	require.NoError(t, err)

	_, errForeign := tr.GetApplication(ctx, id, stranger.ID)
	_, errMissing := tr.GetApplication(ctx, id+1000, stranger.ID)

	assert.ErrorIs(t, errForeign, storage.ErrApplicationNotFound)
	assert.ErrorIs(t, errMissing, storage.ErrApplicationNotFound)

	foreignHistory, err := tr.GetHistory(ctx, id, stranger.ID)
	require.NoError(t, err)
	assert.Empty(t, foreignHistory)
}

func TestApplicationService_UpdateApplication(t *testing.T) {
	ctx := context.Background()
	tr, _ := setupTestTracker(t)
	owner := createTestUser(t, tr, "upd@example.com")
	stranger := createTestUser(t, tr, "upd2@example.com")

	id, err := tr.CreateApplication(ctx, owner.ID, models.NewApplication{JobTitle: "Go Dev", CompanyName: "Acme"})
	require.NoError(t, err)

	require.NoError(t, tr.UpdateApplication(ctx, id, owner.ID, models.ApplicationUpdate{
		SalaryRange: strPtr("100k-120k"),
		Source:      strPtr("referral"),
	}))

	app, err := tr.GetApplication(ctx, id, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "100k-120k", *app.SalaryRange)
	assert.Equal(t, "referral", app.Source)
	assert.Equal(t, models.StatusApplied, app.Status)

	assert.NoError(t, tr.UpdateApplication(ctx, id, owner.ID, models.ApplicationUpdate{}))
	assert.ErrorIs(t, tr.UpdateApplication(ctx, id, stranger.ID, models.ApplicationUpdate{}), storage.ErrApplicationNotFound)
	assert.ErrorIs(t, tr.UpdateApplication(ctx, id, owner.ID, models.ApplicationUpdate{JobTitle: strPtr(" ")}), ErrInvalidInput)
}

func TestApplicationService_DeleteApplication(t *testing.T) {
	ctx := context.Background()
	tr, _ := setupTestTracker(t)
	owner := createTestUser(t, tr, "del@example.com")

	id, err := tr.CreateApplication(ctx, owner.ID, models.NewApplication{JobTitle: "Go Dev", CompanyName: "Acme"})
	require.NoError(t, err)
	require.NoError(t, tr.UpdateStatus(ctx, id, owner.ID, models.StatusRejected, nil))

	require.NoError(t, tr.DeleteApplication(ctx, id, owner.ID))

	_, err = tr.GetApplication(ctx, id, owner.ID)
	assert.ErrorIs(t, err, storage.ErrApplicationNotFound)

	history, err := tr.GetHistory(ctx, id, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, history)

	assert.ErrorIs(t, tr.DeleteApplication(ctx, id, owner.ID), storage.ErrApplicationNotFound)
}

func TestApplicationService_ListApplications(t *testing.T) {
	ctx := context.Background()
	tr, clock := setupTestTracker(t)
	user := createTestUser(t, tr, "list@example.com")

	first, err := tr.CreateApplication(ctx, user.ID, models.NewApplication{JobTitle: "One", CompanyName: "A"})
	require.NoError(t, err)
	clock.Advance(time.Hour)
	second, err := tr.CreateApplication(ctx, user.ID, models.NewApplication{JobTitle: "Two", CompanyName: "B"})
	require.NoError(t, err)
	require.NoError(t, tr.UpdateStatus(ctx, first, user.ID, models.StatusWithdrawn, nil))

	apps, err := tr.ListApplications(ctx, user.ID, nil)
	require.NoError(t, err)
	require.Len(t, apps, 2)
	assert.Equal(t, second, apps[0].ID)
	assert.Equal(t, first, apps[1].ID)

	withdrawn := models.StatusWithdrawn
	apps, err = tr.ListApplications(ctx, user.ID, &withdrawn)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, first, apps[0].ID)

	bogus := models.ApplicationStatus("bogus")
	_, err = tr.ListApplications(ctx, user.ID, &bogus)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestApplicationService_GetStats(t *testing.T) {
	ctx := context.Background()
	tr, clock := setupTestTracker(t)
	user := createTestUser(t, tr, "stats@example.com")

	// Одна заявка в прошлом месяце
	clock.Advance(-30 * 24 * time.Hour)
	_, err := tr.CreateApplication(ctx, user.ID, models.NewApplication{JobTitle: "Old", CompanyName: "A"})
	require.NoError(t, err)
	clock.Advance(30 * 24 * time.Hour)

	statuses := []models.ApplicationStatus{models.StatusInterviewing, models.StatusAccepted, models.StatusRejected}
	for _, status := range statuses {
		_, err := tr.CreateApplication(ctx, user.ID, models.NewApplication{JobTitle: "Job", CompanyName: "B", Status: status})
		require.NoError(t, err)
	}

	stats, err := tr.GetStats(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 3, stats.ThisMonth)
	assert.Equal(t, 50.0, stats.ResponseRate)
	assert.Equal(t, map[models.ApplicationStatus]int{
		models.StatusApplied:      1,
		models.StatusInterviewing: 1,
		models.StatusAccepted:     1,
		models.StatusRejected:     1,
	}, stats.StatusBreakdown)
}

func TestApplicationService_GetStats_Empty(t *testing.T) {
	tr, _ := setupTestTracker(t)
	user := createTestUser(t, tr, "empty@example.com")

	stats, err := tr.GetStats(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Zero(t, stats.Total)
	assert.Zero(t, stats.ThisMonth)
	assert.Zero(t, stats.ResponseRate)
	assert.Empty(t, stats.StatusBreakdown)
}

func TestResponseRate(t *testing.T) {
	tests := []struct {
		breakdown map[models.ApplicationStatus]int
		name      string
		total     int
		want      float64
	}{
		{name: "no applications", breakdown: map[models.ApplicationStatus]int{}, total: 0, want: 0},
		{name: "one of three", breakdown: map[models.ApplicationStatus]int{models.StatusInterviewing: 1, models.StatusApplied: 2}, total: 3, want: 33.3},
		{name: "two of three", breakdown: map[models.ApplicationStatus]int{models.StatusAccepted: 2, models.StatusApplied: 1}, total: 3, want: 66.7},
		{name: "all responded", breakdown: map[models.ApplicationStatus]int{models.StatusAccepted: 5}, total: 5, want: 100},
		{name: "tie rounds down to even", breakdown: map[models.ApplicationStatus]int{models.StatusInterviewing: 1, models.StatusApplied: 15}, total: 16, want: 6.2},
		{name: "tie five of sixteen", breakdown: map[models.ApplicationStatus]int{models.StatusInterviewing: 3, models.StatusAccepted: 2, models.StatusRejected: 11}, total: 16, want: 31.2},
		{name: "tie rounds up to even", breakdown: map[models.ApplicationStatus]int{models.StatusAccepted: 3, models.StatusApplied: 13}, total: 16, want: 18.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, responseRate(tt.breakdown, tt.total))
		})
	}
}

func TestMonthStart(t *testing.T) {
	// 23:30 31 марта в UTC-5 это уже 1 апреля по UTC
	loc := time.FixedZone("UTC-5", -5*60*60)
	local := time.Date(2025, time.March, 31, 23, 30, 0, 0, loc)

	assert.Equal(t, time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC), monthStart(local))
	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), monthStart(testStart))
}
