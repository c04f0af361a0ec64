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

func TestUserService_CreateUser(t *testing.T) {
	ctx := context.Background()
	tr, _ := setupTestTracker(t)

	user, err := tr.CreateUser(ctx, "new@example.com", "secret1", "New", "User")
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, "New", user.FirstName)
	assert.Equal(t, "User", user.LastName)
	assert.True(t, user.IsActive)
	assert.Equal(t, testStart, user.CreatedAt)
	assert.Equal(t, user.ID, user.Profile.UserID)
	assert.NotEqual(t, "secret1", user.PasswordHash)
	assert.Len(t, user.Salt, 64)

	authed, err := tr.Authenticate(ctx, "new@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, authed.ID)
}

func TestUserService_CreateUser_Duplicate(t *testing.T) {
	ctx := context.Background()
	tr, _ := setupTestTracker(t)

	first, err := tr.CreateUser(ctx, "dup@example.com", "secret1", "First", "One")
	require.NoError(t, err)

	second, err := tr.CreateUser(ctx, "dup@example.com", "other-pass2", "Second", "Two")
	assert.ErrorIs(t, err, storage.ErrUserAlreadyExists)
	assert.Nil(t, second)

	// Старый пароль и данные не тронуты
	existing, err := tr.Authenticate(ctx, "dup@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, existing.ID)
	assert.Equal(t, "First", existing.FirstName)

	_, err = tr.Authenticate(ctx, "dup@example.com", "other-pass2")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserService_IsEmailRegistered(t *testing.T) {
	ctx := context.Background()
	tr, _ := setupTestTracker(t)

	_, err := tr.CreateUser(ctx, "used@example.com", "secret1", "U", "Sed")
	require.NoError(t, err)

	taken, err := tr.IsEmailRegistered(ctx, "used@example.com")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = tr.IsEmailRegistered(ctx, "free@example.com")
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestUserService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	tr, clock := setupTestTracker(t)

	user, err := tr.CreateUser(ctx, "prof@example.com", "secret1", "Pro", "File")
	require.NoError(t, err)

	clock.Advance(time.Hour)
	skills := []string{"go", "postgres"}
	err = tr.UpdateProfile(ctx, user.ID, models.ProfileUpdate{
		Location: strPtr("Berlin"),
		Skills:   &skills,
	})
	require.NoError(t, err)

	got, err := tr.GetUserByEmail(ctx, "prof@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Berlin", *got.Profile.Location)
	assert.Equal(t, skills, got.Profile.Skills)
	assert.Equal(t, testStart.Add(time.Hour), got.Profile.UpdatedAt)

	// Пустое обновление - успешный no-op
	clock.Advance(time.Hour)
	require.NoError(t, tr.UpdateProfile(ctx, user.ID, models.ProfileUpdate{}))
	got, err = tr.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, testStart.Add(time.Hour), got.Profile.UpdatedAt)
}

func TestUserService_DeactivateUser(t *testing.T) {
	ctx := context.Background()
	tr, _ := setupTestTracker(t)

	user, err := tr.CreateUser(ctx, "off@example.com", "secret1", "Off", "Line")
	require.NoError(t, err)

	changed, err := tr.DeactivateUser(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, changed)

	_, err = tr.GetUserByID(ctx, user.ID)
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
	_, err = tr.GetUserByEmail(ctx, "off@example.com")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)

	changed, err = tr.DeactivateUser(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, changed)
}
