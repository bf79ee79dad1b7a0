package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/channel-descriptions-api/internal/models"
	"github.com/yukikurage/channel-descriptions-api/internal/repository"
)

func TestCreateUser(t *testing.T) {
	userRepo := newFakeUserRepo()
	service := NewUserService(userRepo, nil)

	_, err := service.CreateUser("short")
	assert.ErrorIs(t, err, ErrInvalidChannelID)

	user, err := service.CreateUser(testChannelID)
	require.NoError(t, err)
	assert.Equal(t, testChannelID, user.ChannelID)

	_, err = service.CreateUser(testChannelID)
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestDeleteUser_NotFound(t *testing.T) {
	service := NewUserService(newFakeUserRepo(), nil)

	_, err := service.DeleteUser(context.Background(), testChannelID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeleteUser_AlreadyDeleted(t *testing.T) {
	userRepo := newFakeUserRepo()
	require.NoError(t, userRepo.Create(&models.User{ChannelID: testChannelID}))
	deletedAt := time.Now()
	userRepo.users[testChannelID].DeletedAt = &deletedAt
	service := NewUserService(userRepo, nil)

	_, err := service.DeleteUser(context.Background(), testChannelID)
	assert.ErrorIs(t, err, ErrUserAlreadyDeleted)
}

func TestDeleteUser_LostRaceReportsAlreadyDeleted(t *testing.T) {
	userRepo := newFakeUserRepo()
	require.NoError(t, userRepo.Create(&models.User{ChannelID: testChannelID}))
	// The guarded parent update inside the transaction matched nothing:
	// a concurrent delete committed after the read above.
	userRepo.deleteErr = repository.ErrUserDeleteConflict
	service := NewUserService(userRepo, nil)

	_, err := service.DeleteUser(context.Background(), testChannelID)
	assert.ErrorIs(t, err, ErrUserAlreadyDeleted)
}

func TestDeleteUser_Success(t *testing.T) {
	userRepo := newFakeUserRepo()
	require.NoError(t, userRepo.Create(&models.User{ChannelID: testChannelID}))
	deletedAt := time.Now()
	userRepo.deletedRes = &repository.DeletedUser{ChannelID: testChannelID, DeletedAt: &deletedAt}
	service := NewUserService(userRepo, nil)

	deleted, err := service.DeleteUser(context.Background(), testChannelID)
	require.NoError(t, err)
	assert.Equal(t, testChannelID, deleted.ChannelID)
	assert.NotNil(t, deleted.DeletedAt)
}

func TestDeleteUser_InvalidatesCachedContent(t *testing.T) {
	userRepo := newFakeUserRepo()
	require.NoError(t, userRepo.Create(&models.User{ChannelID: testChannelID}))
	deletedAt := time.Now()
	userRepo.deletedRes = &repository.DeletedUser{ChannelID: testChannelID, DeletedAt: &deletedAt}
	userRepo.deletedIDs = []string{"desc-1", "desc-2"}

	contentCache := newFakeContentCache()
	contentCache.SetContent(context.Background(), "desc-1", "first")
	contentCache.SetContent(context.Background(), "desc-2", "second")
	contentCache.SetContent(context.Background(), "desc-3", "other channel")
	service := NewUserService(userRepo, contentCache)

	_, err := service.DeleteUser(context.Background(), testChannelID)
	require.NoError(t, err)

	_, ok := contentCache.entries["desc-1"]
	assert.False(t, ok)
	_, ok = contentCache.entries["desc-2"]
	assert.False(t, ok)
	_, ok = contentCache.entries["desc-3"]
	assert.True(t, ok)
}
