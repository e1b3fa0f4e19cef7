package services

import (
	"context"
	"testing"

	"ainnect/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	setupTestDB(t)
	us := NewUserService()

	user := models.User{Nickname: "alice", Password: "secret", FirstName: "Alice"}
	userID, err := us.Register(&user)
	require.NoError(t, err)
	require.NotZero(t, userID)

	// Пароль в базе хэширован
	assert.NotEqual(t, "secret", user.Password)

	token, err := us.Login("alice", "secret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	gotID, err := us.UserIDByToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, gotID)
}

func TestLoginWrongPassword(t *testing.T) {
	setupTestDB(t)
	us := NewUserService()

	_, err := us.Register(&models.User{Nickname: "bob", Password: "secret"})
	require.NoError(t, err)

	_, err = us.Login("bob", "wrong")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestRegisterDuplicateNickname(t *testing.T) {
	setupTestDB(t)
	us := NewUserService()

	_, err := us.Register(&models.User{Nickname: "carol", Password: "secret"})
	require.NoError(t, err)
	_, err = us.Register(&models.User{Nickname: "carol", Password: "other"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestLogoutInvalidatesToken(t *testing.T) {
	setupTestDB(t)
	us := NewUserService()

	userID, err := us.Register(&models.User{Nickname: "dave", Password: "secret"})
	require.NoError(t, err)
	token, err := us.Login("dave", "secret")
	require.NoError(t, err)

	require.NoError(t, us.Logout(userID))
	_, err = us.UserIDByToken(token)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserByID(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	us := NewUserService()
	a := createTestUser(t)

	got, err := us.UserByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.Nickname, got.Nickname)

	_, err = us.UserByID(ctx, a.ID+1000)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEnsureUsersExist(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	a := createTestUser(t)
	b := createTestUser(t)

	assert.NoError(t, ensureUsersExist(ctx, a.ID, b.ID))
	assert.ErrorIs(t, ensureUsersExist(ctx, a.ID, b.ID+1000), ErrNotFound)
	assert.ErrorIs(t, ensureUsersExist(ctx, 0, b.ID), ErrInvalidOperation)
}
