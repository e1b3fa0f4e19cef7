package services

import (
	"context"
	"testing"

	"ainnect/db"
	"ainnect/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestCreatesCanonicalPendingRow(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	fs := NewFriendService()
	a := createTestUser(t)
	b := createTestUser(t)

	friendship, err := fs.Request(ctx, b.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FriendshipPending, friendship.Status)
	assert.Equal(t, b.ID, friendship.RequestedBy)

	// Ключ канонический: low < high независимо от направления заявки
	low, high := models.CanonicalPair(a.ID, b.ID)
	assert.Equal(t, low, friendship.UserLowID)
	assert.Equal(t, high, friendship.UserHighID)

	// Проверка pending симметрична
	pendingAB, err := fs.HasPendingFriendRequest(ctx, a.ID, b.ID)
	require.NoError(t, err)
	pendingBA, err := fs.HasPendingFriendRequest(ctx, b.ID, a.ID)
	require.NoError(t, err)
	assert.True(t, pendingAB)
	assert.Equal(t, pendingAB, pendingBA)

	var cnt int64
	require.NoError(t, db.ORM.Model(&models.Friendship{}).Count(&cnt).Error)
	assert.Equal(t, int64(1), cnt)
}

func TestMutualRequestBecomesAccepted(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	fs := NewFriendService()
	a := createTestUser(t)
	b := createTestUser(t)

	_, err := fs.Request(ctx, a.ID, b.ID)
	require.NoError(t, err)

	// Встречная заявка от B принимается сразу, второй pending-строки нет
	friendship, err := fs.Request(ctx, b.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FriendshipAccepted, friendship.Status)
	assert.NotNil(t, friendship.RespondedAt)

	var cnt int64
	require.NoError(t, db.ORM.Model(&models.Friendship{}).Count(&cnt).Error)
	assert.Equal(t, int64(1), cnt)

	isFriend, err := fs.IsFriend(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, isFriend)
}

func TestDuplicateRequestConflict(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	fs := NewFriendService()
	a := createTestUser(t)
	b := createTestUser(t)

	_, err := fs.Request(ctx, a.ID, b.ID)
	require.NoError(t, err)
	_, err = fs.Request(ctx, a.ID, b.ID)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRequestWhenAlreadyFriends(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	fs := NewFriendService()
	a := createTestUser(t)
	b := createTestUser(t)

	makeFriends(t, ctx, fs, a.ID, b.ID)

	_, err := fs.Request(ctx, a.ID, b.ID)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRequestSelf(t *testing.T) {
	setupTestDB(t)
	fs := NewFriendService()
	a := createTestUser(t)

	_, err := fs.Request(context.Background(), a.ID, a.ID)
	assert.ErrorIs(t, err, ErrInvalidOperation)
}

func TestRequestBlockedEitherDirection(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	fs := NewFriendService()
	bs := NewBlockService()
	a := createTestUser(t)
	b := createTestUser(t)

	_, err := bs.BlockUser(ctx, a.ID, b.ID, "")
	require.NoError(t, err)

	_, err = fs.Request(ctx, a.ID, b.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = fs.Request(ctx, b.ID, a.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAcceptPendingRequest(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	fs := NewFriendService()
	a := createTestUser(t)
	b := createTestUser(t)

	_, err := fs.Request(ctx, a.ID, b.ID)
	require.NoError(t, err)

	friendship, err := fs.Accept(ctx, b.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FriendshipAccepted, friendship.Status)
	assert.NotNil(t, friendship.RespondedAt)
}

func TestAcceptWithoutRequest(t *testing.T) {
	setupTestDB(t)
	fs := NewFriendService()
	a := createTestUser(t)
	b := createTestUser(t)

	_, err := fs.Accept(context.Background(), a.ID, b.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRespondByOutsiderForbidden(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	fs := NewFriendService()
	a := createTestUser(t)
	b := createTestUser(t)
	outsider := createTestUser(t)

	friendship, err := fs.Request(ctx, a.ID, b.ID)
	require.NoError(t, err)

	_, err = fs.RespondToRequest(ctx, outsider.ID, friendship.ID, true)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = fs.RespondToRequest(ctx, outsider.ID, friendship.ID, false)
	assert.ErrorIs(t, err, ErrForbidden)

	// Заявка осталась нетронутой
	pending, err := fs.HasPendingFriendRequest(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, pending)
}

func TestAcceptNonPendingInvalidState(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	fs := NewFriendService()
	a := createTestUser(t)
	b := createTestUser(t)

	makeFriends(t, ctx, fs, a.ID, b.ID)

	_, err := fs.Accept(ctx, b.ID, a.ID)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestRejectDeletesRowAndAllowsNewRequest(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	fs := NewFriendService()
	a := createTestUser(t)
	b := createTestUser(t)

	_, err := fs.Request(ctx, a.ID, b.ID)
	require.NoError(t, err)
	require.NoError(t, fs.Reject(ctx, b.ID, a.ID))

	var cnt int64
	require.NoError(t, db.ORM.Model(&models.Friendship{}).Count(&cnt).Error)
	assert.Equal(t, int64(0), cnt)

	// Отклоненная заявка не оставляет следов, можно отправить снова
	friendship, err := fs.Request(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FriendshipPending, friendship.Status)
}

func TestRemoveFriend(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	fs := NewFriendService()
	a := createTestUser(t)
	b := createTestUser(t)

	makeFriends(t, ctx, fs, a.ID, b.ID)
	require.NoError(t, fs.RemoveFriend(ctx, a.ID, b.ID))

	isFriend, err := fs.IsFriend(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, isFriend)

	// Повторное удаление и удаление pending-заявки - NotFound
	assert.ErrorIs(t, fs.RemoveFriend(ctx, a.ID, b.ID), ErrNotFound)
	_, err = fs.Request(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.ErrorIs(t, fs.RemoveFriend(ctx, a.ID, b.ID), ErrNotFound)
}

func TestCanSendFriendRequest(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	fs := NewFriendService()
	bs := NewBlockService()
	a := createTestUser(t)
	b := createTestUser(t)

	can, err := fs.CanSendFriendRequest(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, can)

	can, err = fs.CanSendFriendRequest(ctx, a.ID, a.ID)
	require.NoError(t, err)
	assert.False(t, can)

	// Висящая заявка запрещает новую в обе стороны
	_, err = fs.Request(ctx, a.ID, b.ID)
	require.NoError(t, err)
	can, err = fs.CanSendFriendRequest(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, can)
	can, err = fs.CanSendFriendRequest(ctx, b.ID, a.ID)
	require.NoError(t, err)
	assert.False(t, can)

	// Дружба тоже
	_, err = fs.Accept(ctx, b.ID, a.ID)
	require.NoError(t, err)
	can, err = fs.CanSendFriendRequest(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, can)

	// Блокировка в любом направлении
	c := createTestUser(t)
	_, err = bs.BlockUser(ctx, c.ID, a.ID, "")
	require.NoError(t, err)
	can, err = fs.CanSendFriendRequest(ctx, a.ID, c.ID)
	require.NoError(t, err)
	assert.False(t, can)
	can, err = fs.CanSendFriendRequest(ctx, c.ID, a.ID)
	require.NoError(t, err)
	assert.False(t, can)
}

func TestIncomingAndSentRequests(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	fs := NewFriendService()
	a := createTestUser(t)
	b := createTestUser(t)
	c := createTestUser(t)

	_, err := fs.Request(ctx, b.ID, a.ID)
	require.NoError(t, err)
	_, err = fs.Request(ctx, a.ID, c.ID)
	require.NoError(t, err)

	incoming, err := fs.IncomingRequests(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, incoming, 1)
	assert.Equal(t, b.ID, incoming[0].RequestedBy)

	sent, err := fs.SentRequests(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.Equal(t, a.ID, sent[0].RequestedBy)
}
