package services

import (
	"context"
	"testing"

	"ainnect/db"
	"ainnect/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowIdempotent(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	fs := NewFollowService()
	a := createTestUser(t)
	b := createTestUser(t)

	first, err := fs.Follow(ctx, a.ID, b.ID)
	require.NoError(t, err)
	require.NotNil(t, first)

	// Повторная подписка не дублирует ребро и не возвращает ошибку
	second, err := fs.Follow(ctx, a.ID, b.ID)
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, first.ID, second.ID)

	var cnt int64
	require.NoError(t, db.ORM.Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", a.ID, b.ID).
		Count(&cnt).Error)
	assert.Equal(t, int64(1), cnt)
}

func TestFollowSelf(t *testing.T) {
	setupTestDB(t)
	fs := NewFollowService()
	a := createTestUser(t)

	_, err := fs.Follow(context.Background(), a.ID, a.ID)
	assert.ErrorIs(t, err, ErrInvalidOperation)
}

func TestFollowUnknownUser(t *testing.T) {
	setupTestDB(t)
	fs := NewFollowService()
	a := createTestUser(t)

	_, err := fs.Follow(context.Background(), a.ID, a.ID+1000)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFollowBlockedPairForbidden(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	fs := NewFollowService()
	bs := NewBlockService()
	a := createTestUser(t)
	b := createTestUser(t)

	_, err := bs.BlockUser(ctx, a.ID, b.ID, "")
	require.NoError(t, err)

	// Блокировка запрещает подписку в обе стороны
	_, err = fs.Follow(ctx, a.ID, b.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = fs.Follow(ctx, b.ID, a.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUnfollowAbsentIsNoop(t *testing.T) {
	setupTestDB(t)
	fs := NewFollowService()
	a := createTestUser(t)
	b := createTestUser(t)

	assert.NoError(t, fs.Unfollow(context.Background(), a.ID, b.ID))
}

func TestFollowersAndFollowees(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	fs := NewFollowService()
	a := createTestUser(t)
	b := createTestUser(t)
	c := createTestUser(t)

	_, err := fs.Follow(ctx, a.ID, c.ID)
	require.NoError(t, err)
	_, err = fs.Follow(ctx, b.ID, c.ID)
	require.NoError(t, err)
	_, err = fs.Follow(ctx, c.ID, a.ID)
	require.NoError(t, err)

	followers, err := fs.FollowersOf(ctx, c.ID)
	require.NoError(t, err)
	assert.Len(t, followers, 2)

	followees, err := fs.FolloweesOf(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, followees, 1)
	assert.Equal(t, a.ID, followees[0].FolloweeID)

	following, err := fs.IsFollowing(ctx, a.ID, c.ID)
	require.NoError(t, err)
	assert.True(t, following)

	following, err = fs.IsFollowing(ctx, c.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, following)
}
