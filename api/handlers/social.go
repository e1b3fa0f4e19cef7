package handlers

import (
	"net/http"
	"strconv"

	"ainnect/services"

	"github.com/gin-gonic/gin"
)

var socialService = services.NewSocialService()

// GetSocialStats - счетчики профиля (подписчики/подписки/друзья)
func GetSocialStats(c *gin.Context) {
	targetID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	stats, err := socialService.GetSocialStats(c.Request.Context(), targetID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetCommonFriends - страница общих друзей с другим пользователем
func GetCommonFriends(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	otherID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	users, total, err := socialService.GetCommonFriends(c.Request.Context(), userID, otherID, page, size)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"common_friends": users,
		"total":          total,
		"page":           page,
		"size":           size,
	})
}

// GetRelationship - сводка отношения текущего пользователя к другому
func GetRelationship(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	otherID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	ctx := c.Request.Context()

	isFollowing, err := followService.IsFollowing(ctx, userID, otherID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	isFriend, err := friendService.IsFriend(ctx, userID, otherID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	hasPending, err := friendService.HasPendingFriendRequest(ctx, userID, otherID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	isBlocked, err := blockService.IsBlocked(ctx, userID, otherID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	isBlockedBy, err := blockService.IsBlockedBy(ctx, userID, otherID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	canRequest, err := friendService.CanSendFriendRequest(ctx, userID, otherID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"is_following":            isFollowing,
		"is_friend":               isFriend,
		"has_pending_request":     hasPending,
		"is_blocked":              isBlocked,
		"is_blocked_by":           isBlockedBy,
		"can_send_friend_request": canRequest,
	})
}
