package handlers

import (
	"net/http"
	"strconv"
	"time"

	"ainnect/api/middleware"
	"ainnect/services"

	"github.com/gin-gonic/gin"
)

var followService = services.NewFollowService()

// Follow - подписаться на пользователя
func Follow(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	type req struct {
		FolloweeID int64 `json:"followee_id"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	start := time.Now()
	follow, err := followService.Follow(c.Request.Context(), userID, r.FolloweeID)
	middleware.RecordRelationOperation("follow", opStatus(err), "ainnect", time.Since(start), err)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "followed", "follow": follow})
}

// Unfollow - отписаться (no-op, если подписки не было)
func Unfollow(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	type req struct {
		FolloweeID int64 `json:"followee_id"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if err := followService.Unfollow(c.Request.Context(), userID, r.FolloweeID); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "unfollowed"})
}

// GetFollowers - список подписчиков пользователя
func GetFollowers(c *gin.Context) {
	targetID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	followers, err := followService.FollowersOf(c.Request.Context(), targetID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"followers": followers})
}

// GetFollowing - на кого подписан пользователь
func GetFollowing(c *gin.Context) {
	targetID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	following, err := followService.FolloweesOf(c.Request.Context(), targetID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"following": following})
}
