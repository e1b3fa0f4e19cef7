package handlers

import (
	"net/http"
	"strconv"
	"time"

	"ainnect/api/middleware"
	"ainnect/services"

	"github.com/gin-gonic/gin"
)

var friendService = services.NewFriendService()

// SendFriendRequest - отправить заявку в друзья
func SendFriendRequest(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	type req struct {
		FriendID int64 `json:"friend_id"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	start := time.Now()
	friendship, err := friendService.Request(c.Request.Context(), userID, r.FriendID)
	middleware.RecordRelationOperation("friend_request", opStatus(err), "ainnect", time.Since(start), err)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "friend request sent", "friendship": friendship})
}

// AcceptFriendRequest - принять заявку по id строки дружбы
func AcceptFriendRequest(c *gin.Context) {
	respondToFriendRequest(c, true)
}

// RejectFriendRequest - отклонить заявку (строка удаляется)
func RejectFriendRequest(c *gin.Context) {
	respondToFriendRequest(c, false)
}

func respondToFriendRequest(c *gin.Context, accept bool) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	friendshipID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid friendship id"})
		return
	}
	friendship, err := friendService.RespondToRequest(c.Request.Context(), userID, friendshipID, accept)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if accept {
		c.JSON(http.StatusOK, gin.H{"message": "friend request accepted", "friendship": friendship})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "friend request rejected"})
}

// RemoveFriend - удалить подтвержденную дружбу
func RemoveFriend(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	type req struct {
		FriendID int64 `json:"friend_id"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if err := friendService.RemoveFriend(c.Request.Context(), userID, r.FriendID); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "friend removed"})
}

// GetFriends - список друзей текущего пользователя
func GetFriends(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	friends, err := friendService.Friends(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"friends": friends})
}

// GetIncomingRequests - входящие заявки. Просмотр гасит бейдж-счетчик.
func GetIncomingRequests(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	requests, err := friendService.IncomingRequests(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if services.RedisClient != nil {
		_ = services.GetCounterService().Reset(c.Request.Context(), userID, services.CounterTypeFriendRequests)
	}
	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// GetSentRequests - исходящие заявки
func GetSentRequests(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	requests, err := friendService.SentRequests(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": requests})
}
