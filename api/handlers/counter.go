package handlers

import (
	"net/http"

	"ainnect/services"

	"github.com/gin-gonic/gin"
)

// GetCounters - бейдж-счетчики текущего пользователя (заявки, уведомления)
func GetCounters(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if services.RedisClient == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "counters unavailable"})
		return
	}
	cs := services.GetCounterService()
	ctx := c.Request.Context()

	friendRequests, err := cs.Get(ctx, userID, services.CounterTypeFriendRequests)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	notifications, err := cs.Get(ctx, userID, services.CounterTypeNotifications)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"friend_requests": friendRequests,
		"notifications":   notifications,
	})
}
