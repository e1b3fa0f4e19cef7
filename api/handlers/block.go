package handlers

import (
	"net/http"
	"time"

	"ainnect/api/middleware"
	"ainnect/services"

	"github.com/gin-gonic/gin"
)

var blockService = services.NewBlockService()

// BlockUser - заблокировать пользователя.
// Каскад (снятие подписок и дружбы) выполняется сервисом атомарно.
func BlockUser(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	type req struct {
		BlockedID int64  `json:"blocked_id"`
		Reason    string `json:"reason"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	start := time.Now()
	block, err := blockService.BlockUser(c.Request.Context(), userID, r.BlockedID, r.Reason)
	middleware.RecordRelationOperation("block", opStatus(err), "ainnect", time.Since(start), err)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user blocked", "block": block})
}

// UnblockUser - снять блокировку (удаленные связи не восстанавливаются)
func UnblockUser(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	type req struct {
		BlockedID int64 `json:"blocked_id"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if err := blockService.UnblockUser(c.Request.Context(), userID, r.BlockedID); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user unblocked"})
}

// GetBlockedUsers - список блокировок текущего пользователя
func GetBlockedUsers(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	blocks, err := blockService.BlockedUsers(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"blocked": blocks})
}
