package handlers

import (
	"errors"
	"net/http"

	"ainnect/services"

	"github.com/gin-gonic/gin"
)

// statusFromError маппит ошибки ядра на HTTP-статусы
func statusFromError(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidOperation):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidState), errors.Is(err, services.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	c.JSON(statusFromError(err), gin.H{"error": err.Error()})
}

// opStatus - метка статуса операции для метрик
func opStatus(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// currentUserID достает user_id, проставленный auth middleware
func currentUserID(c *gin.Context) (int64, bool) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return 0, false
	}
	return userID, true
}
