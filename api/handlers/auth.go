package handlers

import (
	"net/http"
	"strconv"

	"ainnect/models"
	"ainnect/services"

	"github.com/gin-gonic/gin"
)

var userService = services.NewUserService()

// Register - регистрация пользователя
func Register(c *gin.Context) {
	type req struct {
		Nickname  string `json:"nickname"`
		Password  string `json:"password"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		City      string `json:"city"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	user := models.User{
		Nickname:  r.Nickname,
		Password:  r.Password,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		City:      r.City,
	}
	userID, err := userService.Register(&user)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_id": userID})
}

// Login - вход по никнейму и паролю, возвращает токен
func Login(c *gin.Context) {
	type req struct {
		Nickname string `json:"nickname"`
		Password string `json:"password"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	token, err := userService.Login(r.Nickname, r.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// GetUser - профиль пользователя из справочника
func GetUser(c *gin.Context) {
	targetID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	user, err := userService.UserByID(c.Request.Context(), targetID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Logout - сброс токенов пользователя
func Logout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := userService.Logout(userID); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
