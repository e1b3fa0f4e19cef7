package routes

import (
	"ainnect/api/handlers"
	"ainnect/api/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PublicApi регистрирует маршруты сервиса
func PublicApi(router *gin.Engine) {
	router.Use(middleware.PrometheusMiddleware("ainnect"))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")

	v1.POST("/auth/register", handlers.Register)
	v1.POST("/auth/login", handlers.Login)

	authorized := v1.Group("")
	authorized.Use(middleware.AuthMiddleware())
	{
		authorized.POST("/auth/logout", handlers.Logout)
		authorized.GET("/users/:id", handlers.GetUser)

		authorized.POST("/follow", handlers.Follow)
		authorized.POST("/unfollow", handlers.Unfollow)
		authorized.GET("/users/:id/followers", handlers.GetFollowers)
		authorized.GET("/users/:id/following", handlers.GetFollowing)

		authorized.POST("/friends/request", handlers.SendFriendRequest)
		authorized.POST("/friends/requests/:id/accept", handlers.AcceptFriendRequest)
		authorized.POST("/friends/requests/:id/reject", handlers.RejectFriendRequest)
		authorized.POST("/friends/remove", handlers.RemoveFriend)
		authorized.GET("/friends", handlers.GetFriends)
		authorized.GET("/friends/requests", handlers.GetIncomingRequests)
		authorized.GET("/friends/requests/sent", handlers.GetSentRequests)

		authorized.POST("/block", handlers.BlockUser)
		authorized.POST("/unblock", handlers.UnblockUser)
		authorized.GET("/blocked", handlers.GetBlockedUsers)

		authorized.GET("/users/:id/stats", handlers.GetSocialStats)
		authorized.GET("/users/:id/common-friends", handlers.GetCommonFriends)
		authorized.GET("/users/:id/relationship", handlers.GetRelationship)

		authorized.GET("/counters", handlers.GetCounters)
		authorized.GET("/ws", handlers.WSConnect)
	}
}
