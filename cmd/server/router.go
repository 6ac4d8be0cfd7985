package main

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/seagalputra/talkbox/internal/handlers"
	"github.com/seagalputra/talkbox/internal/middleware"
	"github.com/seagalputra/talkbox/pkg/auth"
)

func APIEndpoints(
	r *gin.Engine,
	jwtMgr *auth.JWTManager,
	rdb *redis.Client,
	authH *handlers.AuthHandler,
	userH *handlers.UserHandler,
	roomH *handlers.RoomHandler,
	messageH *handlers.MessageHandler,
	wsH *handlers.WebSocketHandler,
) {
	// Auth endpoints
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authH.Register)
		authGroup.POST("/login", authH.Login)
		authGroup.POST("/logout", authH.Logout)
	}

	// User endpoints
	users := r.Group("/users")
	{
		users.GET("/confirm_account", authH.ConfirmAccount)

		protected := users.Group("", middleware.AuthMiddleware(jwtMgr, rdb))
		protected.GET("/me", userH.GetMe)
		protected.PATCH("", userH.UpdateMe)
		protected.POST("/avatar", userH.UploadAvatar)
	}

	// Room endpoints
	rooms := r.Group("/rooms", middleware.AuthMiddleware(jwtMgr, rdb))
	{
		rooms.GET("", roomH.GetMyRooms)
		rooms.POST("", roomH.CreateRoom)
		rooms.GET("/:id", roomH.GetRoom)
		rooms.GET("/:id/messages", messageH.GetRoomMessages)
	}

	// WebSocket канал комнаты
	r.GET("/ws/rooms/:id", middleware.WSAuthMiddleware(jwtMgr, rdb), wsH.HandleRoomSocket)
}
