package router

import (
	"github.com/labstack/echo/v4"

	"fleamarket/internal/adapter/api/handler"
	"fleamarket/internal/adapter/api/middleware"
)

// SetupChatRouter sets up all chat-related routes (excluding WebSocket)
func SetupChatRouter(e *echo.Echo, chatHandler *handler.ChatHandler, authMiddleware *middleware.AuthMiddleware) {
	chatGroup := e.Group("/v1/chats")
	chatGroup.Use(authMiddleware.Authenticate) // All chat endpoints require authentication

	// Static path registered alongside /:id; echo matches static before param.
	chatGroup.GET("/unread", chatHandler.GetUnreadCount) // GET /v1/chats/unread - Total unread count

	// Chat management
	chatGroup.POST("", chatHandler.CreateChat)           // POST /v1/chats - Open (or return) a chat room
	chatGroup.GET("", chatHandler.GetUserChats)          // GET /v1/chats - Get user's chat rooms
	chatGroup.GET("/:id", chatHandler.GetChatByID)       // GET /v1/chats/:id - Get specific chat room

	// Message management
	chatGroup.GET("/:id/messages", chatHandler.GetChatMessages)       // GET /v1/chats/:id/messages - Full history, marks read
	chatGroup.GET("/:id/messages/poll", chatHandler.PollChatMessages) // GET /v1/chats/:id/messages/poll?last_message_id=N
	chatGroup.POST("/:id/messages", chatHandler.SendMessage)          // POST /v1/chats/:id/messages - Send message
}
