package router

import (
	"github.com/labstack/echo/v4"

	"fleamarket/internal/adapter/api/handler"
)

// SetupWebSocketRouter sets up WebSocket routes
func SetupWebSocketRouter(e *echo.Echo, wsHandler *handler.WebSocketHandler) {
	// No auth middleware here; connections authenticate with an auth frame
	// after the upgrade.
	e.GET("/ws", wsHandler.HandleWebSocket)
}
