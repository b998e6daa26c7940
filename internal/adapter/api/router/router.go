package router

import (
	"github.com/labstack/echo/v4"

	"fleamarket/internal/adapter/api/handler"
	"fleamarket/internal/adapter/api/middleware"
)

// Setup wires every route group. Handlers are constructed in main and passed
// in; nothing here reaches for package-level state.
func Setup(
	e *echo.Echo,
	authMiddleware *middleware.AuthMiddleware,
	authHandler *handler.AuthHandler,
	productHandler *handler.ProductHandler,
	chatHandler *handler.ChatHandler,
	blockHandler *handler.BlockHandler,
	reportHandler *handler.ReportHandler,
	wsHandler *handler.WebSocketHandler,
) {
	SetupAuthRouter(e, authHandler, authMiddleware)
	SetupProductRouter(e, productHandler, authMiddleware)
	SetupChatRouter(e, chatHandler, authMiddleware)
	SetupBlockRouter(e, blockHandler, reportHandler, authMiddleware)
	SetupWebSocketRouter(e, wsHandler)
}
