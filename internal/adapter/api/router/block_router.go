package router

import (
	"github.com/labstack/echo/v4"

	"fleamarket/internal/adapter/api/handler"
	"fleamarket/internal/adapter/api/middleware"
)

// SetupBlockRouter sets up block and report routes
func SetupBlockRouter(e *echo.Echo, blockHandler *handler.BlockHandler, reportHandler *handler.ReportHandler, authMiddleware *middleware.AuthMiddleware) {
	blocks := e.Group("/v1/blocks")
	blocks.Use(authMiddleware.Authenticate)

	blocks.POST("", blockHandler.BlockUser)         // POST /v1/blocks - Block a user
	blocks.GET("", blockHandler.ListBlocked)        // GET /v1/blocks - List blocked users
	blocks.DELETE("/:id", blockHandler.UnblockUser) // DELETE /v1/blocks/:id - Unblock a user

	reports := e.Group("/v1/reports")
	reports.Use(authMiddleware.Authenticate)

	reports.POST("", reportHandler.CreateReport) // POST /v1/reports - File a report
}
