package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"fleamarket/internal/adapter/api"
	"fleamarket/internal/adapter/api/handler"
	apimiddleware "fleamarket/internal/adapter/api/middleware"
	"fleamarket/internal/adapter/api/router"
	"fleamarket/internal/adapter/repository"
	"fleamarket/internal/infrastructure/websocket"
	"fleamarket/internal/usecase"
	"fleamarket/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := repository.OpenDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	// Repositories
	userRepo := repository.NewGormUserRepository(db)
	productRepo := repository.NewGormProductRepository(db)
	chatRepo := repository.NewGormChatRepository(db)
	blockRepo := repository.NewGormBlockRepository(db)
	reportRepo := repository.NewGormReportRepository(db)

	// Connection registry for the push channel
	wsManager := websocket.NewManager()

	// Use cases
	authUseCase := usecase.NewAuthUseCase(userRepo, cfg.JWTSecret, cfg.JWTExpiry)
	productUseCase := usecase.NewProductUseCase(productRepo, userRepo, blockRepo)
	chatUseCase := usecase.NewChatUseCase(chatRepo, userRepo, productRepo, blockRepo, wsManager)
	blockUseCase := usecase.NewBlockUseCase(blockRepo, userRepo)
	reportUseCase := usecase.NewReportUseCase(reportRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authUseCase)
	productHandler := handler.NewProductHandler(productUseCase)
	chatHandler := handler.NewChatHandler(chatUseCase)
	blockHandler := handler.NewBlockHandler(blockUseCase)
	reportHandler := handler.NewReportHandler(reportUseCase)
	wsHandler := handler.NewWebSocketHandler(chatUseCase, authUseCase, wsManager)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authUseCase)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":      "ok",
			"environment": cfg.Environment,
		})
	})

	router.Setup(e, authMiddleware, authHandler, productHandler, chatHandler, blockHandler, reportHandler, wsHandler)

	go func() {
		log.Printf("Starting server on port %s...", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")

	// Closing live connections first lets clients fall back to polling while
	// in-flight HTTP requests drain.
	wsManager.CloseAll()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("Shutdown failed: %v", err)
	}
}
