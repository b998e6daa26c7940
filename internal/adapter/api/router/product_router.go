package router

import (
	"github.com/labstack/echo/v4"

	"fleamarket/internal/adapter/api/handler"
	"fleamarket/internal/adapter/api/middleware"
)

// SetupProductRouter sets up product routes
func SetupProductRouter(e *echo.Echo, productHandler *handler.ProductHandler, authMiddleware *middleware.AuthMiddleware) {
	// Public reads; a bearer token, when present, scopes block filtering
	public := e.Group("/v1/products")
	public.Use(authMiddleware.OptionalAuthenticate)

	public.GET("", productHandler.ListProducts)             // GET /v1/products - Browse listings
	public.GET("/:id", productHandler.GetProduct)           // GET /v1/products/:id - Product detail
	public.GET("/:id/comments", productHandler.ListComments) // GET /v1/products/:id/comments

	// Protected writes
	protected := e.Group("/v1/products")
	protected.Use(authMiddleware.Authenticate)

	protected.POST("", productHandler.CreateProduct)                    // POST /v1/products - Create listing
	protected.POST("/:id/comments", productHandler.AddComment)          // POST /v1/products/:id/comments
	protected.POST("/:id/favorites", productHandler.AddFavorite)        // POST /v1/products/:id/favorites
	protected.DELETE("/:id/favorites", productHandler.RemoveFavorite)   // DELETE /v1/products/:id/favorites

	favorites := e.Group("/v1/favorites")
	favorites.Use(authMiddleware.Authenticate)
	favorites.GET("", productHandler.ListFavorites) // GET /v1/favorites - User's favorites
}
