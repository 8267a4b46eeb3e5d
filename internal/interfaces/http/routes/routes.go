// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/domain/cart"
	"github.com/your-org/pos-backend/internal/domain/pricing"
	"github.com/your-org/pos-backend/internal/domain/product"
	"github.com/your-org/pos-backend/internal/domain/user"
	"github.com/your-org/pos-backend/internal/interfaces/http/handlers"
	"github.com/your-org/pos-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// SetupRoutes wires all services and routes. The pricing service is shared
// between the rates and cart handlers so a rate write invalidates the same
// snapshot the carts price against.
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	log := middleware.NewLogger(cfg)

	pricingService := pricing.NewService(db, log)
	productService := product.NewService(db)
	userService := user.NewService(db)
	cartService := cart.NewService(redisClient, cfg, pricingService, productService, log)

	authHandler := handlers.NewAuthHandler(userService, cfg)
	cartHandler := handlers.NewCartHandler(cartService, cfg)
	ratesHandler := handlers.NewRatesHandler(pricingService)
	productHandler := handlers.NewProductHandler(productService)

	// Public auth endpoints
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/login", authHandler.Login)
	}

	// All terminal routes require a logged-in cashier
	protected := rg.Group("")
	protected.Use(middleware.AuthMiddleware(cfg))
	{
		products := protected.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			products.GET("/:id", productHandler.GetProduct)
		}

		cartGroup := protected.Group("/cart")
		{
			cartGroup.GET("", cartHandler.GetCart)
			cartGroup.DELETE("", cartHandler.ClearCart)
			cartGroup.POST("/items", cartHandler.AddToCart)
			cartGroup.PUT("/items/:id", cartHandler.UpdateQuantity)
			cartGroup.PATCH("/items/:id", cartHandler.UpdateLineItem)
			cartGroup.DELETE("/items/:id", cartHandler.RemoveFromCart)
			cartGroup.POST("/items/:id/convert", cartHandler.ConvertItem)
			cartGroup.POST("/reprice", cartHandler.RepriceCart)
			cartGroup.GET("/receipt", cartHandler.GetReceipt)
		}

		protected.GET("/rates", ratesHandler.ListRates)
		protected.GET("/currencies", ratesHandler.ListCurrencies)

		// Rate mutation is admin only
		admin := protected.Group("/rates")
		admin.Use(middleware.AdminMiddleware())
		{
			admin.POST("", ratesHandler.CreateRate)
			admin.PUT("/:id", ratesHandler.UpdateRate)
			admin.DELETE("/:id", ratesHandler.DeactivateRate)
		}
	}
}
