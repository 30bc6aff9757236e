package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lalitbansal40/shopify-backend/internal/api/handlers"
	"github.com/lalitbansal40/shopify-backend/internal/api/middleware"
	"github.com/lalitbansal40/shopify-backend/internal/auth"
	"github.com/lalitbansal40/shopify-backend/internal/config"
	"github.com/lalitbansal40/shopify-backend/internal/service"
	"github.com/lalitbansal40/shopify-backend/internal/shopify"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	storefront := shopify.NewClient(cfg.Shopify, logger)
	admin := shopify.NewAdminClient(cfg.Shopify, logger)
	signer := auth.NewSigner(cfg.JWT.Secret)

	catalogService := service.NewCatalogService(storefront, logger)
	authService := service.NewAuthService(cfg.Shopify, storefront, admin, signer, logger)

	router := gin.New()

	// Middleware
	router.Use(customRecovery(logger))
	router.Use(middleware.RequestID())
	router.Use(loggingMiddleware(logger))

	router.GET("/health-check", func(c *gin.Context) {
		c.String(http.StatusOK, "Server is up and running.")
	})

	api := router.Group("/api")
	{
		api.POST("/login", handlers.HandleLogin(authService, logger))
		api.POST("/signup", handlers.HandleSignup(authService, logger))
		api.GET("/forgotPassword", handlers.HandleForgotPassword(authService))
		api.GET("/productList", handlers.HandleProductList(catalogService, logger))
		api.GET("/productListByCollection/:collectionHandle", handlers.HandleProductListByCollection(catalogService, logger))
	}

	return router
}

// customRecovery is a custom recovery middleware that logs panics
func customRecovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal server error",
			"details": fmt.Sprintf("%v", recovered),
		})
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.String("request_id", middleware.GetRequestID(c)),
		)
	}
}
