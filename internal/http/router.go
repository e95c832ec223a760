package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/libreria/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.Use(RequestLoggerMiddleware())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())

	if cfg.CORSOrigin != "" {
		router.Use(cors.New(corsConfig(cfg.CORSOrigin)))
	}
	router.Use(ReadOnlyMiddleware(cfg.ReadOnly))

	router.NoRoute(func(c *gin.Context) {
		respondNotFound(c, "Not Found")
	})
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		respondError(c, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	// Health endpoints
	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/", health.Welcome)
	router.GET("/health", health.Status)
	router.GET("/ping", health.Ping)

	NewBooksController(cfg.Books, cfg.Pagination).RegisterRoutes(router)
	NewCategoriesController(cfg.Categories, cfg.Pagination).RegisterRoutes(router)
	NewCartsController(cfg.Carts, cfg.Pagination).RegisterRoutes(router)
	NewSalesController(cfg.Sales, cfg.Pagination).RegisterRoutes(router)
	NewAuthController(cfg.Users, cfg.LoginLimiter, cfg.MinPasswordLength).RegisterRoutes(router)

	return router
}

func corsConfig(origin string) cors.Config {
	return cors.Config{
		AllowOrigins:     []string{origin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", requestIDHeader},
		ExposeHeaders:    []string{"Content-Length", requestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}
