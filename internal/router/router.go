// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/catalog-manager/internal/config"
	"github.com/javajoker/catalog-manager/internal/handlers"
	"github.com/javajoker/catalog-manager/internal/i18n"
	"github.com/javajoker/catalog-manager/internal/middleware"
	"github.com/javajoker/catalog-manager/internal/services"
	"github.com/javajoker/catalog-manager/internal/utils"
)

const version = "1.0.0"

// Services bundles what the handlers depend on.
type Services struct {
	Product *services.ProductService
	Audit   *services.AuditService
	Storage *services.StorageService
	Auth    *services.AuthService
}

func Initialize(cfg *config.Config, svc Services) *gin.Engine {
	if svc.Audit == nil {
		svc.Audit = services.NewAuditService(nil)
	}

	// Initialize handlers
	productHandler := handlers.NewProductHandler(svc.Product, svc.Audit)
	dataHandler := handlers.NewDataHandler(svc.Product, svc.Storage, svc.Audit)
	authHandler := handlers.NewAuthHandler(svc.Auth)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Server.AllowOrigins))
	r.Use(middleware.I18nMiddleware())
	if cfg.Server.RateLimit {
		r.Use(middleware.GeneralRateLimit())
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"message":  i18n.T(utils.GetLangFromContext(c), i18n.KeySuccess),
			"version":  version,
			"products": svc.Product.Count(),
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		if cfg.Server.RateLimit {
			auth.Use(middleware.AuthRateLimit())
		}
		{
			auth.POST("/token", authHandler.IssueToken)
		}

		// Product routes
		products := v1.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			products.GET("/:id", productHandler.GetProduct)
			products.GET("/:id/history", productHandler.GetProductHistory)
			products.POST("", productHandler.CreateProduct)
			products.PUT("/:id", productHandler.UpdateProduct)
			products.DELETE("/:id", productHandler.DeleteProduct)
		}

		// Data management routes
		data := v1.Group("/data")
		data.Use(middleware.AdminRequired(svc.Auth))
		if cfg.Server.RateLimit {
			data.Use(middleware.DataRateLimit())
		}
		{
			data.GET("/export", dataHandler.Export)
			data.POST("/export/archive", dataHandler.Archive)
			data.POST("/import", dataHandler.Import)
			data.POST("/demo", dataHandler.LoadDemo)
			data.DELETE("", dataHandler.Clear)
			data.GET("/audit", dataHandler.Audit)
		}

		// Search metadata
		v1.GET("/search/fields", getSearchFieldsHandler)
	}

	return r
}

func getSearchFieldsHandler(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{
		"fields":  []string{"name", "category", "details"},
		"default": "name",
	})
}
