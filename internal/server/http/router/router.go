package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/aurumlab/goldtrade/internal/server/http/handlers"
	"github.com/aurumlab/goldtrade/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.TradingFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	productHandler := handlers.NewProductHandler(facade)
	invoiceHandler := handlers.NewInvoiceHandler(facade)

	api := engine.Group("/api")

	products := api.Group("/products")
	products.GET("", productHandler.List)
	products.GET("/:id", productHandler.Get)
	products.POST("/seed", productHandler.Seed)

	invoices := api.Group("/invoices")
	invoices.Use(middleware.AuthRequired(facade))
	invoices.POST("", invoiceHandler.Create)
	invoices.GET("", invoiceHandler.List)
	invoices.GET("/:orderNumber", invoiceHandler.Get)
	invoices.PATCH("/:orderNumber/shipping", invoiceHandler.UpdateShipping)
	invoices.PATCH("/:orderNumber/state", invoiceHandler.UpdateState)
	invoices.PATCH("/:orderNumber/cancel", invoiceHandler.Cancel)

	return engine
}
