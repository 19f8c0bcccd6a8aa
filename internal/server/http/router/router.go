package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/server/http/handlers"
	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.CRMFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	messageHandler := handlers.NewMessageHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	reportHandler := handlers.NewReportHandler(facade)

	api := engine.Group("/api")
	api.POST("/session", messageHandler.Session)

	authorized := api.Group("")
	authorized.Use(middleware.AuthRequired(facade))
	authorized.POST("/messages", messageHandler.Receive)
	authorized.POST("/actions", messageHandler.Action)
	authorized.GET("/orders/:id", orderHandler.Get)
	authorized.GET("/orders", orderHandler.List)
	authorized.POST("/orders/:id/message", orderHandler.Edit)
	authorized.POST("/orders/bulk-status", orderHandler.BulkStatus)
	authorized.GET("/reports/:chatID", reportHandler.Get)
	authorized.GET("/settings/:chatID", reportHandler.Settings)
	authorized.POST("/settings/:chatID/daily-report", reportHandler.UpdateDailyReport)

	return engine
}
