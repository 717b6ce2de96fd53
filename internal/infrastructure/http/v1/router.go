// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/Huzeyfe22/otomatik-quote/internal/domain/auth"
	"github.com/Huzeyfe22/otomatik-quote/internal/domain/library"
	"github.com/Huzeyfe22/otomatik-quote/internal/domain/quote"
	"github.com/Huzeyfe22/otomatik-quote/internal/infrastructure/http/v1/handlers"
	"github.com/Huzeyfe22/otomatik-quote/internal/infrastructure/http/v1/middleware"
	"github.com/Huzeyfe22/otomatik-quote/internal/infrastructure/render"
	"github.com/Huzeyfe22/otomatik-quote/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Logger for request logging
	Logger *logger.Logger

	// Library is the taxonomy store
	Library *library.Store

	// Quotes is the quote lifecycle service
	Quotes *quote.Service

	// Auth issues and validates workspace tokens; a disabled service
	// leaves all routes open
	Auth *auth.Service

	// Renderer produces PDF output
	Renderer *render.PDF

	// Persist is invoked after every successful mutation to flush the
	// workspace to disk
	Persist func()

	// Version reported by the info endpoint
	Version string
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	persist := cfg.Persist
	if persist == nil {
		persist = func() {}
	}

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Version)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	baseHandler := handlers.NewBaseHandler()

	// API v1
	api := router.Group("/api/v1")
	{
		if cfg.Auth != nil {
			authHandler := handlers.NewAuthHandler(baseHandler, cfg.Auth)
			api.POST("/auth/login", authHandler.Login)
		}

		protected := api.Group("")
		if cfg.Auth != nil {
			protected.Use(middleware.Auth(cfg.Auth))
		}

		registerLibraryRoutes(protected, baseHandler, cfg, persist)
		registerQuoteRoutes(protected, baseHandler, cfg, persist)
		registerDocumentRoutes(protected, baseHandler, cfg)
		registerWorkspaceRoutes(protected, baseHandler, cfg, persist)
	}

	return router
}

// registerLibraryRoutes registers taxonomy endpoints.
func registerLibraryRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig, persist func()) {
	h := handlers.NewLibraryHandler(base, cfg.Library, persist)

	lib := rg.Group("/library")
	{
		lib.GET("/export", h.Snapshot)
		lib.POST("/import", h.Import)

		system := lib.Group("/system/:collection")
		{
			system.GET("", h.ListSystemItems)
			system.POST("", h.AddSystemItem)
			system.PUT("/:itemID", h.UpdateSystemItem)
			system.DELETE("/:itemID", h.DeleteSystemItem)
		}

		attrs := lib.Group("/attribute-categories")
		{
			attrs.GET("", h.ListAttributeCategories)
			attrs.POST("", h.AddAttributeCategory)
			attrs.PUT("/:catID", h.UpdateAttributeCategory)
			attrs.DELETE("/:catID", h.DeleteAttributeCategory)
			attrs.POST("/:catID/items", h.AddAttributeItem)
			attrs.PUT("/:catID/items/:itemID", h.UpdateAttributeItem)
			attrs.DELETE("/:catID/items/:itemID", h.DeleteAttributeItem)
		}

		terms := lib.Group("/term-categories")
		{
			terms.GET("", h.ListTermCategories)
			terms.POST("", h.AddTermCategory)
			terms.PUT("/:catID", h.UpdateTermCategory)
			terms.DELETE("/:catID", h.DeleteTermCategory)
			terms.POST("/:catID/items", h.AddTermItem)
			terms.PUT("/:catID/items/:itemID", h.UpdateTermItem)
			terms.DELETE("/:catID/items/:itemID", h.DeleteTermItem)
		}

		settings := lib.Group("/settings")
		{
			settings.GET("", h.GetSettings)
			settings.PUT("", h.UpdateSettings)
			settings.PUT("/category-order", h.Reorder)
			settings.PUT("/category-labels/:key", h.UpdateLabel)
		}

		lib.GET("/templates", h.ListTemplates)
	}
}

// registerQuoteRoutes registers quote lifecycle endpoints.
func registerQuoteRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig, persist func()) {
	h := handlers.NewQuoteHandler(base, cfg.Quotes, persist)

	current := rg.Group("/quote")
	{
		current.GET("", h.Current)
		current.PUT("", h.Replace)
		current.POST("/items", h.AddItem)
		current.PUT("/items/:itemID", h.UpdateItem)
		current.DELETE("/items/:itemID", h.RemoveItem)
		current.POST("/items/:itemID/duplicate", h.DuplicateItem)
		current.PUT("/terms/:categoryID", h.UpdateTerms)
		current.PUT("/client", h.UpdateClient)
		current.PUT("/meta", h.UpdateMeta)
		current.PUT("/notes", h.UpdateNotes)
		current.PUT("/number", h.SetNumber)
		current.POST("/number/next", h.NextNumber)
		current.POST("/save", h.Save)
	}

	saved := rg.Group("/quotes")
	{
		saved.GET("", h.ListSaved)
		saved.GET("/:quoteID", h.GetSaved)
		saved.POST("/:quoteID/load", h.Load)
		saved.POST("/:quoteID/duplicate", h.Duplicate)
		saved.DELETE("/:quoteID", h.DeleteSaved)
	}
}

// registerDocumentRoutes registers document generation endpoints.
func registerDocumentRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	h := handlers.NewDocumentHandler(base, cfg.Library, cfg.Quotes, cfg.Renderer)

	docs := rg.Group("/documents")
	{
		docs.GET("/quote", h.QuotePDF)
		docs.GET("/quote/model", h.QuoteModel)
		docs.GET("/contract", h.ContractPDF)
		docs.GET("/contract/model", h.ContractModel)
		docs.GET("/contract/data", h.ContractData)
	}
}

// registerWorkspaceRoutes registers export and import endpoints.
func registerWorkspaceRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig, persist func()) {
	h := handlers.NewWorkspaceHandler(base, cfg.Library, cfg.Quotes, persist)

	ws := rg.Group("/workspace")
	{
		ws.GET("/export", h.Export)
		ws.POST("/import", h.Import)
		ws.GET("/archive", h.ExportArchive)
		ws.POST("/archive", h.ImportArchive)
	}
}
