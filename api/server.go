// Package api exposes the catalog services over HTTP.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jacentio/warehouse/catalog"
)

const welcomeMessage = "Welcome! It's simple REST API for Parts Warehouse. " +
	"Manage categories under /category and parts under /part, " +
	"or search parts with /part/search."

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	categories *catalog.CategoryService
	parts      *catalog.PartService
	logger     *slog.Logger
}

// NewServer creates a Server. If logger is nil, slog.Default() is used.
func NewServer(categories *catalog.CategoryService, parts *catalog.PartService, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		categories: categories,
		parts:      parts,
		logger:     logger,
	}
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(s.logger))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": welcomeMessage})
	})
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	category := router.Group("/category")
	{
		category.POST("", s.createCategory)
		category.GET("", s.listCategories)
		category.GET("/:id", s.getCategory)
		category.PUT("/:id", s.updateCategory)
		category.DELETE("/:id", s.deleteCategory)
	}

	part := router.Group("/part")
	{
		part.POST("", s.createPart)
		part.GET("/search", s.searchParts)
		part.GET("/:id", s.getPart)
		part.PUT("/:id", s.updatePart)
		part.DELETE("/:id", s.deletePart)
	}

	return router
}

// requestLogger logs one line per request.
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(c.Request.Context(), level, "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start),
		)
	}
}
