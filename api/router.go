// Package api exposes Monte Carlo fund simulations over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

// NewRouter registers the API routes on a new gin engine.
func NewRouter(s *Server) *gin.Engine {
	router := gin.New()
	router.Use(requestLogger())
	router.Use(recovery())

	router.GET("/health", s.Health)
	router.GET("/metrics", gin.WrapH(MetricsHandler()))

	api := router.Group("/api/v1")
	{
		api.GET("/defaults", s.Defaults)
		api.POST("/simulations", s.RunSimulation)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, errorResponse("NOT_FOUND", "Not found", nil))
	})
	return router
}

// Handler returns the router wrapped with CORS handling.
func (s *Server) Handler() http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: s.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(NewRouter(s))
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logrus.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start),
		}).Debug("request")
	}
}

// recovery turns panics into a JSON 500.
func recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logrus.Errorf("panic serving %s: %v", c.Request.URL.Path, recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			errorResponse("INTERNAL_ERROR", "An unexpected error occurred", nil))
	})
}
