// Package server exposes the demo panel over HTTP: operation triggers, the edge function
// URL setting and the documentation listings.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	shutdownGracePeriod    = 5 * time.Second
	readHeaderTimeout      = 10 * time.Second
	listenErrorFormat      = "listen on %s: %w"
	shutdownErrorFormat    = "shutdown server: %w"
	allowAllOriginsPattern = "*"
)

// Options configures a Server. Settings is required; Delay zero resolves calls immediately.
type Options struct {
	Settings       *Settings
	Delay          time.Duration
	AllowedOrigins []string
	Logger         *zap.Logger
}

type Server struct {
	settings *Settings
	delay    time.Duration
	logger   *zap.Logger
	router   *gin.Engine
}

func New(options Options) *Server {
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	settings := options.Settings
	if settings == nil {
		settings = NewSettings("")
	}

	server := &Server{
		settings: settings,
		delay:    options.Delay,
		logger:   logger,
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))
	router.Use(cors.New(corsConfiguration(options.AllowedOrigins)))

	router.GET("/health", server.health)
	api := router.Group("/api")
	{
		api.GET("/operations", server.listOperations)
		api.POST("/operations/:name/submit", server.submitOperation)
		api.GET("/endpoint", server.getEndpoint)
		api.PUT("/endpoint", server.putEndpoint)
		api.GET("/listings", server.listListings)
		api.GET("/listings/:name", server.getListing)
	}
	server.router = router
	return server
}

func (server *Server) Handler() http.Handler {
	return server.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (server *Server) Run(ctx context.Context, address string) error {
	httpServer := &http.Server{
		Addr:              address,
		Handler:           server.router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErrors := make(chan error, 1)
	go func() {
		server.logger.Info("demo server listening", zap.String("address", address))
		serveErrors <- httpServer.ListenAndServe()
	}()

	select {
	case serveErr := <-serveErrors:
		if errors.Is(serveErr, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf(listenErrorFormat, address, serveErr)
	case <-ctx.Done():
	}

	shutdownContext, cancel := context.WithTimeout(context.Background(), shutdownGracePeriod)
	defer cancel()
	if err := httpServer.Shutdown(shutdownContext); err != nil {
		return fmt.Errorf(shutdownErrorFormat, err)
	}
	server.logger.Info("demo server stopped")
	return nil
}

func corsConfiguration(allowedOrigins []string) cors.Config {
	configuration := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowHeaders:  []string{"Authorization", "X-Client-Info", "Apikey", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, allowAllOriginsPattern) {
		configuration.AllowAllOrigins = true
		return configuration
	}
	configuration.AllowOrigins = allowedOrigins
	return configuration
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startedAt := time.Now()
		c.Next()
		logger.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(startedAt)))
	}
}
