// Package server exposes the tutorial pipeline over HTTP for the studio
// frontend.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"neetstudio/internal/app"
)

type Server struct {
	service *app.Service
	engine  *gin.Engine
	addr    string
}

func New(service *app.Service, addr, dataDir string, maxUploadMB int64) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger())
	engine.MaxMultipartMemory = maxUploadMB << 20

	s := &Server{
		service: service,
		engine:  engine,
		addr:    addr,
	}

	// Finished videos and uploaded assets are served straight off disk,
	// matching the finalUrl written into metadata.
	engine.Static("/data/tutorials", dataDir)

	api := engine.Group("/api/tutorials")
	{
		api.POST("/upload-screen", s.uploadScreen)
		api.POST("/generate-script", s.generateScript)
		api.POST("/generate-voice", s.generateVoice)
		api.POST("/upload-voice", s.uploadVoice)
		api.POST("/upload-overlay", s.uploadOverlay)
		api.POST("/sync", s.sync)
		api.POST("/publish", s.publish)
		api.GET("/:id", s.getTutorial)
	}

	return s
}

func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
