package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Session and configuration
	s.echo.GET("/api/session", s.handleSession)
	s.echo.PUT("/api/vocabulary", s.handleSetVocabulary)

	// Dataset loading
	s.echo.POST("/api/dataset/sample", s.handleLoadSample)
	s.echo.POST("/api/dataset/upload", s.handleUpload)

	// Analysis
	s.echo.POST("/api/analyze", s.handleAnalyze)
	s.echo.GET("/api/report", s.handleReport)
	s.echo.POST("/api/quick-check", s.handleQuickCheck)
}
