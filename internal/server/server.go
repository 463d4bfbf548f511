// Package server exposes the dashboard over a JSON HTTP API: dataset
// loading, vocabulary configuration, analysis runs, and the single-text
// quick check.
package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/lkumawat9176/sentimentscope/internal/analysis"
)

type Server struct {
	echo    *echo.Echo
	session *analysis.Session
	port    string
}

func NewServer(port string, session *analysis.Session) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	srv := &Server{
		echo:    e,
		session: session,
		port:    port,
	}

	srv.registerRoutes()

	return srv
}

func (s *Server) Start() error {
	slog.Info("[Server] Starting server", slog.String("port", s.port))
	return s.echo.Start(fmt.Sprintf(":%s", s.port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
