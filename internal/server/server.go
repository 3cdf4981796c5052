package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nulzo/prompt-router/internal/config"
	"github.com/nulzo/prompt-router/internal/gateway"
	"github.com/nulzo/prompt-router/internal/server/middleware"
	"github.com/nulzo/prompt-router/internal/server/validator"
	"go.uber.org/zap"
)

type Server struct {
	router    *gin.Engine
	http      *http.Server
	config    *config.Config
	logger    *zap.Logger
	service   gateway.Service
	validator *validator.Validator
}

func New(cfg *config.Config, logger *zap.Logger, service gateway.Service) *Server {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	engine.Use(middleware.RequestID())
	engine.Use(middleware.Logger(logger))
	engine.Use(middleware.Recovery(logger))
	if cfg.Tracing.Enabled {
		engine.Use(middleware.Tracing(cfg.Tracing.ServiceName))
	}

	s := &Server{
		router:    engine,
		config:    cfg,
		logger:    logger,
		service:   service,
		validator: validator.New(),
	}

	s.SetupRoutes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:    ":" + s.config.Server.Port,
		Handler: s.router,
	}

	s.logger.Info("HTTP server listening", zap.String("addr", s.http.Addr))

	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}
