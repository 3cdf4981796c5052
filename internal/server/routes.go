package server

import (
	"github.com/nulzo/prompt-router/internal/server/middleware"
	v1 "github.com/nulzo/prompt-router/internal/server/v1"
)

func (s *Server) SetupRoutes() {
	s.router.Use(middleware.ErrorHandler(s.logger))

	healthHandler := v1.NewHealthHandler(s.service, s.logger)
	s.router.GET("/health", healthHandler.Health)

	modelHandler := v1.NewModelHandler(s.service)
	s.router.GET("/models", modelHandler.ListModels)

	chatHandler := v1.NewChatHandler(s.service, s.validator)
	s.router.POST("/v1/chat/completions", chatHandler.CreateCompletion)

	rules := s.router.Group("/regex-rules")
	{
		policyHandler := v1.NewPolicyHandler(s.service, s.validator)
		rules.GET("", policyHandler.List)
		rules.POST("", policyHandler.Create)
		rules.DELETE("/:id", policyHandler.Delete)
	}

	overrideHandler := v1.NewOverrideHandler(s.service, s.validator, s.logger)
	s.router.GET("/file-upload-routing", overrideHandler.Get)
	s.router.POST("/file-upload-routing", overrideHandler.Set)

	routeLogHandler := v1.NewRouteLogHandler(s.service)
	s.router.GET("/route-logs", routeLogHandler.List)
}
