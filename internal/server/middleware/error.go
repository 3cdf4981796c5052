package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nulzo/prompt-router/pkg/api"
	"go.uber.org/zap"
)

// ErrorHandler renders the last error pushed by a handler as an RFC 9457 problem.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err

		var problem *api.Problem
		if errors.As(err, &problem) {
			if problem.Log != nil {
				logger.Error("Request failed",
					zap.Int("status", problem.Status),
					zap.String("request_id", c.GetString(RequestIDKey)),
					zap.Error(problem.Log),
				)
			}

			c.AbortWithStatusJSON(problem.Status, problem)
			return
		}

		// at this point it's an unknown error, so we fall back to a plain 500
		logger.Error("Unhandled error", zap.String("request_id", c.GetString(RequestIDKey)), zap.Error(err))

		c.AbortWithStatusJSON(http.StatusInternalServerError, api.NewError(
			http.StatusInternalServerError,
			"Internal Server Error",
			"An unexpected error occurred.",
		))
	}
}
