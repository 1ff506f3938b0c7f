package middleware

import (
	"errors"
	"net/http"

	"portfolio-api/internal/delivery/http/response"
	"portfolio-api/pkg/apperror"
	"portfolio-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last error a handler pushed with c.Error.
func ErrorHandler(render response.Renderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			appErr = apperror.Internal(err)
		}
		if appErr.Code >= http.StatusInternalServerError {
			logger.Log.Error("request failed",
				"request_id", c.GetString(RequestIDKey),
				"path", c.FullPath(),
				"kind", string(apperror.KindOf(err)),
				"error", err.Error(),
			)
		}
		render(c, appErr.Code, appErr.Message)
	}
}
