package middleware

import (
	"net/http"

	"portfolio-api/internal/delivery/http/response"
	"portfolio-api/pkg/security"

	"github.com/gin-gonic/gin"
)

const panicMessage = "Unexpected server error. Please try again."

// Recovery turns a panic into a 500 in the route group's error format.
// The panic value is logged, never returned.
func Recovery(render response.Renderer, secLog *security.SecurityLogger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		if secLog != nil {
			secLog.LogServerError(c.Request.Context(), c.ClientIP(), c.GetString(RequestIDKey), c.FullPath(), recovered)
		}
		render(c, http.StatusInternalServerError, panicMessage)
		c.Abort()
	})
}
