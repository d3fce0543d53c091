// README: Recovery middleware; a panic still answers 200 with a {message} apology.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

const ApologyMessage = "Xin lỗi, tôi đã gặp một lỗi không mong muốn. Vui lòng thử lại sau."

func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", "panic", r, "path", c.Request.URL.Path, "request_id", RequestID(c))
				c.AbortWithStatusJSON(http.StatusOK, gin.H{"message": ApologyMessage})
			}
		}()
		c.Next()
	}
}
