// README: HTTP router registration.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"skyguide/internal/http/handlers"
	"skyguide/internal/http/middleware"
)

type RouterDeps struct {
	Assistant handlers.Answerer
	// Quota is optional; nil disables the per-client allowance.
	Quota  handlers.QuotaGuard
	Logger *slog.Logger
}

func NewRouter(d RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestLogger(d.Logger),
		middleware.Recovery(d.Logger),
		middleware.CORS(),
		middleware.ClientID(),
	)

	ask := handlers.NewAskHandler(d.Assistant, d.Quota, d.Logger)
	r.GET("/ask", ask.Ask)
	r.GET("/quota", ask.Quota)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	return r
}
