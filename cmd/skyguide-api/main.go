// README: Entry point; loads config, wires services, serves GET /ask until interrupted.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"skyguide/internal/app"
	"skyguide/internal/config"
	httptransport "skyguide/internal/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger := cfg.NewLogger()
	gin.SetMode(cfg.HTTP.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := app.Build(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("wiring: %v", err)
	}
	defer deps.Close()

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Assistant: deps.Assistant,
		Quota:     deps.QuotaGuard(),
		Logger:    logger,
	})
	server := httptransport.NewServer(cfg.HTTP.Addr, router, logger)

	if err := server.Run(ctx); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
