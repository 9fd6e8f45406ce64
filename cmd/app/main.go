package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"dispatch/cmd"
	httpadapter "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/in/ws"
	"dispatch/internal/generated/servers"
	"dispatch/internal/jobs"
	"dispatch/internal/pkg/logging"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()
	config := cmd.LoadConfig()
	logger := logging.NewLogger(config.LogLevel)

	hub := ws.NewHub(logger)

	root, err := cmd.NewCompositionRoot(config, logger, hub)
	if err != nil {
		log.Fatalf("composition root: %v", err)
	}
	defer root.Close()

	jobManager := jobs.NewJobManager(
		root.CreateRefreshDriverActivityCommandHandler(),
		root.CreateDispatchPendingOrderCommandHandler(),
		config.AutoDispatch,
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("jobs: %v", err)
	}
	defer jobManager.StopAll()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/ws/locations", hub.ServeWS)

	servers.RegisterHandlers(e, httpadapter.NewServer(root.HTTPHandlers()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)); err != nil && err != http.ErrServerClosed {
			logger.Error("web server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}
