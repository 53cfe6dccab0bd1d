package main

import (
	"log/slog"
	"net/http"
	"os"

	"parcelhub/cmd"
	httpin "parcelhub/internal/adapters/in/http"
	"parcelhub/internal/adapters/out/rmq"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := cmd.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	gormDB, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		logger.Error("failed to connect to the database", "error", err)
		os.Exit(1)
	}

	rmqClient, err := rmq.NewClient(cfg.RMQURL, cfg.RMQExchange)
	if err != nil {
		logger.Error("failed to connect to the broker", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := rmqClient.Close(); closeErr != nil {
			logger.Error("failed to close the broker connection", "error", closeErr)
		}
	}()

	root, err := cmd.NewCompositionRoot(cfg, gormDB, rmqClient, logger)
	if err != nil {
		logger.Error("failed to build the application", "error", err)
		os.Exit(1)
	}
	defer root.Close()

	jobManager := root.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		logger.Error("failed to start background jobs", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(log.INFO)
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "healthy")
	})
	httpin.NewServer(root.CreateHTTPHandlers()).RegisterRoutes(e)

	logger.Info("starting http server", "port", cfg.HTTPPort)
	if err := e.Start(":" + cfg.HTTPPort); err != nil {
		logger.Error("http server stopped", "error", err)
		os.Exit(1)
	}
}
