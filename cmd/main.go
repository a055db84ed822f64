package main

import (
	"Ginraidee/cmd/config"
	migration "Ginraidee/cmd/database/migrate"
	"Ginraidee/internal/utils"
	"Ginraidee/pkg/logger"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	utils.LoadConfig()

	zl, err := logger.New(logger.Config{
		Level:  utils.GetConfig("LOG_LEVEL"),
		Format: utils.GetConfig("LOG_FORMAT"),
	})
	if err != nil {
		log.Fatalf("error building logger: %v", err)
	}
	defer zl.Sync()

	db, err := config.ConnectDB()
	if err != nil {
		zl.Fatal("error connecting to database", zap.Error(err))
	}
	if err := migration.Migrate(db); err != nil {
		zl.Fatal("error migrating database", zap.Error(err))
	}

	accessLog, err := config.OpenAccessLog()
	if err != nil {
		zl.Fatal("error opening access log", zap.Error(err))
	}
	defer accessLog.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	app, err := config.NewApp(db, config.AppOptions{
		Logger:    zl,
		Registry:  registry,
		AccessLog: accessLog,
		RateLimit: 10,
	})
	if err != nil {
		zl.Fatal("error creating app", zap.Error(err))
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		zl.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			zl.Error("shutdown failed", zap.Error(err))
		}
	}()

	port := utils.GetConfig("APP_PORT")
	zl.Info("listening", zap.String("port", port))
	if err := app.Listen(":" + port); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}
