package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"production/cmd"
	"production/internal/adapters/out/postgres"
	"production/internal/pkg/clock"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: configs.SlogLevel()}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := cmd.NewCompositionRoot(configs, openDatabase(configs), clock.NewSystem(), logger)
	if err != nil {
		log.Fatalf("Error wiring application: %v", err)
	}
	defer app.Close()

	jobManager := app.NewJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(ctx, app, configs.HTTPPort, logger)
}

func getConfigs() cmd.Config {
	// The .env file is optional; real environment variables take precedence.
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	configs, err := cmd.LoadConfig(os.Getenv)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return configs
}

func openDatabase(configs cmd.Config) *gorm.DB {
	if configs.StorageDriver != cmd.StorageDriverPostgres {
		return nil
	}

	db, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if err = postgres.Migrate(db); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}
	return db
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, port string, logger *slog.Logger) {
	e, err := app.NewRouter(ctx)
	if err != nil {
		log.Fatalf("Error building router: %v", err)
	}

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()
	logger.Info("HTTP server started", "port", port)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
}
