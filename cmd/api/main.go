package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fellowgoer.app/gtfsdb"
	"fellowgoer.app/internal/app"
	"fellowgoer.app/internal/config"
	"fellowgoer.app/internal/logging"
	"fellowgoer.app/internal/restapi"
)

func main() {
	var (
		configPath string
		cfg        = config.Default()
	)

	flag.StringVar(&configPath, "config", "", "Path to YAML config file")
	flag.IntVar(&cfg.Port, "port", cfg.Port, "API server port")
	flag.StringVar(&cfg.Env, "env", cfg.Env, "Environment (development|test|production)")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to the SQLite database")
	flag.StringVar(&cfg.FeedDir, "feed-dir", cfg.FeedDir, "Directory holding extracted GTFS feed files")
	flag.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	flag.Parse()

	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			slog.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		cfg = loaded
	} else if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.NewStructuredLogger(os.Stdout, logLevel(cfg.LogLevel))

	client, err := gtfsdb.NewClient(gtfsdb.NewConfig(cfg.DBPath, cfg.Environment(), false))
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer logging.SafeCloseWithLogging(client, logger, "database_close")

	application := app.NewApplication(cfg, logger, client)

	if err := importOnEmptyDatabase(application); err != nil {
		logger.Error("initial feed import failed", "error", err)
		os.Exit(1)
	}

	api := restapi.NewRestAPI(application)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      api.Handler(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	shutdownErr := make(chan error)
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		sig := <-quit

		logger.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		shutdownErr <- srv.Shutdown(ctx)
	}()

	logger.Info("starting server", "addr", srv.Addr, "env", cfg.Env)
	err = srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		logger.Error(err.Error())
		os.Exit(1)
	}
	if err := <-shutdownErr; err != nil {
		logger.Error("shutdown failed", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

// importOnEmptyDatabase runs a feed import at startup when a feed directory
// is configured and no schedule data has been loaded yet.
func importOnEmptyDatabase(application *app.Application) error {
	if application.Importer == nil {
		return nil
	}

	routes, err := application.GtfsDB.Queries.CountRoutes(context.Background())
	if err != nil {
		return err
	}
	if routes > 0 {
		return nil
	}

	application.Logger.Info("empty schedule store, importing feed",
		"feed_dir", application.Config.FeedDir)
	summary, err := application.Importer.Run(context.Background())
	if err != nil {
		return err
	}
	application.Logger.Info("feed import complete",
		"routes", summary.Routes,
		"stops", summary.Stops,
		"trips", summary.Trips,
		"stop_times", summary.StopTimes,
		"skipped_stop_times", summary.SkippedStopTimes)
	return nil
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
