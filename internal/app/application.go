// Package app wires the shared dependencies for HTTP handlers, helpers,
// and middleware.
package app

import (
	"log/slog"

	"fellowgoer.app/gtfsdb"
	"fellowgoer.app/internal/auth"
	"fellowgoer.app/internal/config"
	"fellowgoer.app/internal/gtfs"
	"fellowgoer.app/internal/match"
)

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware. One instance is built in main and shared by every
// request.
type Application struct {
	Config   config.Config
	Logger   *slog.Logger
	GtfsDB   *gtfsdb.Client
	Tokens   *auth.TokenManager
	Matcher  *match.Engine
	Importer *gtfs.Importer
}

// NewApplication assembles the dependency graph on top of an opened
// database client.
func NewApplication(cfg config.Config, logger *slog.Logger, client *gtfsdb.Client) *Application {
	app := &Application{
		Config:  cfg,
		Logger:  logger,
		GtfsDB:  client,
		Tokens:  auth.NewTokenManager(cfg.JWTSecret),
		Matcher: match.NewEngine(client.Queries, logger),
	}
	if cfg.FeedDir != "" {
		app.Importer = gtfs.NewImporter(client, logger, gtfs.DefaultImportConfig(cfg.FeedDir))
	}
	return app
}
