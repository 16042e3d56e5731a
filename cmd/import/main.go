// Command import loads a GTFS feed directory into the schedule database and
// exits. It performs the same full-replace import the API server runs at
// startup, for use from cron or a deploy pipeline.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"fellowgoer.app/gtfsdb"
	"fellowgoer.app/internal/appconf"
	"fellowgoer.app/internal/gtfs"
	"fellowgoer.app/internal/logging"
)

func main() {
	var (
		dbPath  string
		feedDir string
		env     string
		verbose bool
	)

	flag.StringVar(&dbPath, "db", "fellowgoer.db", "Path to the SQLite database")
	flag.StringVar(&feedDir, "feed-dir", "", "Directory holding extracted GTFS feed files")
	flag.StringVar(&env, "env", "development", "Environment (development|test|production)")
	flag.BoolVar(&verbose, "verbose", false, "Log import progress at debug level")
	flag.Parse()

	if feedDir == "" {
		fmt.Fprintln(os.Stderr, "the -feed-dir flag is required")
		flag.Usage()
		os.Exit(2)
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := logging.NewStructuredLogger(os.Stdout, level)

	client, err := gtfsdb.NewClient(gtfsdb.NewConfig(dbPath, appconf.EnvFromString(env), verbose))
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer logging.SafeCloseWithLogging(client, logger, "database_close")

	importer := gtfs.NewImporter(client, logger, gtfs.DefaultImportConfig(feedDir))
	summary, err := importer.Run(context.Background())
	if err != nil {
		logger.Error("import failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("imported %d routes, %d stops, %d trips, %d stop times (%d skipped) in %s\n",
		summary.Routes, summary.Stops, summary.Trips,
		summary.StopTimes, summary.SkippedStopTimes, summary.Runtime.Round(time.Millisecond))
}
