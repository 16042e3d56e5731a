package gtfs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"fellowgoer.app/gtfsdb"
	"fellowgoer.app/internal/logging"
)

// ErrFeedDirectoryNotFound is returned when the configured feed directory
// does not exist. No writes are performed in that case.
var ErrFeedDirectoryNotFound = errors.New("feed directory not found")

// MalformedRouteRecordError reports a routes.txt record that could not be
// parsed. Routes gate everything downstream, so this fails the whole import.
type MalformedRouteRecordError struct {
	RouteID string
	Field   string
	Value   string
}

func (e *MalformedRouteRecordError) Error() string {
	return fmt.Sprintf("malformed route record %q: field %s has invalid value %q", e.RouteID, e.Field, e.Value)
}

// ImportConfig holds the import pipeline's tuning knobs. Batch sizes bound
// memory and transaction round-trips; correctness does not depend on them.
type ImportConfig struct {
	FeedDir string

	RouteBatchSize    int
	StopBatchSize     int
	TripBatchSize     int
	StopTimeBatchSize int
}

// DefaultImportConfig returns the standard batch sizes for a feed directory.
func DefaultImportConfig(feedDir string) ImportConfig {
	return ImportConfig{
		FeedDir:           feedDir,
		RouteBatchSize:    10,
		StopBatchSize:     50,
		TripBatchSize:     500,
		StopTimeBatchSize: 1000,
	}
}

// ImportSummary reports how many records each feed file contributed.
type ImportSummary struct {
	Routes           int64
	Stops            int64
	Trips            int64
	StopTimes        int64
	SkippedStopTimes int64
	Runtime          time.Duration
}

// Importer loads a GTFS feed directory into the schedule store, replacing
// any prior contents.
type Importer struct {
	client *gtfsdb.Client
	logger *slog.Logger
	config ImportConfig

	// Serializes concurrent import runs; the replace sequence must never
	// interleave with itself.
	mu sync.Mutex
}

func NewImporter(client *gtfsdb.Client, logger *slog.Logger, config ImportConfig) *Importer {
	return &Importer{
		client: client,
		logger: logger,
		config: config,
	}
}

// Run performs a full replace of the schedule store from the feed directory.
//
// The entire delete-then-reload sequence executes inside one database
// transaction, so concurrent readers never observe a half-replaced schedule
// and any failure rolls the whole run back.
func (imp *Importer) Run(ctx context.Context) (summary *ImportSummary, err error) {
	imp.mu.Lock()
	defer imp.mu.Unlock()

	start := time.Now()

	info, statErr := os.Stat(imp.config.FeedDir)
	if statErr != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrFeedDirectoryNotFound, imp.config.FeedDir)
	}

	tx, err := imp.client.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("error starting import transaction: %w", err)
	}
	defer logging.SafeRollbackWithLogging(tx, imp.logger, "gtfs_import")

	qtx := imp.client.Queries.WithTx(tx)

	existing, err := qtx.CountRoutes(ctx)
	if err != nil {
		return nil, fmt.Errorf("error counting existing routes: %w", err)
	}
	if existing > 0 {
		logging.LogOperation(imp.logger, "clearing existing schedule data",
			slog.Int64("existing_routes", existing))
		if err := imp.clearSchedule(ctx, qtx); err != nil {
			return nil, err
		}
	}

	summary = &ImportSummary{}

	if summary.Routes, err = imp.importRoutes(ctx, qtx); err != nil {
		return nil, err
	}
	if summary.Stops, err = imp.importStops(ctx, qtx); err != nil {
		return nil, err
	}
	if summary.Trips, err = imp.importTrips(ctx, qtx); err != nil {
		return nil, err
	}
	if summary.StopTimes, summary.SkippedStopTimes, err = imp.importStopTimes(ctx, qtx); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("error committing import transaction: %w", err)
	}

	summary.Runtime = time.Since(start)

	logging.LogOperation(imp.logger, "gtfs import completed",
		slog.Int64("routes", summary.Routes),
		slog.Int64("stops", summary.Stops),
		slog.Int64("trips", summary.Trips),
		slog.Int64("stop_times", summary.StopTimes),
		slog.Int64("skipped_stop_times", summary.SkippedStopTimes),
		slog.Duration("duration", summary.Runtime))

	return summary, nil
}

// clearSchedule deletes all schedule rows, children before parents so the
// foreign key chain is respected: stop_times, trips, stops, routes.
func (imp *Importer) clearSchedule(ctx context.Context, qtx *gtfsdb.Queries) error {
	if err := qtx.DeleteAllStopTimes(ctx); err != nil {
		return fmt.Errorf("error clearing stop_times: %w", err)
	}
	if err := qtx.DeleteAllTrips(ctx); err != nil {
		return fmt.Errorf("error clearing trips: %w", err)
	}
	if err := qtx.DeleteAllStops(ctx); err != nil {
		return fmt.Errorf("error clearing stops: %w", err)
	}
	if err := qtx.DeleteAllRoutes(ctx); err != nil {
		return fmt.Errorf("error clearing routes: %w", err)
	}
	return nil
}

// writeOp is one buffered row write, executed against the import transaction.
type writeOp func(context.Context, *gtfsdb.Queries) error

// streamBatches pulls records from a feed file, converts each into a writeOp,
// and flushes fixed-size batches to the transaction. The reader fills the
// next batch while the writer flushes the current one; the transaction is
// only ever touched from the writer goroutine. A convert that returns
// (nil, nil) skips the record.
func (imp *Importer) streamBatches(ctx context.Context, qtx *gtfsdb.Queries, ff *feedFile, batchSize int, convert func(record) (writeOp, error)) (int64, error) {
	if batchSize < 1 {
		batchSize = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	batches := make(chan []writeOp, 1)

	g.Go(func() error {
		defer close(batches)
		batch := make([]writeOp, 0, batchSize)
		for {
			rec, err := ff.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				return err
			}

			op, err := convert(rec)
			if err != nil {
				return err
			}
			if op == nil {
				continue
			}

			batch = append(batch, op)
			if len(batch) == batchSize {
				select {
				case batches <- batch:
				case <-ctx.Done():
					return ctx.Err()
				}
				batch = make([]writeOp, 0, batchSize)
			}
		}
		if len(batch) > 0 {
			select {
			case batches <- batch:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	var imported int64
	g.Go(func() error {
		for batch := range batches {
			for _, op := range batch {
				if err := op(ctx, qtx); err != nil {
					return err
				}
			}
			imported += int64(len(batch))
			imp.logger.Debug("import progress",
				slog.String("file", ff.name),
				slog.Int64("imported", imported))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return 0, err
	}
	return imported, nil
}

func (imp *Importer) importRoutes(ctx context.Context, qtx *gtfsdb.Queries) (int64, error) {
	ff, err := openFeedFile(imp.config.FeedDir, "routes.txt")
	if err != nil {
		return 0, err
	}
	defer logging.SafeCloseWithLogging(ff, imp.logger, "routes.txt")

	count, err := imp.streamBatches(ctx, qtx, ff, imp.config.RouteBatchSize, func(rec record) (writeOp, error) {
		routeType, convErr := strconv.Atoi(rec.Get("route_type"))
		if convErr != nil {
			return nil, &MalformedRouteRecordError{
				RouteID: rec.Get("route_id"),
				Field:   "route_type",
				Value:   rec.Get("route_type"),
			}
		}

		params := gtfsdb.CreateRouteParams{
			ID:        rec.Get("route_id"),
			AgencyID:  rec.Get("agency_id"),
			ShortName: rec.Get("route_short_name"),
			LongName:  rec.Get("route_long_name"),
			Type:      int64(routeType),
			Color:     rec.Get("route_color"),
			TextColor: rec.Get("route_text_color"),
		}
		return func(ctx context.Context, q *gtfsdb.Queries) error {
			return q.CreateRoute(ctx, params)
		}, nil
	})
	if err != nil {
		return 0, err
	}

	logging.LogOperation(imp.logger, "imported routes", slog.Int64("count", count))
	return count, nil
}

func (imp *Importer) importStops(ctx context.Context, qtx *gtfsdb.Queries) (int64, error) {
	ff, err := openFeedFile(imp.config.FeedDir, "stops.txt")
	if err != nil {
		return 0, err
	}
	defer logging.SafeCloseWithLogging(ff, imp.logger, "stops.txt")

	count, err := imp.streamBatches(ctx, qtx, ff, imp.config.StopBatchSize, func(rec record) (writeOp, error) {
		stopID := rec.Get("stop_id")

		lat, latErr := strconv.ParseFloat(rec.Get("stop_lat"), 64)
		lon, lonErr := strconv.ParseFloat(rec.Get("stop_lon"), 64)
		if latErr != nil || lonErr != nil {
			return nil, fmt.Errorf("stop %q: invalid coordinates (%q, %q)",
				stopID, rec.Get("stop_lat"), rec.Get("stop_lon"))
		}

		locationType, err := optionalInt(rec, "location_type")
		if err != nil {
			return nil, fmt.Errorf("stop %q: %w", stopID, err)
		}
		wheelchairBoarding, err := optionalInt(rec, "wheelchair_boarding")
		if err != nil {
			return nil, fmt.Errorf("stop %q: %w", stopID, err)
		}

		params := gtfsdb.CreateStopParams{
			ID:                 stopID,
			Code:               rec.Get("stop_code"),
			Name:               rec.Get("stop_name"),
			Lat:                lat,
			Lon:                lon,
			ZoneID:             rec.Get("zone_id"),
			URL:                rec.Get("stop_url"),
			LocationType:       locationType,
			ParentStation:      rec.Get("parent_station"),
			WheelchairBoarding: wheelchairBoarding,
		}
		return func(ctx context.Context, q *gtfsdb.Queries) error {
			return q.CreateStop(ctx, params)
		}, nil
	})
	if err != nil {
		return 0, err
	}

	logging.LogOperation(imp.logger, "imported stops", slog.Int64("count", count))
	return count, nil
}

func (imp *Importer) importTrips(ctx context.Context, qtx *gtfsdb.Queries) (int64, error) {
	ff, err := openFeedFile(imp.config.FeedDir, "trips.txt")
	if err != nil {
		return 0, err
	}
	defer logging.SafeCloseWithLogging(ff, imp.logger, "trips.txt")

	count, err := imp.streamBatches(ctx, qtx, ff, imp.config.TripBatchSize, func(rec record) (writeOp, error) {
		tripID := rec.Get("trip_id")

		directionID, err := optionalInt(rec, "direction_id")
		if err != nil {
			return nil, fmt.Errorf("trip %q: %w", tripID, err)
		}
		wheelchairAccessible, err := optionalInt(rec, "wheelchair_accessible")
		if err != nil {
			return nil, fmt.Errorf("trip %q: %w", tripID, err)
		}
		bikesAllowed, err := optionalInt(rec, "bikes_allowed")
		if err != nil {
			return nil, fmt.Errorf("trip %q: %w", tripID, err)
		}

		params := gtfsdb.CreateTripParams{
			ID:                   tripID,
			RouteID:              rec.Get("route_id"),
			ServiceID:            rec.Get("service_id"),
			Headsign:             rec.Get("trip_headsign"),
			ShortName:            rec.Get("trip_short_name"),
			DirectionID:          directionID,
			BlockID:              rec.Get("block_id"),
			ShapeID:              rec.Get("shape_id"),
			WheelchairAccessible: wheelchairAccessible,
			BikesAllowed:         bikesAllowed,
			RouteVariant:         rec.Get("route_variant"),
		}
		return func(ctx context.Context, q *gtfsdb.Queries) error {
			return q.CreateTrip(ctx, params)
		}, nil
	})
	if err != nil {
		return 0, err
	}

	logging.LogOperation(imp.logger, "imported trips", slog.Int64("count", count))
	return count, nil
}

func (imp *Importer) importStopTimes(ctx context.Context, qtx *gtfsdb.Queries) (imported, skipped int64, err error) {
	ff, err := openFeedFile(imp.config.FeedDir, "stop_times.txt")
	if err != nil {
		return 0, 0, err
	}
	defer logging.SafeCloseWithLogging(ff, imp.logger, "stop_times.txt")

	// skipped is only touched from streamBatches' reader goroutine.
	imported, err = imp.streamBatches(ctx, qtx, ff, imp.config.StopTimeBatchSize, func(rec record) (writeOp, error) {
		arrival, arrivalOK, arrivalErr := ParseTime(rec.Get("arrival_time"))
		departure, departureOK, departureErr := ParseTime(rec.Get("departure_time"))

		// A stop time is only usable when both times are present. Absent or
		// malformed times drop the row and the import carries on.
		var malformed *MalformedTimeError
		if errors.As(arrivalErr, &malformed) || errors.As(departureErr, &malformed) || !arrivalOK || !departureOK {
			skipped++
			return nil, nil
		}

		tripID := rec.Get("trip_id")

		stopSequence, convErr := strconv.Atoi(rec.Get("stop_sequence"))
		if convErr != nil {
			return nil, fmt.Errorf("stop_time for trip %q: invalid stop_sequence %q",
				tripID, rec.Get("stop_sequence"))
		}

		pickupType, err := defaultedInt(rec, "pickup_type")
		if err != nil {
			return nil, fmt.Errorf("stop_time for trip %q: %w", tripID, err)
		}
		dropOffType, err := defaultedInt(rec, "drop_off_type")
		if err != nil {
			return nil, fmt.Errorf("stop_time for trip %q: %w", tripID, err)
		}

		params := gtfsdb.CreateStopTimeParams{
			TripID:        tripID,
			StopID:        rec.Get("stop_id"),
			ArrivalTime:   int64(arrival),
			DepartureTime: int64(departure),
			StopSequence:  int64(stopSequence),
			PickupType:    pickupType,
			DropOffType:   dropOffType,
			StopHeadsign:  rec.Get("stop_headsign"),
		}
		return func(ctx context.Context, q *gtfsdb.Queries) error {
			return q.CreateStopTime(ctx, params)
		}, nil
	})
	if err != nil {
		return 0, 0, err
	}

	if skipped > 0 {
		logging.LogOperation(imp.logger, "skipped stop_times with unusable times",
			slog.Int64("count", skipped))
	}
	logging.LogOperation(imp.logger, "imported stop_times", slog.Int64("count", imported))
	return imported, skipped, nil
}

// optionalInt parses an integer field that may be absent. A field is present
// when it is a non-empty string, so a legitimate 0 is preserved rather than
// coerced to absent.
func optionalInt(rec record, name string) (sql.NullInt64, error) {
	raw := rec.Get(name)
	if raw == "" {
		return sql.NullInt64{}, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return sql.NullInt64{}, fmt.Errorf("invalid %s %q", name, raw)
	}
	return gtfsdb.ToNullInt64(int64(n)), nil
}

// defaultedInt parses an integer field that defaults to 0 when absent
// (pickup_type / drop_off_type semantics).
func defaultedInt(rec record, name string) (int64, error) {
	raw := rec.Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return int64(n), nil
}
