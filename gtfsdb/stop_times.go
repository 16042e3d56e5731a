package gtfsdb

import (
	"context"
	"fmt"
)

// CreateStopTimeParams mirrors the stop_times table columns for inserts.
type CreateStopTimeParams struct {
	TripID        string
	StopID        string
	ArrivalTime   int64
	DepartureTime int64
	StopSequence  int64
	PickupType    int64
	DropOffType   int64
	StopHeadsign  string
}

const createStopTime = `
INSERT INTO stop_times (
	trip_id, stop_id, arrival_time, departure_time, stop_sequence,
	pickup_type, drop_off_type, stop_headsign
) VALUES (?, ?, ?, ?, ?, ?, ?, ?);
`

func (q *Queries) CreateStopTime(ctx context.Context, params CreateStopTimeParams) error {
	_, err := q.db.ExecContext(ctx, createStopTime,
		params.TripID, params.StopID, params.ArrivalTime, params.DepartureTime,
		params.StopSequence, params.PickupType, params.DropOffType,
		toNullString(params.StopHeadsign),
	)
	if err != nil {
		return fmt.Errorf("error inserting stop_time for trip %s: %w", params.TripID, err)
	}
	return nil
}

const listStopTimesForTrip = `
SELECT st.id, st.trip_id, st.stop_id, st.arrival_time, st.departure_time,
	st.stop_sequence, st.pickup_type, st.drop_off_type, st.stop_headsign
FROM stop_times st
WHERE st.trip_id = ?
ORDER BY st.stop_sequence;
`

// ListStopTimesForTrip returns a trip's stop times in visit order.
func (q *Queries) ListStopTimesForTrip(ctx context.Context, tripID string) ([]StopTime, error) {
	rows, err := q.db.QueryContext(ctx, listStopTimesForTrip, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var stopTimes []StopTime
	for rows.Next() {
		var st StopTime
		if err := rows.Scan(
			&st.ID, &st.TripID, &st.StopID, &st.ArrivalTime, &st.DepartureTime,
			&st.StopSequence, &st.PickupType, &st.DropOffType, &st.StopHeadsign,
		); err != nil {
			return nil, err
		}
		stopTimes = append(stopTimes, st)
	}
	return stopTimes, rows.Err()
}

// ListStopTimesForTripRow carries a stop time with its stop's display fields.
type ListStopTimesForTripRow struct {
	StopTime
	StopName string
	StopLat  float64
	StopLon  float64
}

const listStopTimesWithStopsForTrip = `
SELECT st.id, st.trip_id, st.stop_id, st.arrival_time, st.departure_time,
	st.stop_sequence, st.pickup_type, st.drop_off_type, st.stop_headsign,
	s.stop_name, s.stop_lat, s.stop_lon
FROM stop_times st
JOIN stops s ON s.stop_id = st.stop_id
WHERE st.trip_id = ?
ORDER BY st.stop_sequence;
`

// ListStopTimesWithStopsForTrip is the API-facing variant of
// ListStopTimesForTrip, joined against stops for display.
func (q *Queries) ListStopTimesWithStopsForTrip(ctx context.Context, tripID string) ([]ListStopTimesForTripRow, error) {
	rows, err := q.db.QueryContext(ctx, listStopTimesWithStopsForTrip, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var result []ListStopTimesForTripRow
	for rows.Next() {
		var row ListStopTimesForTripRow
		if err := rows.Scan(
			&row.ID, &row.TripID, &row.StopID, &row.ArrivalTime, &row.DepartureTime,
			&row.StopSequence, &row.PickupType, &row.DropOffType, &row.StopHeadsign,
			&row.StopName, &row.StopLat, &row.StopLon,
		); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (q *Queries) CountStopTimes(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM stop_times;`).Scan(&count)
	return count, err
}

func (q *Queries) DeleteAllStopTimes(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM stop_times;`)
	return err
}
