package gtfsdb

import (
	"context"
	"database/sql"
	"fmt"
)

// CreateStopParams mirrors the stops table columns for inserts.
type CreateStopParams struct {
	ID                 string
	Code               string
	Name               string
	Lat                float64
	Lon                float64
	ZoneID             string
	URL                string
	LocationType       sql.NullInt64
	ParentStation      string
	WheelchairBoarding sql.NullInt64
}

const createStop = `
INSERT INTO stops (
	stop_id, stop_code, stop_name, stop_lat, stop_lon,
	zone_id, stop_url, location_type, parent_station, wheelchair_boarding
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
`

func (q *Queries) CreateStop(ctx context.Context, params CreateStopParams) error {
	_, err := q.db.ExecContext(ctx, createStop,
		params.ID, toNullString(params.Code), params.Name, params.Lat, params.Lon,
		toNullString(params.ZoneID), toNullString(params.URL), params.LocationType,
		toNullString(params.ParentStation), params.WheelchairBoarding,
	)
	if err != nil {
		return fmt.Errorf("error inserting stop %s: %w", params.ID, err)
	}
	return nil
}

const getStop = `
SELECT stop_id, stop_code, stop_name, stop_lat, stop_lon,
	zone_id, stop_url, location_type, parent_station, wheelchair_boarding
FROM stops WHERE stop_id = ?;
`

func (q *Queries) GetStop(ctx context.Context, id string) (Stop, error) {
	var s Stop
	err := q.db.QueryRowContext(ctx, getStop, id).Scan(
		&s.ID, &s.Code, &s.Name, &s.Lat, &s.Lon,
		&s.ZoneID, &s.URL, &s.LocationType, &s.ParentStation, &s.WheelchairBoarding,
	)
	return s, err
}

func (q *Queries) CountStops(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM stops;`).Scan(&count)
	return count, err
}

func (q *Queries) DeleteAllStops(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM stops;`)
	return err
}
