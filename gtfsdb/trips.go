package gtfsdb

import (
	"context"
	"database/sql"
	"fmt"
)

// CreateTripParams mirrors the trips table columns for inserts.
type CreateTripParams struct {
	ID                   string
	RouteID              string
	ServiceID            string
	Headsign             string
	ShortName            string
	DirectionID          sql.NullInt64
	BlockID              string
	ShapeID              string
	WheelchairAccessible sql.NullInt64
	BikesAllowed         sql.NullInt64
	RouteVariant         string
}

const createTrip = `
INSERT INTO trips (
	trip_id, route_id, service_id, trip_headsign, trip_short_name,
	direction_id, block_id, shape_id, wheelchair_accessible, bikes_allowed,
	route_variant
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
`

func (q *Queries) CreateTrip(ctx context.Context, params CreateTripParams) error {
	_, err := q.db.ExecContext(ctx, createTrip,
		params.ID, params.RouteID, params.ServiceID,
		toNullString(params.Headsign), toNullString(params.ShortName),
		params.DirectionID, toNullString(params.BlockID), toNullString(params.ShapeID),
		params.WheelchairAccessible, params.BikesAllowed, toNullString(params.RouteVariant),
	)
	if err != nil {
		return fmt.Errorf("error inserting trip %s: %w", params.ID, err)
	}
	return nil
}

const getTrip = `
SELECT trip_id, route_id, service_id, trip_headsign, trip_short_name,
	direction_id, block_id, shape_id, wheelchair_accessible, bikes_allowed,
	route_variant
FROM trips WHERE trip_id = ?;
`

func (q *Queries) GetTrip(ctx context.Context, id string) (Trip, error) {
	var t Trip
	err := q.db.QueryRowContext(ctx, getTrip, id).Scan(
		&t.ID, &t.RouteID, &t.ServiceID, &t.Headsign, &t.ShortName,
		&t.DirectionID, &t.BlockID, &t.ShapeID, &t.WheelchairAccessible,
		&t.BikesAllowed, &t.RouteVariant,
	)
	return t, err
}

const listTripsForRoute = `
SELECT trip_id, route_id, service_id, trip_headsign, trip_short_name,
	direction_id, block_id, shape_id, wheelchair_accessible, bikes_allowed,
	route_variant
FROM trips WHERE route_id = ? ORDER BY trip_id;
`

func (q *Queries) ListTripsForRoute(ctx context.Context, routeID string) ([]Trip, error) {
	rows, err := q.db.QueryContext(ctx, listTripsForRoute, routeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var trips []Trip
	for rows.Next() {
		var t Trip
		if err := rows.Scan(
			&t.ID, &t.RouteID, &t.ServiceID, &t.Headsign, &t.ShortName,
			&t.DirectionID, &t.BlockID, &t.ShapeID, &t.WheelchairAccessible,
			&t.BikesAllowed, &t.RouteVariant,
		); err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}
	return trips, rows.Err()
}

func (q *Queries) CountTrips(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM trips;`).Scan(&count)
	return count, err
}

func (q *Queries) DeleteAllTrips(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM trips;`)
	return err
}
