package gtfsdb

import (
	"context"
	"fmt"
)

// CreateRouteParams mirrors the routes table columns for inserts.
type CreateRouteParams struct {
	ID        string
	AgencyID  string
	ShortName string
	LongName  string
	Type      int64
	Color     string
	TextColor string
}

const createRoute = `
INSERT INTO routes (
	route_id, agency_id, route_short_name, route_long_name,
	route_type, route_color, route_text_color
) VALUES (?, ?, ?, ?, ?, ?, ?);
`

func (q *Queries) CreateRoute(ctx context.Context, params CreateRouteParams) error {
	_, err := q.db.ExecContext(ctx, createRoute,
		params.ID, toNullString(params.AgencyID), params.ShortName, params.LongName,
		params.Type, toNullString(params.Color), toNullString(params.TextColor),
	)
	if err != nil {
		return fmt.Errorf("error inserting route %s: %w", params.ID, err)
	}
	return nil
}

const getRoute = `
SELECT route_id, agency_id, route_short_name, route_long_name,
	route_type, route_color, route_text_color
FROM routes WHERE route_id = ?;
`

func (q *Queries) GetRoute(ctx context.Context, id string) (Route, error) {
	var r Route
	err := q.db.QueryRowContext(ctx, getRoute, id).Scan(
		&r.ID, &r.AgencyID, &r.ShortName, &r.LongName,
		&r.Type, &r.Color, &r.TextColor,
	)
	return r, err
}

const listRoutes = `
SELECT route_id, agency_id, route_short_name, route_long_name,
	route_type, route_color, route_text_color
FROM routes ORDER BY route_short_name;
`

func (q *Queries) ListRoutes(ctx context.Context) ([]Route, error) {
	rows, err := q.db.QueryContext(ctx, listRoutes)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var routes []Route
	for rows.Next() {
		var r Route
		if err := rows.Scan(
			&r.ID, &r.AgencyID, &r.ShortName, &r.LongName,
			&r.Type, &r.Color, &r.TextColor,
		); err != nil {
			return nil, err
		}
		routes = append(routes, r)
	}
	return routes, rows.Err()
}

func (q *Queries) CountRoutes(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM routes;`).Scan(&count)
	return count, err
}

func (q *Queries) DeleteAllRoutes(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM routes;`)
	return err
}
