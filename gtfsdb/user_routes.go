package gtfsdb

import (
	"context"
)

const createUserRoute = `
INSERT INTO user_routes (user_id, route_id) VALUES (?, ?);
`

func (q *Queries) CreateUserRoute(ctx context.Context, userID int64, routeID string) (int64, error) {
	result, err := q.db.ExecContext(ctx, createUserRoute, userID, routeID)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (q *Queries) UserRouteExists(ctx context.Context, userID int64, routeID string) (bool, error) {
	var count int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM user_routes WHERE user_id = ? AND route_id = ?;`,
		userID, routeID).Scan(&count)
	return count > 0, err
}

// DeleteUserRoute removes a bookmark by id, scoped to its owner. It reports
// whether a row was actually deleted.
func (q *Queries) DeleteUserRoute(ctx context.Context, id, userID int64) (bool, error) {
	result, err := q.db.ExecContext(ctx,
		`DELETE FROM user_routes WHERE id = ? AND user_id = ?;`, id, userID)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	return affected > 0, err
}

// ListUserRoutesRow is a bookmark joined with its route's display fields.
type ListUserRoutesRow struct {
	UserRoute
	Route Route
}

const listUserRoutes = `
SELECT ur.id, ur.user_id, ur.route_id, ur.created_at,
	r.route_id, r.agency_id, r.route_short_name, r.route_long_name,
	r.route_type, r.route_color, r.route_text_color
FROM user_routes ur
JOIN routes r ON r.route_id = ur.route_id
WHERE ur.user_id = ?
ORDER BY r.route_short_name;
`

func (q *Queries) ListUserRoutes(ctx context.Context, userID int64) ([]ListUserRoutesRow, error) {
	rows, err := q.db.QueryContext(ctx, listUserRoutes, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var result []ListUserRoutesRow
	for rows.Next() {
		var row ListUserRoutesRow
		if err := rows.Scan(
			&row.ID, &row.UserID, &row.RouteID, &row.CreatedAt,
			&row.Route.ID, &row.Route.AgencyID, &row.Route.ShortName, &row.Route.LongName,
			&row.Route.Type, &row.Route.Color, &row.Route.TextColor,
		); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

const getUserRoute = `
SELECT ur.id, ur.user_id, ur.route_id, ur.created_at,
	r.route_id, r.agency_id, r.route_short_name, r.route_long_name,
	r.route_type, r.route_color, r.route_text_color
FROM user_routes ur
JOIN routes r ON r.route_id = ur.route_id
WHERE ur.id = ?;
`

func (q *Queries) GetUserRoute(ctx context.Context, id int64) (ListUserRoutesRow, error) {
	var row ListUserRoutesRow
	err := q.db.QueryRowContext(ctx, getUserRoute, id).Scan(
		&row.ID, &row.UserID, &row.RouteID, &row.CreatedAt,
		&row.Route.ID, &row.Route.AgencyID, &row.Route.ShortName, &row.Route.LongName,
		&row.Route.Type, &row.Route.Color, &row.Route.TextColor,
	)
	return row, err
}

const listRouteIDsForUser = `
SELECT route_id FROM user_routes WHERE user_id = ? ORDER BY route_id;
`

func (q *Queries) ListRouteIDsForUser(ctx context.Context, userID int64) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, listRouteIDsForUser, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListUsersSharingRoutesRow is one candidate match: a user plus the number of
// bookmarked routes they share with the requester.
type ListUsersSharingRoutesRow struct {
	UserID           int64
	Username         string
	Email            string
	SharedRouteCount int64
}

// Candidates are every other user with at least one bookmark in the
// requester's bookmarked set, ordered by shared count descending then user id
// ascending. The ordering is part of the API contract.
const listUsersSharingRoutes = `
SELECT u.id, u.username, u.email, COUNT(*) AS shared_route_count
FROM user_routes other
JOIN users u ON u.id = other.user_id
WHERE other.user_id != ?1
  AND other.route_id IN (SELECT route_id FROM user_routes WHERE user_id = ?1)
GROUP BY u.id, u.username, u.email
ORDER BY shared_route_count DESC, u.id ASC;
`

func (q *Queries) ListUsersSharingRoutes(ctx context.Context, userID int64) ([]ListUsersSharingRoutesRow, error) {
	rows, err := q.db.QueryContext(ctx, listUsersSharingRoutes, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var result []ListUsersSharingRoutesRow
	for rows.Next() {
		var row ListUsersSharingRoutesRow
		if err := rows.Scan(&row.UserID, &row.Username, &row.Email, &row.SharedRouteCount); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// ListSharedRoutes returns the full route records bookmarked by both users,
// ordered by route id for a stable result.
const listSharedRoutes = `
SELECT r.route_id, r.agency_id, r.route_short_name, r.route_long_name,
	r.route_type, r.route_color, r.route_text_color
FROM routes r
JOIN user_routes a ON a.route_id = r.route_id AND a.user_id = ?1
JOIN user_routes b ON b.route_id = r.route_id AND b.user_id = ?2
ORDER BY r.route_id;
`

func (q *Queries) ListSharedRoutes(ctx context.Context, userA, userB int64) ([]Route, error) {
	rows, err := q.db.QueryContext(ctx, listSharedRoutes, userA, userB)
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
