package models

import "fellowgoer.app/gtfsdb"

// User is the public representation of an account; the password hash never
// leaves the database layer.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func NewUser(u gtfsdb.User) User {
	return User{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
	}
}

// UserRoute is a bookmarked route with the route's display fields embedded.
type UserRoute struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	RouteID   string `json:"route_id"`
	CreatedAt string `json:"created_at"`
	Route     *Route `json:"route"`
}

func NewUserRoute(row gtfsdb.ListUserRoutesRow) UserRoute {
	route := NewRoute(row.Route)
	return UserRoute{
		ID:        row.ID,
		UserID:    row.UserID,
		RouteID:   row.RouteID,
		CreatedAt: row.CreatedAt,
		Route:     &route,
	}
}

func NewUserRoutes(rows []gtfsdb.ListUserRoutesRow) []UserRoute {
	userRoutes := make([]UserRoute, 0, len(rows))
	for _, row := range rows {
		userRoutes = append(userRoutes, NewUserRoute(row))
	}
	return userRoutes
}
