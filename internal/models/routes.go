// Package models holds the JSON shapes served by the REST API.
package models

import "fellowgoer.app/gtfsdb"

// GTFS route_type code for heavy rail; GO Transit feeds only carry rail (2)
// and bus (3).
const routeTypeRail = 2

// Route is the API representation of a transit route.
type Route struct {
	RouteID        string `json:"route_id"`
	RouteShortName string `json:"route_short_name"`
	RouteLongName  string `json:"route_long_name"`
	RouteType      string `json:"route_type"`
	RouteColor     string `json:"route_color"`
	RouteTextColor string `json:"route_text_color"`
}

// RouteTypeLabel maps a GTFS route_type code to the display label.
func RouteTypeLabel(routeType int64) string {
	if routeType == routeTypeRail {
		return "train"
	}
	return "bus"
}

// NewRoute converts a database row to the API shape.
func NewRoute(r gtfsdb.Route) Route {
	return Route{
		RouteID:        r.ID,
		RouteShortName: r.ShortName,
		RouteLongName:  r.LongName,
		RouteType:      RouteTypeLabel(r.Type),
		RouteColor:     r.Color.String,
		RouteTextColor: r.TextColor.String,
	}
}

// NewRoutes converts a slice of database rows, never returning nil so the
// JSON encodes as [] rather than null.
func NewRoutes(rows []gtfsdb.Route) []Route {
	routes := make([]Route, 0, len(rows))
	for _, r := range rows {
		routes = append(routes, NewRoute(r))
	}
	return routes
}
