package models

import "fellowgoer.app/gtfsdb"

// Trip is the API representation of a scheduled run of a route.
type Trip struct {
	TripID               string `json:"trip_id"`
	RouteID              string `json:"route_id"`
	ServiceID            string `json:"service_id"`
	TripHeadsign         string `json:"trip_headsign"`
	DirectionID          *int64 `json:"direction_id"`
	WheelchairAccessible bool   `json:"wheelchair_accessible"`
	BikesAllowed         bool   `json:"bikes_allowed"`
}

// NewTrip converts a database row to the API shape.
func NewTrip(t gtfsdb.Trip) Trip {
	trip := Trip{
		TripID:               t.ID,
		RouteID:              t.RouteID,
		ServiceID:            t.ServiceID,
		TripHeadsign:         t.Headsign.String,
		WheelchairAccessible: t.WheelchairAccessible.Valid && t.WheelchairAccessible.Int64 == 1,
		BikesAllowed:         t.BikesAllowed.Valid && t.BikesAllowed.Int64 == 1,
	}
	if t.DirectionID.Valid {
		direction := t.DirectionID.Int64
		trip.DirectionID = &direction
	}
	return trip
}

func NewTrips(rows []gtfsdb.Trip) []Trip {
	trips := make([]Trip, 0, len(rows))
	for _, t := range rows {
		trips = append(trips, NewTrip(t))
	}
	return trips
}
