package models

import (
	"fellowgoer.app/gtfsdb"
	"fellowgoer.app/internal/gtfs"
)

// StopTime is the API representation of one scheduled visit of a trip to a
// stop. Times render as normalized HH:MM:SS wall-clock strings.
type StopTime struct {
	TripID        string  `json:"trip_id"`
	StopID        string  `json:"stop_id"`
	StopName      string  `json:"stop_name"`
	StopLat       float64 `json:"stop_lat"`
	StopLon       float64 `json:"stop_lon"`
	ArrivalTime   string  `json:"arrival_time"`
	DepartureTime string  `json:"departure_time"`
	StopSequence  int64   `json:"stop_sequence"`
}

// NewStopTime converts a joined stop_times row to the API shape.
func NewStopTime(row gtfsdb.ListStopTimesForTripRow) StopTime {
	return StopTime{
		TripID:        row.TripID,
		StopID:        row.StopID,
		StopName:      row.StopName,
		StopLat:       row.StopLat,
		StopLon:       row.StopLon,
		ArrivalTime:   gtfs.FormatTime(int(row.ArrivalTime)),
		DepartureTime: gtfs.FormatTime(int(row.DepartureTime)),
		StopSequence:  row.StopSequence,
	}
}

func NewStopTimes(rows []gtfsdb.ListStopTimesForTripRow) []StopTime {
	stopTimes := make([]StopTime, 0, len(rows))
	for _, row := range rows {
		stopTimes = append(stopTimes, NewStopTime(row))
	}
	return stopTimes
}
