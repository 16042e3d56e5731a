package gtfsdb

import "database/sql"

// Route represents a transit route in the GTFS feed
type Route struct {
	ID        string         // route_id
	AgencyID  sql.NullString // agency_id
	ShortName string         // route_short_name
	LongName  string         // route_long_name
	Type      int64          // route_type
	Color     sql.NullString // route_color
	TextColor sql.NullString // route_text_color
}

// Stop represents a transit stop or station in the GTFS feed
type Stop struct {
	ID                 string         // stop_id
	Code               sql.NullString // stop_code
	Name               string         // stop_name
	Lat                float64        // stop_lat
	Lon                float64        // stop_lon
	ZoneID             sql.NullString // zone_id
	URL                sql.NullString // stop_url
	LocationType       sql.NullInt64  // location_type
	ParentStation      sql.NullString // parent_station
	WheelchairBoarding sql.NullInt64  // wheelchair_boarding
}

// Trip represents a journey made by a vehicle in the GTFS feed
type Trip struct {
	ID                   string         // trip_id
	RouteID              string         // route_id
	ServiceID            string         // service_id
	Headsign             sql.NullString // trip_headsign
	ShortName            sql.NullString // trip_short_name
	DirectionID          sql.NullInt64  // direction_id
	BlockID              sql.NullString // block_id
	ShapeID              sql.NullString // shape_id
	WheelchairAccessible sql.NullInt64  // wheelchair_accessible
	BikesAllowed         sql.NullInt64  // bikes_allowed
	RouteVariant         sql.NullString // route_variant
}

// StopTime represents a vehicle arrival/departure at a specific stop.
// Arrival and departure are stored as seconds since midnight, already
// normalized into a single service day.
type StopTime struct {
	ID            int64          // synthetic autoincrement id
	TripID        string         // trip_id
	StopID        string         // stop_id
	ArrivalTime   int64          // arrival_time
	DepartureTime int64          // departure_time
	StopSequence  int64          // stop_sequence
	PickupType    int64          // pickup_type
	DropOffType   int64          // drop_off_type
	StopHeadsign  sql.NullString // stop_headsign
}

// User is a registered account
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    string
}

// UserRoute is a user's bookmarked route
type UserRoute struct {
	ID        int64
	UserID    int64
	RouteID   string
	CreatedAt string
}

// Chat is a conversation between two users
type Chat struct {
	ID        int64
	CreatedAt string
	UpdatedAt string
}

// ChatParticipant ties a user to a chat
type ChatParticipant struct {
	ID       int64
	ChatID   int64
	UserID   int64
	JoinedAt string
}

// Message is a single message within a chat
type Message struct {
	ID        int64
	ChatID    int64
	SenderID  int64
	Content   string
	CreatedAt string
}
