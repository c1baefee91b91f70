package ctdf

import "time"

// RecordedStatusEvent is the archived form of a status event as written by the recorder
type RecordedStatusEvent struct {
	VehicleID string `bson:"vehicleid"`
	TripID    string `bson:"tripid"`
	RouteID   string `bson:"routeid"`
	Direction string `bson:"direction"`

	Timestamp int64         `bson:"timestamp"`
	Event     *VehicleEvent `bson:"event"`

	DataSource       *DataSource `bson:"datasource"`
	CreationDateTime time.Time   `bson:"creationdatetime"`
}

// RecordedPosition is the archived form of a position ping
type RecordedPosition struct {
	VehicleID     string    `bson:"vehicleid"`
	UnixTimestamp int64     `bson:"unixtimestamp"`
	Position      *Position `bson:"position"`

	DataSource       *DataSource `bson:"datasource"`
	CreationDateTime time.Time   `bson:"creationdatetime"`
}
