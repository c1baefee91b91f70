package recorder

import (
	"errors"
	"fmt"
	"time"

	"github.com/travigo/opsconsole/pkg/ctdf"
	"github.com/travigo/opsconsole/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type RecordedEventKind string

const (
	RecordedEventKindStatus   RecordedEventKind = "status"
	RecordedEventKindPosition RecordedEventKind = "position"
	RecordedEventKindTrip     RecordedEventKind = "trip"
)

var ErrInvalidRecordedEvent = errors.New("invalid recorded event")

// RecordedEvent is the queue payload written by the feed decoders and archived by the consumers
type RecordedEvent struct {
	Kind RecordedEventKind `json:"kind"`

	VehicleID string `json:"vehicleId"`
	TripID    string `json:"tripId,omitempty"`
	RouteID   string `json:"routeId,omitempty"`
	Direction string `json:"direction,omitempty"`

	Event    *ctdf.VehicleEvent `json:"event,omitempty"`
	Position *ctdf.Position     `json:"position,omitempty"`
	Trip     *ctdf.TripDetail   `json:"trip,omitempty"`

	DataSource *ctdf.DataSource `json:"dataSource,omitempty"`
	RecordedAt time.Time        `json:"recordedAt"`
}

// WriteModel returns the upsert archiving the event and the collection it belongs in
func (e *RecordedEvent) WriteModel(now time.Time) (string, mongo.WriteModel, error) {
	switch e.Kind {
	case RecordedEventKindStatus:
		if e.Event == nil || e.Event.ID == "" {
			return "", nil, fmt.Errorf("%w: status without event id", ErrInvalidRecordedEvent)
		}

		record := ctdf.RecordedStatusEvent{
			VehicleID: e.VehicleID,
			TripID:    e.TripID,
			RouteID:   e.RouteID,
			Direction: e.Direction,

			Timestamp: e.Event.Timestamp,
			Event:     e.Event,

			DataSource:       e.DataSource,
			CreationDateTime: now,
		}

		model := mongo.NewReplaceOneModel().
			SetFilter(bson.M{"event.id": e.Event.ID}).
			SetReplacement(record).
			SetUpsert(true)

		return database.VehicleEventsCollection, model, nil
	case RecordedEventKindPosition:
		if e.Position == nil {
			return "", nil, fmt.Errorf("%w: position missing", ErrInvalidRecordedEvent)
		}

		timestamp, ok := e.Position.Timestamp.Int64()
		if !ok {
			return "", nil, fmt.Errorf("%w: position timestamp %q", ErrInvalidRecordedEvent, e.Position.Timestamp)
		}

		vehicleID := e.VehicleID
		if vehicleID == "" {
			vehicleID = e.Position.VehicleID
		}
		if vehicleID == "" {
			return "", nil, fmt.Errorf("%w: position without vehicle", ErrInvalidRecordedEvent)
		}

		position := *e.Position
		position.VehicleID = vehicleID

		record := ctdf.RecordedPosition{
			VehicleID:     vehicleID,
			UnixTimestamp: timestamp,
			Position:      &position,

			DataSource:       e.DataSource,
			CreationDateTime: now,
		}

		model := mongo.NewReplaceOneModel().
			SetFilter(bson.M{"vehicleid": vehicleID, "unixtimestamp": timestamp}).
			SetReplacement(record).
			SetUpsert(true)

		return database.VehiclePositionsCollection, model, nil
	case RecordedEventKindTrip:
		if e.Trip == nil || e.Trip.ID == "" {
			return "", nil, fmt.Errorf("%w: trip without id", ErrInvalidRecordedEvent)
		}

		model := mongo.NewReplaceOneModel().
			SetFilter(bson.M{"id": e.Trip.ID}).
			SetReplacement(e.Trip).
			SetUpsert(true)

		return database.TripsCollection, model, nil
	}

	return "", nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidRecordedEvent, e.Kind)
}
