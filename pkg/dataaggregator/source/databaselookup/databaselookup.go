package databaselookup

import (
	"context"
	"errors"
	"reflect"

	"github.com/travigo/opsconsole/pkg/ctdf"
	"github.com/travigo/opsconsole/pkg/dataaggregator/query"
	"github.com/travigo/opsconsole/pkg/dataaggregator/source"
	"github.com/travigo/opsconsole/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Source serves replays from the archive written by the recorder. Anything not archived is left
// to the next source.
type Source struct {
}

func (s Source) GetName() string {
	return "Database Lookup"
}

func (s Source) Supports() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf([]*ctdf.VehicleReplayStatus{}),
		reflect.TypeOf(ctdf.PositionPage{}),
		reflect.TypeOf(ctdf.TripDetail{}),
	}
}

func (s Source) Lookup(ctx context.Context, q any) (interface{}, error) {
	if !database.IsConnected() {
		return nil, source.UnsupportedSourceError
	}

	switch q := q.(type) {
	case query.VehicleReplay:
		return lookupVehicleReplay(ctx, q)
	case query.VehiclePositions:
		return lookupVehiclePositions(ctx, q)
	case query.TripDetail:
		collection := database.GetCollection(database.TripsCollection)

		var trip *ctdf.TripDetail
		err := collection.FindOne(ctx, q.ToBson()).Decode(&trip)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, source.UnsupportedSourceError
		} else if err != nil {
			return nil, err
		}

		return trip, nil
	}

	return nil, source.UnsupportedSourceError
}

func lookupVehicleReplay(ctx context.Context, q query.VehicleReplay) (interface{}, error) {
	collection := database.GetCollection(database.VehicleEventsCollection)

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cursor, err := collection.Find(ctx, q.ToBson(), opts)
	if err != nil {
		return nil, err
	}

	var records []ctdf.RecordedStatusEvent
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, source.UnsupportedSourceError
	}

	return []*ctdf.VehicleReplayStatus{GroupRecordedEvents(records)}, nil
}

// GroupRecordedEvents rebuilds the trip grouping of the upstream vehicle history response
func GroupRecordedEvents(records []ctdf.RecordedStatusEvent) *ctdf.VehicleReplayStatus {
	status := &ctdf.VehicleReplayStatus{}
	trips := map[string]*ctdf.VehicleReplayTrip{}

	for _, record := range records {
		if record.Event == nil {
			continue
		}

		trip, exists := trips[record.TripID]
		if !exists {
			trip = &ctdf.VehicleReplayTrip{
				ID:        record.TripID,
				RouteID:   record.RouteID,
				Direction: record.Direction,
			}
			trips[record.TripID] = trip
			status.Trip = append(status.Trip, trip)
		}

		trip.Event = append(trip.Event, record.Event)
	}

	return status
}

func lookupVehiclePositions(ctx context.Context, q query.VehiclePositions) (interface{}, error) {
	collection := database.GetCollection(database.VehiclePositionsCollection)
	filter := q.ToBson()

	count, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	if count == 0 {
		return nil, source.UnsupportedSourceError
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "unixtimestamp", Value: 1}}).
		SetSkip(int64(q.Skip())).
		SetLimit(int64(q.PageSize()))

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	var records []ctdf.RecordedPosition
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}

	page := &ctdf.PositionPage{
		Count: int(count),
	}
	for _, record := range records {
		page.Data = append(page.Data, record.Position)
	}

	return page, nil
}
