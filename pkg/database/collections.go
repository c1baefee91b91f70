package database

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	VehicleEventsCollection    = "vehicle_events"
	VehiclePositionsCollection = "vehicle_positions"
	TripsCollection            = "trips"
)

func createIndexes() {
	createVehicleEventsIndexes()
	createVehiclePositionsIndexes()
	createTripsIndexes()
}

func createVehicleEventsIndexes() {
	collection := GetCollection(VehicleEventsCollection)
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "vehicleid", Value: 1}, {Key: "timestamp", Value: 1}},
		},
		{
			Keys:    bson.D{{Key: "event.id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	opts := options.CreateIndexes()
	_, err := collection.Indexes().CreateMany(context.Background(), indexes, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}

func createVehiclePositionsIndexes() {
	collection := GetCollection(VehiclePositionsCollection)
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "vehicleid", Value: 1}, {Key: "unixtimestamp", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	opts := options.CreateIndexes()
	_, err := collection.Indexes().CreateMany(context.Background(), indexes, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}

func createTripsIndexes() {
	collection := GetCollection(TripsCollection)
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	opts := options.CreateIndexes()
	_, err := collection.Indexes().CreateMany(context.Background(), indexes, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}
