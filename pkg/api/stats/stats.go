package stats

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/opsconsole/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
)

const updateInterval = 1 * time.Minute

// RecordsStats are the sizes of the recorder archive
type RecordsStats struct {
	VehicleEvents          int64 `json:"vehicleEvents"`
	VehiclePositions       int64 `json:"vehiclePositions"`
	RecentVehiclePositions int64 `json:"recentVehiclePositions"`
	Trips                  int64 `json:"trips"`

	UpdatedAt time.Time `json:"updatedAt"`
}

var currentRecordsStats atomic.Pointer[RecordsStats]

func CurrentRecordsStats() *RecordsStats {
	return currentRecordsStats.Load()
}

// UpdateRecordsStats refreshes the archive counts every minute until ctx is done
func UpdateRecordsStats(ctx context.Context) {
	if !database.IsConnected() {
		return
	}

	ticker := time.NewTicker(updateInterval)
	defer ticker.Stop()

	for {
		currentRecordsStats.Store(countRecords(ctx))

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func countRecords(ctx context.Context) *RecordsStats {
	recordsStats := &RecordsStats{UpdatedAt: time.Now()}

	recordsStats.VehicleEvents = countCollection(ctx, database.VehicleEventsCollection, bson.D{})
	recordsStats.VehiclePositions = countCollection(ctx, database.VehiclePositionsCollection, bson.D{})
	recordsStats.RecentVehiclePositions = countCollection(ctx, database.VehiclePositionsCollection, bson.M{
		"unixtimestamp": bson.M{"$gte": time.Now().Add(-1 * time.Hour).Unix()},
	})
	recordsStats.Trips = countCollection(ctx, database.TripsCollection, bson.D{})

	return recordsStats
}

func countCollection(ctx context.Context, collectionName string, filter interface{}) int64 {
	count, err := database.GetCollection(collectionName).CountDocuments(ctx, filter)
	if err != nil {
		log.Error().Err(err).Str("collection", collectionName).Msg("Failed to count records")
	}

	return count
}
