package recorder

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/adjust/rmq/v5"
	"github.com/rs/zerolog/log"
	"github.com/travigo/opsconsole/pkg/ctdf"
	"google.golang.org/protobuf/proto"
)

// GTFSRealtime turns GTFS-RT vehicle position feeds into recorded position events
type GTFSRealtime struct {
	DataSource *ctdf.DataSource

	// MaxAge drops positions recorded longer ago than this, zero keeps everything
	MaxAge time.Duration
}

func (g *GTFSRealtime) Decode(body []byte, now time.Time) ([]*RecordedEvent, error) {
	feed := gtfs.FeedMessage{}
	if err := proto.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("parse GTFS-RT feed: %w", err)
	}

	var events []*RecordedEvent
	stale := 0

	for _, entity := range feed.GetEntity() {
		vehiclePosition := entity.GetVehicle()
		if vehiclePosition == nil || vehiclePosition.GetPosition() == nil {
			continue
		}

		recordedAt := now
		if vehiclePosition.Timestamp != nil {
			recordedAt = time.Unix(int64(vehiclePosition.GetTimestamp()), 0)
		}

		if g.MaxAge > 0 && now.Sub(recordedAt) > g.MaxAge {
			stale += 1
			continue
		}

		vehicleID := vehiclePosition.GetVehicle().GetId()
		if vehicleID == "" {
			vehicleID = entity.GetId()
		}

		feedPosition := vehiclePosition.GetPosition()
		latitude := float64(feedPosition.GetLatitude())
		longitude := float64(feedPosition.GetLongitude())

		position := &ctdf.Position{
			VehicleID: vehicleID,
			Latitude:  &latitude,
			Longitude: &longitude,
			Bearing:   float64(feedPosition.GetBearing()),
			Speed:     float64(feedPosition.GetSpeed()),
			Timestamp: ctdf.UnixTimestampFromInt(recordedAt.Unix()),
		}

		trip := vehiclePosition.GetTrip()
		if trip.GetTripId() != "" || trip.GetRouteId() != "" {
			position.Trip = &ctdf.PositionTrip{
				TripID:  trip.GetTripId(),
				RouteID: trip.GetRouteId(),
			}
		}

		events = append(events, &RecordedEvent{
			Kind:       RecordedEventKindPosition,
			VehicleID:  vehicleID,
			TripID:     trip.GetTripId(),
			RouteID:    trip.GetRouteId(),
			Position:   position,
			DataSource: g.DataSource,
			RecordedAt: recordedAt,
		})
	}

	log.Info().
		Int("entities", len(feed.GetEntity())).
		Int("positions", len(events)).
		Int("stale", stale).
		Msg("Decoded GTFS-RT feed")

	return events, nil
}

// Publish pushes the events onto the recorder queue
func Publish(queue rmq.Queue, events []*RecordedEvent) error {
	payloads := make([][]byte, 0, len(events))

	for _, event := range events {
		payload, err := json.Marshal(event)
		if err != nil {
			return err
		}

		payloads = append(payloads, payload)
	}

	if len(payloads) == 0 {
		return nil
	}

	return queue.PublishBytes(payloads...)
}
